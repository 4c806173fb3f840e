package controller

import (
	"errors"
	"fmt"
	"strings"

	"portfolio-web/internal/pkg/logger"
	"portfolio-web/internal/pkg/serverutils"
	"portfolio-web/internal/service"
	"portfolio-web/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IResumeController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
}

type resumeController struct {
	service service.IUploadService
	logger  logger.ILogger
}

func NewResumeController(service service.IUploadService, log logger.ILogger) IResumeController {
	return &resumeController{service: service, logger: log}
}

func (c *resumeController) RegisterRoutes(r fiber.Router) {
	r.Get("/resume", c.Show)
	r.Post("/resume", c.Upload)
	r.Get("/download/:filename", c.Download)
}

func (c *resumeController) Show(ctx *fiber.Ctx) error {
	return c.render(ctx)
}

func (c *resumeController) render(ctx *fiber.Ctx) error {
	return serverutils.Render(ctx, "resume", fiber.Map{
		"uploaded_files": c.service.ListResumes(serverutils.SessionFrom(ctx)),
		"allowed":        c.service.AllowedExtensions(),
	})
}

func (c *resumeController) Upload(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFrom(ctx)

	// A missing part, or a body that is not multipart at all, is treated as no file.
	fh, _ := ctx.FormFile("resume_file")

	_, err := c.service.SaveResume(ctx.UserContext(), sess, fh)
	switch {
	case err == nil:
		return serverutils.FlashRedirect(ctx, store.FlashSuccess, "Resume uploaded successfully!", "/resume")
	case errors.Is(err, service.ErrNoFile):
		return serverutils.FlashRedirect(ctx, store.FlashDanger, "No file selected!", "/resume")
	case errors.Is(err, service.ErrInvalidFileType):
		sess.Flash(store.FlashDanger, "Invalid file type! Allowed types: "+strings.Join(c.service.AllowedExtensions(), ", "))
		return c.render(ctx)
	default:
		return err
	}
}

func (c *resumeController) Download(ctx *fiber.Ctx) error {
	name := ctx.Params("filename")

	rc, size, err := c.service.Open(ctx.UserContext(), name)
	if errors.Is(err, service.ErrFileNotFound) {
		return serverutils.FlashRedirect(ctx, store.FlashDanger, "File not found!", "/resume")
	}
	if err != nil {
		c.logger.Error("Resume", "Download failed", map[string]interface{}{
			"filename": name,
			"error":    err.Error(),
		})
		return serverutils.FlashRedirect(ctx, store.FlashDanger, fmt.Sprintf("Error downloading file: %v", err), "/resume")
	}

	ctx.Attachment(name)
	return ctx.SendStream(rc, int(size))
}
