package controller

import (
	"fmt"

	"portfolio-web/internal/dto"
	"portfolio-web/internal/pkg/logger"
	"portfolio-web/internal/pkg/serverutils"
	"portfolio-web/internal/service"
	"portfolio-web/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IContactController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
}

type contactController struct {
	service service.IContactService
	logger  logger.ILogger
}

func NewContactController(service service.IContactService, log logger.ILogger) IContactController {
	return &contactController{service: service, logger: log}
}

func (c *contactController) RegisterRoutes(r fiber.Router) {
	r.Get("/contact", c.Show)
	r.Post("/contact", c.Submit)
}

func (c *contactController) Show(ctx *fiber.Ctx) error {
	return serverutils.Render(ctx, "contact", nil)
}

func (c *contactController) Submit(ctx *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		c.logger.Warn("Contact", "Unreadable contact form", map[string]interface{}{"error": err.Error()})
		return serverutils.FlashRedirect(ctx, store.FlashDanger, "Please fill in all required fields!", "/contact")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return serverutils.FlashRedirect(ctx, store.FlashDanger, "Please fill in all required fields!", "/contact")
	}

	msg, err := c.service.Submit(ctx.UserContext(), serverutils.SessionFrom(ctx), &req)
	if err != nil {
		return err
	}

	return serverutils.FlashRedirect(ctx, store.FlashSuccess,
		fmt.Sprintf("Thank you %s! Your message has been received. I will get back to you soon!", msg.Name),
		"/contact")
}
