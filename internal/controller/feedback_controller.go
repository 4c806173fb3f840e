package controller

import (
	"portfolio-web/internal/dto"
	"portfolio-web/internal/pkg/serverutils"
	"portfolio-web/internal/service"
	"portfolio-web/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IFeedbackController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
}

type feedbackController struct {
	service service.IFeedbackService
}

func NewFeedbackController(service service.IFeedbackService) IFeedbackController {
	return &feedbackController{service: service}
}

func (c *feedbackController) RegisterRoutes(r fiber.Router) {
	r.Get("/feedback", c.Show)
	r.Post("/feedback", c.Submit)
}

func (c *feedbackController) Show(ctx *fiber.Ctx) error {
	return serverutils.Render(ctx, "feedback", nil)
}

func (c *feedbackController) Submit(ctx *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.FlashRedirect(ctx, store.FlashDanger, "Please provide feedback!", "/feedback")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return serverutils.FlashRedirect(ctx, store.FlashDanger, "Please provide feedback!", "/feedback")
	}

	// Optional
	attachment, _ := ctx.FormFile("attachment")

	if _, err := c.service.Submit(ctx.UserContext(), serverutils.SessionFrom(ctx), &req, attachment); err != nil {
		return err
	}
	return serverutils.FlashRedirect(ctx, store.FlashSuccess, "Thank you for your feedback!", "/feedback")
}
