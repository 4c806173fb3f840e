package controller

import (
	"errors"
	"fmt"
	"net/url"

	"portfolio-web/internal/dto"
	"portfolio-web/internal/pkg/serverutils"
	"portfolio-web/internal/service"
	"portfolio-web/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	ShowLogin(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Dashboard(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	r.Get("/login", c.ShowLogin)
	r.Post("/login", c.Login)
	r.Get("/dashboard", serverutils.LoginRequired, c.Dashboard) // protected
	r.Get("/logout", c.Logout)
}

func (c *authController) ShowLogin(ctx *fiber.Ctx) error {
	return serverutils.Render(ctx, "login", nil)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		req = dto.LoginRequest{}
	}

	sess := serverutils.SessionFrom(ctx)
	err := c.service.Login(ctx.UserContext(), sess, &req)
	if errors.Is(err, service.ErrInvalidCredentials) {
		sess.Flash(store.FlashDanger, "Invalid username or password!")
		return serverutils.Render(ctx, "login", nil)
	}
	if err != nil {
		return err
	}

	return serverutils.FlashRedirect(ctx, store.FlashSuccess, fmt.Sprintf("Welcome back, %s!", req.Username), "/dashboard")
}

func (c *authController) Dashboard(ctx *fiber.Ctx) error {
	res, err := c.service.Dashboard(ctx.UserContext(), serverutils.SessionFrom(ctx))
	if err != nil {
		return err
	}
	return serverutils.Render(ctx, "dashboard", fiber.Map{"dashboard": res})
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	user := c.service.Logout(ctx.UserContext(), serverutils.SessionFrom(ctx))
	location := "/?message=" + url.QueryEscape(fmt.Sprintf("%s logged out successfully!", user))
	return serverutils.FlashRedirect(ctx, store.FlashInfo, fmt.Sprintf("Goodbye, %s! You have been logged out.", user), location)
}
