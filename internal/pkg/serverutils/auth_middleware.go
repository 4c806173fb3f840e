package serverutils

import (
	"portfolio-web/pkg/store"

	"github.com/gofiber/fiber/v2"
)

const loginPath = "/login"

// LoginRequired lets the request through only when a user is logged in.
// Anonymous visitors are sent to the login page; the original target is not kept.
func LoginRequired(ctx *fiber.Ctx) error {
	if store.Get(SessionFrom(ctx), store.KeyUser, "") == "" {
		return FlashRedirect(ctx, store.FlashWarning, "Please login first!", loginPath)
	}
	return ctx.Next()
}
