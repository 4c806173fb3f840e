package serverutils

import (
	"portfolio-web/internal/view"
	"portfolio-web/pkg/store"

	"github.com/gofiber/fiber/v2"
)

// NewViewContext builds the data every page needs from the session. Pending
// flashes are consumed.
func NewViewContext(sess *store.Session) view.Context {
	user := store.Get(sess, store.KeyUser, "")
	return view.Context{
		CurrentUser: user,
		IsLoggedIn:  user != "",
		Flashes:     sess.PopFlashes(),
	}
}

// Render renders the named page with the current status code.
func Render(ctx *fiber.Ctx, name string, data fiber.Map) error {
	return ctx.Render(name, view.Page{
		Context: NewViewContext(SessionFrom(ctx)),
		Data:    data,
	})
}

// FlashRedirect queues a flash and answers with 302 to location.
func FlashRedirect(ctx *fiber.Ctx, category, message, location string) error {
	SessionFrom(ctx).Flash(category, message)
	return ctx.Redirect(location, fiber.StatusFound)
}
