package serverutils

import (
	"errors"

	"portfolio-web/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

var errorPages = map[int]string{
	fiber.StatusForbidden:           "errors/403",
	fiber.StatusNotFound:            "errors/404",
	fiber.StatusInternalServerError: "errors/500",
}

// ErrorHandler turns handler errors into HTML error pages. Codes without a
// dedicated page get their plain status text.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Unhandled error", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
		}

		ctx.Status(code)
		if page, ok := errorPages[code]; ok {
			rerr := Render(ctx, page, nil)
			if rerr == nil {
				return nil
			}
			log.Error("HTTP", "Failed to render error page", map[string]interface{}{
				"page":  page,
				"error": rerr.Error(),
			})
		}

		ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return ctx.Status(code).SendString(utils.StatusMessage(code))
	}
}

// ErrorHandlerMiddleware applies ErrorHandler inside the middleware chain so
// that outer middleware (the session writer in particular) sees the final
// response.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	handle := ErrorHandler(log)
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return handle(ctx, err)
		}
		return nil
	}
}
