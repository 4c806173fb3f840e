package serverutils

import (
	"time"

	"portfolio-web/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		log.Info("HTTP", "Request handled", map[string]interface{}{
			"method":  ctx.Method(),
			"path":    ctx.Path(),
			"status":  ctx.Response().StatusCode(),
			"latency": time.Since(start).String(),
			"ip":      ctx.IP(),
		})
		return err
	}
}
