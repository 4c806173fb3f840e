package serverutils

import (
	"time"

	"portfolio-web/internal/config"
	"portfolio-web/internal/pkg/logger"
	"portfolio-web/internal/repository/contract"
	"portfolio-web/pkg/store"

	"github.com/gofiber/fiber/v2"
)

const sessionLocalKey = "session"

// SessionMiddleware loads the visitor session before the handler runs and
// writes it back afterwards, but only when the handler changed it.
func SessionMiddleware(repo contract.SessionRepository, cfg config.SessionConfig, log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sess, err := repo.Load(ctx.UserContext(), ctx.Cookies(cfg.CookieName))
		if err != nil {
			log.Error("Session", "Failed to load session, starting a new one", map[string]interface{}{
				"error": err.Error(),
			})
			sess = store.NewSession("")
		}
		ctx.Locals(sessionLocalKey, sess)

		chainErr := ctx.Next()

		if !sess.Modified() {
			if ctx.Cookies(cfg.CookieName) != "" && !sess.IsEmpty() {
				if err := repo.Touch(ctx.UserContext(), sess); err != nil {
					log.Warn("Session", "Failed to refresh session expiry", map[string]interface{}{
						"path":  ctx.Path(),
						"error": err.Error(),
					})
				}
			}
			return chainErr
		}

		if err := commitSession(ctx, repo, cfg, sess); err != nil {
			log.Error("Session", "Failed to save session", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
		}
		return chainErr
	}
}

func commitSession(ctx *fiber.Ctx, repo contract.SessionRepository, cfg config.SessionConfig, sess *store.Session) error {
	if sess.IsEmpty() {
		ctx.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HTTPOnly: cfg.CookieHTTPOnly,
			Secure:   cfg.CookieSecure,
			SameSite: cfg.CookieSameSite,
		})
		return repo.Delete(ctx.UserContext(), sess)
	}

	token, err := repo.Save(ctx.UserContext(), sess)
	if err != nil {
		return err
	}

	cookie := &fiber.Cookie{
		Name:        cfg.CookieName,
		Value:       token,
		Path:        "/",
		HTTPOnly:    cfg.CookieHTTPOnly,
		Secure:      cfg.CookieSecure,
		SameSite:    cfg.CookieSameSite,
		SessionOnly: !sess.Permanent,
	}
	if sess.Permanent {
		cookie.Expires = time.Now().Add(cfg.PermanentLifetime)
	}
	ctx.Cookie(cookie)
	return nil
}

// SessionFrom returns the session attached by SessionMiddleware. Outside the
// middleware (e.g. a request rejected before routing) it returns an empty,
// unsaved session.
func SessionFrom(ctx *fiber.Ctx) *store.Session {
	if sess, ok := ctx.Locals(sessionLocalKey).(*store.Session); ok {
		return sess
	}
	return store.NewSession("")
}
