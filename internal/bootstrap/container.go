package bootstrap

import (
	"context"
	"encoding/base64"
	"fmt"

	"portfolio-web/internal/config"
	"portfolio-web/internal/controller"
	"portfolio-web/internal/pkg/logger"
	"portfolio-web/internal/pkg/mailer"
	"portfolio-web/internal/repository/contract"
	"portfolio-web/internal/repository/implementation"
	"portfolio-web/internal/repository/memory"
	"portfolio-web/internal/service"
	"portfolio-web/internal/view"

	pktNats "portfolio-web/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

const (
	SessionBackendCookie = "cookie"
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Container struct {
	// Controllers
	PageController     controller.IPageController
	ContactController  controller.IContactController
	AuthController     controller.IAuthController
	ResumeController   controller.IResumeController
	FeedbackController controller.IFeedbackController

	// Shared infrastructure used by the server
	Logger            logger.ILogger
	SessionRepository contract.SessionRepository
	Views             *view.Engine

	// Background Services (Exposed for main.go to run)
	NotificationService service.INotificationService

	closers []func() error
}

func NewContainer(cfg *config.Config, log logger.ILogger) (*Container, error) {
	c := &Container{Logger: log}

	if err := validateEncryptionKey(cfg.Session.EncryptionKey); err != nil {
		return nil, err
	}

	// 1. Views
	views := view.New()
	if err := views.Load(); err != nil {
		return nil, err
	}
	c.Views = views

	// 2. Sessions
	sessionRepo, err := c.newSessionRepository(cfg, log)
	if err != nil {
		return nil, err
	}
	c.SessionRepository = sessionRepo

	// 3. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, pubSub.Close)

	var natsPub *pktNats.Publisher
	if cfg.Events.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			log.Warn("Bootstrap", "NATS unavailable, events stay in-process", map[string]interface{}{
				"url":   cfg.Events.NatsURL,
				"error": err.Error(),
			})
			natsPub = nil
		} else {
			c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
		}
	}

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
			cfg.SMTP.ContactInbox,
		)
	} else {
		emailService = mailer.NewLogEmailService(log)
	}

	// 4. Services
	authService, err := service.NewAuthService(cfg.Auth.SharedPassword, log)
	if err != nil {
		return nil, err
	}
	publisherService := service.NewPublisherService(pubSub, natsPub, log)
	portfolioService := service.NewPortfolioService(memory.NewCatalogRepository())
	contactService := service.NewContactService(publisherService)
	uploadService := service.NewUploadService(cfg.Upload.Directory, cfg.Upload.AllowedExtensions, publisherService, log)
	feedbackService := service.NewFeedbackService(uploadService, publisherService, log)
	c.NotificationService = service.NewNotificationService(pubSub, emailService, log)

	// 5. Controllers
	c.PageController = controller.NewPageController(portfolioService)
	c.ContactController = controller.NewContactController(contactService, log)
	c.AuthController = controller.NewAuthController(authService)
	c.ResumeController = controller.NewResumeController(uploadService, log)
	c.FeedbackController = controller.NewFeedbackController(feedbackService)

	return c, nil
}

func (c *Container) newSessionRepository(cfg *config.Config, log logger.ILogger) (contract.SessionRepository, error) {
	sc := cfg.Session
	switch sc.Backend {
	case SessionBackendCookie, "":
		return implementation.NewCookieSessionRepository(sc.SecretKey, sc.PermanentLifetime, log), nil
	case SessionBackendMemory:
		return memory.NewSessionRepository(sc.IdleTimeout, sc.PermanentLifetime), nil
	case SessionBackendRedis:
		opt, err := redis.ParseURL(sc.RedisURL)
		if err != nil {
			log.Warn("Bootstrap", "Failed to parse Redis URL, using it as address", map[string]interface{}{
				"error": err.Error(),
			})
			opt = &redis.Options{Addr: sc.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("Bootstrap", "Failed to connect to Redis", map[string]interface{}{
				"addr":  opt.Addr,
				"error": err.Error(),
			})
		}
		c.closers = append(c.closers, rdb.Close)
		return implementation.NewRedisSessionRepository(rdb, sc.IdleTimeout, sc.PermanentLifetime, log), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", sc.Backend)
	}
}

// validateEncryptionKey rejects keys encryptcookie would fail on at request
// time. An empty key disables cookie encryption.
func validateEncryptionKey(key string) error {
	if key == "" {
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return fmt.Errorf("SESSION_ENCRYPTION_KEY is not valid base64: %w", err)
	}
	switch len(raw) {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("SESSION_ENCRYPTION_KEY must decode to 16, 24 or 32 bytes, got %d", len(raw))
	}
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.Logger.Warn("Bootstrap", "Close failed", map[string]interface{}{"error": err.Error()})
		}
	}
}
