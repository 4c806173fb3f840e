package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-web/internal/bootstrap"
	"portfolio-web/internal/config"
	"portfolio-web/internal/pkg/logger"
	"portfolio-web/internal/server"
	"portfolio-web/internal/tracer"

	"github.com/fatih/color"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Upload directory is the one hard startup requirement
	if err := cfg.EnsureUploadDir(); err != nil {
		log.Fatalf("Unable to prepare upload directory: %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer func() { _ = sysLogger.Sync() }()

	// 3. Tracer
	shutdownTracer := tracer.InitTracer(cfg.Tracing, sysLogger)
	defer func() { _ = shutdownTracer(context.Background()) }()

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg, sysLogger)
	if err != nil {
		log.Fatalf("Unable to bootstrap application: %v", err)
	}
	defer container.Close()

	// 5. Start Background Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := container.NotificationService.Consume(ctx); err != nil {
		sysLogger.Error("Main", "Contact notifications are disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// 6. Initialize Server
	srv := server.New(cfg, container)

	color.Cyan("🚀 Portfolio running on http://%s (%s, %s sessions)\n", cfg.Addr(), cfg.App.Environment, cfg.Session.Backend)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	select {
	case err := <-errCh:
		if err != nil {
			sysLogger.Error("Main", "Server stopped", map[string]interface{}{"error": err.Error()})
		}
	case <-ctx.Done():
		color.Yellow("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sysLogger.Error("Main", "Graceful shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}
}
