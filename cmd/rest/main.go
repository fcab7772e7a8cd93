package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"device-assistant-ai/internal/bootstrap"
	"device-assistant-ai/internal/config"
	"device-assistant-ai/internal/pkg/logger"
	"device-assistant-ai/internal/server"
	"device-assistant-ai/internal/tracer"
	"device-assistant-ai/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	isProd := cfg.App.Environment == "production"

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, isProd)
	defer sysLogger.Sync()

	// 2. Tracing
	shutdownTracer := tracer.InitTracer(cfg.Tracing, sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, isProd, database.DefaultPoolConfig())
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg, sysLogger)
	if err != nil {
		log.Panicf("Unable to build container: %v", err)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start Background Services
	if container.ConsumerService != nil {
		if err := container.ConsumerService.Consume(ctx); err != nil {
			sysLogger.Error("MAIN", "audit consumer failed to start", map[string]interface{}{"error": err.Error()})
		}
	}

	// 6. Run Server
	srv := server.New(cfg, container)
	go func() {
		if err := srv.Run(); err != nil {
			sysLogger.Error("MAIN", "server stopped", map[string]interface{}{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.RequestTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sysLogger.Error("MAIN", "graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
