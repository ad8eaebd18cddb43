package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lessoncraft-be/internal/bootstrap"
	"lessoncraft-be/internal/config"
	"lessoncraft-be/internal/server"
	"lessoncraft-be/internal/tracer"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()

	// 2. Bootstrap dependencies (container)
	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Panicf("Unable to bootstrap dependencies: %v", err)
	}
	defer container.Close()

	// 3. Tracing
	shutdownTracer := tracer.InitTracer(cfg.Tracing, container.Logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownTracer(ctx)
	}()

	// 4. Start background services
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	go func() {
		container.Logger.Info("main", "Starting ingestion consumer", nil)
		if err := container.ConsumerService.Consume(bgCtx); err != nil {
			container.Logger.Error("main", "Ingestion consumer stopped", map[string]interface{}{"error": err.Error()})
		}
	}()
	if container.EventAuditService != nil {
		go func() {
			if err := container.EventAuditService.Start(bgCtx); err != nil {
				container.Logger.Warn("main", "Event audit subscriber stopped", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	// 5. Run server until interrupted
	srv := server.New(cfg, container)
	go func() {
		if err := srv.Run(); err != nil {
			container.Logger.Error("main", "Server stopped", map[string]interface{}{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	container.Logger.Info("main", "Shutting down", nil)
	if err := srv.Shutdown(); err != nil {
		container.Logger.Error("main", "Server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
