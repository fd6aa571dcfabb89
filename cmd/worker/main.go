package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"portal-backend/internal/bootstrap"
	"portal-backend/internal/queue"
	"portal-backend/internal/shared/config"
	"portal-backend/internal/workerproc"
)

func main() {
	cfg := config.Load()
	if strings.TrimSpace(cfg.NATSURL) == "" {
		log.Fatal("NATS_URL is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()
	if app.Queue == nil {
		log.Fatal("queue connection unavailable")
	}

	proc := &workerproc.Processor{
		Documents: app.DocumentsService,
		Resumes:   app.ResumesService,
	}

	log.Printf("worker started subject=%s", queue.Subject)
	if err := app.Queue.Subscribe(ctx, proc.Process); err != nil && ctx.Err() == nil {
		log.Fatalf("subscribe: %v", err)
	}
	log.Print("worker stopped")
}
