package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"leadflow_backend/internal/conversation"
	"leadflow_backend/internal/events"
	"leadflow_backend/internal/notification"
	"leadflow_backend/internal/scheduler"
	"leadflow_backend/internal/sms"
	"leadflow_backend/platform/ai/groq"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/db"
	"leadflow_backend/platform/logger"
)

// The worker consumes qualification tasks enqueued by the API. It needs the
// store, the completion client and the event bus, but no HTTP surface, no
// tenant resolver and no SMS transport.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.AsynqQueueName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)

	completer := groq.NewClient(groq.Config{
		APIKey:  cfg.GroqAPIKey,
		BaseURL: cfg.GroqBaseURL,
		Model:   cfg.GroqModel,
		Timeout: cfg.CompletionTimeout,
	})

	service := sms.NewService(
		conversation.NewRepository(pool),
		nil,
		nil,
		sms.NewDialogueEngine(completer),
		sms.NewExtractor(completer),
		nil,
		eventBus,
		log,
	)

	var emailSender notification.Sender
	if smtp := notification.NewSMTPSender(cfg); smtp != nil {
		emailSender = smtp
	} else {
		log.Warn("SMTP not configured; appointment emails disabled")
	}
	notificationModule := notification.NewModule(pool, emailSender, log)
	notificationModule.Subscribe(eventBus)

	worker, err := scheduler.NewWorker(cfg, service, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("worker stopped")
}
