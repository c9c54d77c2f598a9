package scheduler

import (
	"context"
	"fmt"

	"leadflow_backend/internal/sms"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Worker consumes qualification tasks and runs them through the SMS pipeline.
type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	service *sms.Service
	log     *logger.Logger
}

// NewWorker builds the consume side over the same Redis settings as the
// client.
func NewWorker(cfg config.SchedulerConfig, service *sms.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		service: service,
		log:     log,
	}

	mux.HandleFunc(TaskLeadQualification, w.handleLeadQualification)

	return w, nil
}

func (w *Worker) handleLeadQualification(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadQualificationPayload(task)
	if err != nil {
		return err
	}

	tenantID, err := uuid.Parse(payload.TenantID)
	if err != nil {
		return err
	}

	return w.service.RunQualification(ctx, tenantID, payload.PhoneNumber, payload.ReplyText)
}

// Run serves tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
