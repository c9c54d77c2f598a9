package scheduler

import (
	"context"
	"testing"

	"leadflow_backend/platform/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

func TestNewClientRequiresRedisURL(t *testing.T) {
	cfg := &config.Config{}
	if _, err := NewClient(cfg); err == nil {
		t.Fatal("expected error without redis url")
	}
}

func TestEnqueueQualification(t *testing.T) {
	srv := miniredis.RunT(t)

	cfg := &config.Config{
		RedisURL:       "redis://" + srv.Addr(),
		AsynqQueueName: "leadflow",
	}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	defer client.Close()

	tenantID := uuid.New()
	if err := client.EnqueueQualification(context.Background(), tenantID, "+16502530000", "booked!"); err != nil {
		t.Fatalf("EnqueueQualification returned error: %v", err)
	}

	keys := srv.Keys()
	if len(keys) == 0 {
		t.Fatal("expected task data in redis")
	}
}

func TestLeadQualificationPayloadRoundTrip(t *testing.T) {
	payload := LeadQualificationPayload{
		TenantID:    uuid.NewString(),
		PhoneNumber: "+16502530000",
		ReplyText:   "Perfect! I've got you booked.",
	}

	task, err := NewLeadQualificationTask(payload)
	if err != nil {
		t.Fatalf("NewLeadQualificationTask returned error: %v", err)
	}
	if task.Type() != TaskLeadQualification {
		t.Fatalf("task type = %q", task.Type())
	}

	parsed, err := ParseLeadQualificationPayload(task)
	if err != nil {
		t.Fatalf("ParseLeadQualificationPayload returned error: %v", err)
	}
	if parsed != payload {
		t.Fatalf("parsed = %+v, want %+v", parsed, payload)
	}
}

func TestParseLeadQualificationPayloadRejectsGarbage(t *testing.T) {
	task := asynq.NewTask(TaskLeadQualification, []byte("not json"))
	if _, err := ParseLeadQualificationPayload(task); err == nil {
		t.Fatal("expected error")
	}
}
