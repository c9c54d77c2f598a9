package sms

import (
	"context"
	"time"

	"leadflow_backend/internal/conversation"
	"leadflow_backend/internal/events"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/phone"

	"github.com/google/uuid"
)

// qualificationTimeout bounds a detached qualification pass, which makes two
// store round trips and one completion call.
const qualificationTimeout = 45 * time.Second

// Store is the conversation persistence the pipeline depends on.
type Store interface {
	GetOrCreateLead(ctx context.Context, tenantID uuid.UUID, phone string) (conversation.Lead, bool, error)
	AppendMessage(ctx context.Context, tenantID uuid.UUID, phone string, role conversation.Role, text string) error
	History(ctx context.Context, tenantID uuid.UUID, phone string) ([]conversation.Message, error)
	UpdateLead(ctx context.Context, tenantID uuid.UUID, phone string, patch conversation.LeadPatch) error
}

// TenantResolver maps a destination number to the owning agent.
type TenantResolver interface {
	ResolveTenant(ctx context.Context, number string) (uuid.UUID, error)
}

// Transport dispatches outbound SMS.
type Transport interface {
	Send(ctx context.Context, to, text, from string) error
}

// QualificationQueue hands qualification work to a background worker. A nil
// queue means qualification runs in-process.
type QualificationQueue interface {
	EnqueueQualification(ctx context.Context, tenantID uuid.UUID, phoneNumber, replyText string) error
}

// Ack is the webhook acknowledgment body. The HTTP status is always 200; OK
// reports whether the turn produced a reply.
type Ack struct {
	OK bool `json:"ok"`
}

// Service orchestrates one inbound turn end to end.
type Service struct {
	store     Store
	resolver  TenantResolver
	transport Transport
	engine    *DialogueEngine
	extractor *Extractor
	queue     QualificationQueue
	bus       events.Bus
	log       *logger.Logger
}

// NewService wires the pipeline. transport and queue may be nil: a nil
// transport logs replies instead of sending them, a nil queue runs
// qualification in a supervised goroutine.
func NewService(
	store Store,
	resolver TenantResolver,
	transport Transport,
	engine *DialogueEngine,
	extractor *Extractor,
	queue QualificationQueue,
	bus events.Bus,
	log *logger.Logger,
) *Service {
	return &Service{
		store:     store,
		resolver:  resolver,
		transport: transport,
		engine:    engine,
		extractor: extractor,
		queue:     queue,
		bus:       bus,
		log:       log,
	}
}

// HandleInbound processes one inbound webhook delivery. It never returns an
// error: every failure is logged and collapsed into the acknowledgment so the
// provider never retries. Failures before dispatch yield Ack{OK: false} with
// no further side effects; failures after dispatch are log-only.
func (s *Service) HandleInbound(ctx context.Context, contentType string, body []byte) Ack {
	inbound, err := ParseInbound(contentType, body)
	if err != nil {
		s.log.PipelineError("parse", err)
		return Ack{OK: false}
	}

	from := phone.NormalizeE164(inbound.From)
	s.log.InboundSMS(string(inbound.Provider), from, inbound.To)

	if inbound.To == "" {
		s.log.PipelineError("resolve_tenant", ErrMalformedPayload)
		return Ack{OK: false}
	}
	tenantID, err := s.resolver.ResolveTenant(ctx, inbound.To)
	if err != nil {
		s.log.PipelineError("resolve_tenant", err)
		return Ack{OK: false}
	}

	lead, created, err := s.store.GetOrCreateLead(ctx, tenantID, from)
	if err != nil {
		s.log.PipelineError("lead", err)
		return Ack{OK: false}
	}
	if created {
		s.bus.Publish(ctx, events.LeadCreated{
			BaseEvent:   events.NewBaseEvent(),
			LeadID:      lead.ID,
			TenantID:    tenantID,
			PhoneNumber: from,
		})
	}

	history, err := s.store.History(ctx, tenantID, from)
	if err != nil {
		s.log.PipelineError("history", err)
		return Ack{OK: false}
	}
	if err := s.store.AppendMessage(ctx, tenantID, from, conversation.RoleLead, inbound.Body); err != nil {
		s.log.PipelineError("store_inbound", err)
		return Ack{OK: false}
	}
	history = append(history, conversation.Message{
		TenantID:  tenantID,
		LeadPhone: from,
		Role:      conversation.RoleLead,
		Text:      inbound.Body,
	})

	reply, err := s.engine.Reply(ctx, history)
	if err != nil {
		s.log.PipelineError("dialogue", err)
		return Ack{OK: false}
	}
	if err := s.store.AppendMessage(ctx, tenantID, from, conversation.RoleAI, reply); err != nil {
		s.log.PipelineError("store_reply", err)
		return Ack{OK: false}
	}

	if err := s.dispatch(ctx, from, reply, inbound.To); err != nil {
		s.log.PipelineError("dispatch", err)
		return Ack{OK: false}
	}
	s.bus.Publish(ctx, events.ReplySent{
		BaseEvent:   events.NewBaseEvent(),
		TenantID:    tenantID,
		PhoneNumber: from,
		Text:        reply,
	})

	// The reply is already on the wire; qualification is best-effort and
	// never changes the acknowledgment.
	s.scheduleQualification(ctx, tenantID, from, reply)

	return Ack{OK: true}
}

func (s *Service) dispatch(ctx context.Context, to, text, from string) error {
	if s.transport == nil {
		s.log.Warn("sms transport not configured, reply not sent", "to", to)
		return nil
	}
	return s.transport.Send(ctx, to, text, from)
}

// scheduleQualification hands off the post-reply qualification pass. With a
// queue configured it is enqueued for the worker; otherwise it runs in a
// goroutine detached from the request context.
func (s *Service) scheduleQualification(ctx context.Context, tenantID uuid.UUID, phoneNumber, replyText string) {
	if s.queue != nil {
		err := s.queue.EnqueueQualification(ctx, tenantID, phoneNumber, replyText)
		if err == nil {
			return
		}
		s.log.PipelineError("enqueue_qualification", err)
	}

	go func() {
		qctx, cancel := context.WithTimeout(context.Background(), qualificationTimeout)
		defer cancel()
		if err := s.RunQualification(qctx, tenantID, phoneNumber, replyText); err != nil {
			s.log.PipelineError("qualification", err)
		}
	}()
}

// RunQualification re-reads the conversation, extracts qualification fields
// from it, merges them into the stored lead and resolves the next status.
// Extraction failure degrades to an all-absent snapshot so status progression
// from the reply text alone still happens. Safe to re-run: answered fields
// are never overwritten and statuses only move forward.
func (s *Service) RunQualification(ctx context.Context, tenantID uuid.UUID, phoneNumber, replyText string) error {
	lead, _, err := s.store.GetOrCreateLead(ctx, tenantID, phoneNumber)
	if err != nil {
		return err
	}

	history, err := s.store.History(ctx, tenantID, phoneNumber)
	if err != nil {
		return err
	}

	extracted, err := s.extractor.Extract(ctx, history)
	if err != nil {
		s.log.PipelineError("extract", err)
		extracted = Qualification{}
	}

	stored := Qualification{
		Timeline: lead.Timeline,
		Budget:   lead.Budget,
		Area:     lead.Area,
	}
	newStatus, merged := ResolveStatus(lead.Status, stored, extracted, replyText)

	patch := conversation.LeadPatch{
		Status:   &newStatus,
		Budget:   merged.Budget,
		Timeline: merged.Timeline,
		Area:     merged.Area,
	}
	if err := s.store.UpdateLead(ctx, tenantID, phoneNumber, patch); err != nil {
		return err
	}

	if newStatus != lead.Status {
		s.bus.Publish(ctx, events.LeadStatusChanged{
			BaseEvent:   events.NewBaseEvent(),
			LeadID:      lead.ID,
			TenantID:    tenantID,
			PhoneNumber: phoneNumber,
			OldStatus:   string(lead.Status),
			NewStatus:   string(newStatus),
		})
		if newStatus == conversation.StatusAppointed {
			s.bus.Publish(ctx, events.AppointmentBooked{
				BaseEvent:   events.NewBaseEvent(),
				LeadID:      lead.ID,
				TenantID:    tenantID,
				PhoneNumber: phoneNumber,
				ReplyText:   replyText,
			})
		}
	}

	return nil
}
