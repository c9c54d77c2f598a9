// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"leadflow_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadCreated is published on first contact from an unseen number.
type LeadCreated struct {
	BaseEvent
	LeadID      uuid.UUID `json:"leadId"`
	TenantID    uuid.UUID `json:"tenantId"`
	PhoneNumber string    `json:"phoneNumber"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadStatusChanged is published whenever the status resolver moves a lead.
type LeadStatusChanged struct {
	BaseEvent
	LeadID      uuid.UUID `json:"leadId"`
	TenantID    uuid.UUID `json:"tenantId"`
	PhoneNumber string    `json:"phoneNumber"`
	OldStatus   string    `json:"oldStatus"`
	NewStatus   string    `json:"newStatus"`
}

func (e LeadStatusChanged) EventName() string { return "leads.lead.status_changed" }

// AppointmentBooked is published when a reply carries the appointment
// confirmation and the lead transitions to appointed.
type AppointmentBooked struct {
	BaseEvent
	LeadID      uuid.UUID `json:"leadId"`
	TenantID    uuid.UUID `json:"tenantId"`
	PhoneNumber string    `json:"phoneNumber"`
	ReplyText   string    `json:"replyText"`
}

func (e AppointmentBooked) EventName() string { return "leads.appointment.booked" }

// ReplySent is published after an outbound reply has been dispatched.
type ReplySent struct {
	BaseEvent
	TenantID    uuid.UUID `json:"tenantId"`
	PhoneNumber string    `json:"phoneNumber"`
	Text        string    `json:"text"`
}

func (e ReplySent) EventName() string { return "sms.reply.sent" }

// NewInMemoryBus re-exports the platform constructor.
var NewInMemoryBus = events.NewInMemoryBus
