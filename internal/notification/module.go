package notification

import (
	"context"

	"leadflow_backend/internal/events"
	"leadflow_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module delivers agent notifications for appointment bookings. It has no
// HTTP surface; it only listens on the event bus.
type Module struct {
	repo   *Repository
	sender Sender
	log    *logger.Logger
}

// NewModule creates the notification module. sender may be nil when email is
// not configured; bookings are then only logged.
func NewModule(pool *pgxpool.Pool, sender Sender, log *logger.Logger) *Module {
	return &Module{
		repo:   NewRepository(pool),
		sender: sender,
		log:    log,
	}
}

// Subscribe registers the module's event handlers. Delivery failures are
// logged by the bus and never affect the SMS pipeline.
func (m *Module) Subscribe(bus events.Bus) {
	bus.Subscribe(events.AppointmentBooked{}.EventName(), events.HandlerFunc(m.handleAppointmentBooked))
}

func (m *Module) handleAppointmentBooked(ctx context.Context, event events.Event) error {
	booked, ok := event.(events.AppointmentBooked)
	if !ok {
		return nil
	}

	m.log.Info("appointment booked",
		"tenant_id", booked.TenantID.String(),
		"phone_number", booked.PhoneNumber,
	)

	if m.sender == nil {
		return nil
	}

	contact, err := m.repo.GetAgentContact(ctx, booked.TenantID)
	if err != nil {
		return err
	}
	if contact.Email == "" {
		return nil
	}

	return m.sender.SendAppointmentEmail(ctx, contact.Email, contact.Name, booked.PhoneNumber, booked.ReplyText)
}
