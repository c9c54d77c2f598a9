package sms

import (
	"strings"

	"leadflow_backend/internal/conversation"
)

// AppointmentBookedTag is the exact marker the persona emits when a lead
// confirms an appointment time.
const AppointmentBookedTag = "[APPOINTMENT_BOOKED]"

// HasAppointmentBooked reports whether a reply carries the booking marker.
func HasAppointmentBooked(reply string) bool {
	return strings.Contains(reply, AppointmentBookedTag)
}

// mergeField keeps the stored value when present; a later extraction never
// overwrites an earlier answer.
func mergeField(stored, extracted *string) *string {
	if stored != nil {
		return stored
	}
	return extracted
}

// ResolveStatus merges the extraction snapshot into the stored qualification
// and computes the lead's next status. Precedence: booking marker, then full
// qualification, then first engagement. The function is pure and idempotent;
// re-running it on the same inputs yields the same outputs, and statuses only
// ever move forward.
func ResolveStatus(current conversation.Status, stored, extracted Qualification, reply string) (conversation.Status, Qualification) {
	merged := Qualification{
		Timeline: mergeField(stored.Timeline, extracted.Timeline),
		Budget:   mergeField(stored.Budget, extracted.Budget),
		Area:     mergeField(stored.Area, extracted.Area),
	}

	switch {
	case HasAppointmentBooked(reply):
		return conversation.StatusAppointed, merged
	case current == conversation.StatusAppointed:
		return current, merged
	case merged.Complete():
		return conversation.StatusQualified, merged
	case current == conversation.StatusNew:
		return conversation.StatusEngaged, merged
	default:
		return current, merged
	}
}
