package sms

import (
	"testing"

	"leadflow_backend/internal/conversation"
)

func strptr(s string) *string { return &s }

func TestResolveStatusFirstContact(t *testing.T) {
	status, merged := ResolveStatus(conversation.StatusNew, Qualification{}, Qualification{}, "Hi! What brought you to reach out today?")
	if status != conversation.StatusEngaged {
		t.Fatalf("expected engaged, got %q", status)
	}
	if merged.Timeline != nil || merged.Budget != nil || merged.Area != nil {
		t.Fatalf("expected empty qualification, got %+v", merged)
	}
}

func TestResolveStatusQualifiedWhenComplete(t *testing.T) {
	stored := Qualification{Timeline: strptr("30 days")}
	extracted := Qualification{Budget: strptr("$500k"), Area: strptr("Austin")}

	status, merged := ResolveStatus(conversation.StatusEngaged, stored, extracted, "Great, let me set up a call.")
	if status != conversation.StatusQualified {
		t.Fatalf("expected qualified, got %q", status)
	}
	if merged.Timeline == nil || *merged.Timeline != "30 days" {
		t.Errorf("timeline = %v", merged.Timeline)
	}
	if merged.Budget == nil || *merged.Budget != "$500k" {
		t.Errorf("budget = %v", merged.Budget)
	}
}

func TestResolveStatusExistingAnswerWins(t *testing.T) {
	stored := Qualification{Budget: strptr("$500k")}
	extracted := Qualification{Budget: strptr("$600k")}

	_, merged := ResolveStatus(conversation.StatusEngaged, stored, extracted, "ok")
	if merged.Budget == nil || *merged.Budget != "$500k" {
		t.Fatalf("expected stored budget to win, got %v", merged.Budget)
	}
}

func TestResolveStatusAppointmentTag(t *testing.T) {
	reply := "Perfect! I've got you booked. You'll receive a confirmation shortly. [APPOINTMENT_BOOKED]"

	status, _ := ResolveStatus(conversation.StatusEngaged, Qualification{}, Qualification{}, reply)
	if status != conversation.StatusAppointed {
		t.Fatalf("expected appointed, got %q", status)
	}
}

func TestResolveStatusTagBeatsQualified(t *testing.T) {
	full := Qualification{Timeline: strptr("soon"), Budget: strptr("$1m"), Area: strptr("Dallas")}

	status, _ := ResolveStatus(conversation.StatusEngaged, full, Qualification{}, "Booked! [APPOINTMENT_BOOKED]")
	if status != conversation.StatusAppointed {
		t.Fatalf("expected appointed, got %q", status)
	}
}

func TestResolveStatusAppointedNeverRegresses(t *testing.T) {
	status, _ := ResolveStatus(conversation.StatusAppointed, Qualification{}, Qualification{}, "See you then!")
	if status != conversation.StatusAppointed {
		t.Fatalf("expected appointed to stick, got %q", status)
	}
}

func TestResolveStatusIdempotent(t *testing.T) {
	stored := Qualification{Timeline: strptr("30 days"), Budget: strptr("$500k"), Area: strptr("Austin")}

	first, firstQ := ResolveStatus(conversation.StatusQualified, stored, Qualification{}, "ok")
	second, secondQ := ResolveStatus(first, firstQ, Qualification{}, "ok")
	if first != second {
		t.Fatalf("status changed across reruns: %q then %q", first, second)
	}
	if *firstQ.Budget != *secondQ.Budget || *firstQ.Timeline != *secondQ.Timeline || *firstQ.Area != *secondQ.Area {
		t.Fatal("qualification changed across reruns")
	}
}

func TestHasAppointmentBooked(t *testing.T) {
	if HasAppointmentBooked("just a normal reply") {
		t.Fatal("unexpected match")
	}
	if !HasAppointmentBooked("done [APPOINTMENT_BOOKED] thanks") {
		t.Fatal("expected match")
	}
}
