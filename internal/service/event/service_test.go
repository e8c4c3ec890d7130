package event

import (
	"context"
	"errors"
	"testing"

	"kartel-backend/internal/model"
	"kartel-backend/internal/service/fault"
	"kartel-backend/internal/store"
)

func faultCode(err error) fault.ErrorCode {
	var svcErr *fault.Error
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return ""
}

func createTestEvent(t *testing.T, svc *Service) model.EventItem {
	t.Helper()
	event, err := svc.Create(context.Background(), CreateParams{
		Title:     "Monthly dinner",
		VenueName: "De Kade",
		Date:      "2026-09-15",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return event
}

func TestCreateRequiresTitle(t *testing.T) {
	svc := New(store.NewMemoryStore(), nil)
	_, err := svc.Create(context.Background(), CreateParams{Title: "   "})
	if faultCode(err) != fault.ErrorCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSignUpAppendsAttendee(t *testing.T) {
	svc := New(store.NewMemoryStore(), nil)
	ctx := context.Background()
	event := createTestEvent(t, svc)

	attendee, err := svc.SignUp(ctx, SignUpParams{
		EventID:  event.ID,
		MemberID: "app_1",
		Name:     "Ada Lovelace",
	})
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	if attendee.Attended {
		t.Fatal("new sign-up must not be marked attended")
	}

	stored, err := svc.Get(ctx, event.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored.Attendees) != 1 || stored.Attendees[0].MemberID != "app_1" {
		t.Fatalf("unexpected roster: %+v", stored.Attendees)
	}
}

func TestSignUpTwiceLeavesRosterUnchanged(t *testing.T) {
	svc := New(store.NewMemoryStore(), nil)
	ctx := context.Background()
	event := createTestEvent(t, svc)

	if _, err := svc.SignUp(ctx, SignUpParams{EventID: event.ID, MemberID: "app_1"}); err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	if _, err := svc.SignUp(ctx, SignUpParams{EventID: event.ID, MemberID: "app_1"}); faultCode(err) != fault.ErrorCodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	stored, err := svc.Get(ctx, event.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored.Attendees) != 1 {
		t.Fatalf("roster should still hold one attendee, got %d", len(stored.Attendees))
	}
}

func TestSignUpUnknownEvent(t *testing.T) {
	svc := New(store.NewMemoryStore(), nil)
	_, err := svc.SignUp(context.Background(), SignUpParams{EventID: "event_missing", MemberID: "app_1"})
	if faultCode(err) != fault.ErrorCodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMarkAttended(t *testing.T) {
	svc := New(store.NewMemoryStore(), nil)
	ctx := context.Background()
	event := createTestEvent(t, svc)

	if _, err := svc.SignUp(ctx, SignUpParams{EventID: event.ID, MemberID: "app_1"}); err != nil {
		t.Fatalf("sign up failed: %v", err)
	}

	updated, err := svc.MarkAttended(ctx, event.ID, "app_1")
	if err != nil {
		t.Fatalf("mark attended failed: %v", err)
	}
	if !updated.Attendees[0].Attended {
		t.Fatal("attendee should be marked attended")
	}

	if _, err := svc.MarkAttended(ctx, event.ID, "app_2"); faultCode(err) != fault.ErrorCodeNotFound {
		t.Fatalf("expected not found for unregistered member, got %v", err)
	}
}

func TestDeleteRemovesEventFromList(t *testing.T) {
	svc := New(store.NewMemoryStore(), nil)
	ctx := context.Background()
	event := createTestEvent(t, svc)

	if err := svc.Delete(ctx, event.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	events, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected empty list, got %+v", events)
	}

	if err := svc.Delete(ctx, event.ID); faultCode(err) != fault.ErrorCodeNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
