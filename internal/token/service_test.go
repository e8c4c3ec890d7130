package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"kartel-backend/internal/store"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueAndValidate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewWithClock(store.NewMemoryStore(), "login-tokens", nil, fixedClock(now))

	tok, err := svc.Issue(ctx, "app_1", "member@example.com", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if len(tok) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(tok))
	}

	item, err := svc.Validate(ctx, tok)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if item.SubjectID != "app_1" || item.Email != "member@example.com" {
		t.Fatalf("unexpected token item: %+v", item)
	}
}

func TestValidateUnknownToken(t *testing.T) {
	svc := New(store.NewMemoryStore(), "login-tokens", nil)
	if _, err := svc.Validate(context.Background(), "deadbeef"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestValidateExpiredTokenDeletesRecord(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	current := issued
	svc := NewWithClock(mem, "login-tokens", nil, func() time.Time { return current })

	tok, err := svc.Issue(ctx, "app_1", "member@example.com", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	current = issued.Add(2 * time.Hour)
	if _, err := svc.Validate(ctx, tok); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}

	body, err := mem.Get(ctx, "login-tokens", tok)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if body != nil {
		t.Fatal("expired token record should have been deleted")
	}
}

func TestValidateExpiredWinsOverUsed(t *testing.T) {
	ctx := context.Background()
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	current := issued
	svc := NewWithClock(store.NewMemoryStore(), "login-tokens", nil, func() time.Time { return current })

	tok, err := svc.Issue(ctx, "app_1", "member@example.com", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if err := svc.Consume(ctx, tok); err != nil {
		t.Fatalf("consume failed: %v", err)
	}

	// A token that is both expired and used reports expiry.
	current = issued.Add(2 * time.Hour)
	if _, err := svc.Validate(ctx, tok); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestConsumeIsSingleUse(t *testing.T) {
	ctx := context.Background()
	svc := New(store.NewMemoryStore(), "admin-tokens", nil)

	tok, err := svc.Issue(ctx, "app_1", "member@example.com", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if err := svc.Consume(ctx, tok); err != nil {
		t.Fatalf("first consume failed: %v", err)
	}
	if err := svc.Consume(ctx, tok); !errors.Is(err, ErrAlreadyUsed) {
		t.Fatalf("expected ErrAlreadyUsed, got %v", err)
	}
	if _, err := svc.Validate(ctx, tok); !errors.Is(err, ErrAlreadyUsed) {
		t.Fatalf("expected ErrAlreadyUsed from validate, got %v", err)
	}
}
