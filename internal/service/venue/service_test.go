package venue

import (
	"context"
	"errors"
	"testing"

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

func TestCreateRejectsDuplicateNameCaseInsensitive(t *testing.T) {
	svc := New(store.NewMemoryStore(), nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateParams{Name: "De Kade"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(ctx, CreateParams{Name: "de kade"}); faultCode(err) != fault.ErrorCodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	venues, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(venues) != 1 {
		t.Fatalf("expected one venue, got %d", len(venues))
	}
}

func TestUpdateUnknownVenue(t *testing.T) {
	svc := New(store.NewMemoryStore(), nil)
	_, err := svc.Update(context.Background(), UpdateParams{ID: "venue_missing", Name: "New name"})
	if faultCode(err) != fault.ErrorCodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteThenRecover(t *testing.T) {
	svc := New(store.NewMemoryStore(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateParams{Name: "De Kade", Address: "Kade 1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	summary, err := svc.Recover(ctx)
	if err != nil {
		t.Fatalf("recover failed: %v", err)
	}
	if summary.Recovered != 0 {
		t.Fatalf("deleted venue must not resurface, got %+v", summary)
	}
}
