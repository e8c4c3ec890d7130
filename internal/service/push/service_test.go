package push

import (
	"context"
	"errors"
	"sync"
	"testing"

	"kartel-backend/internal/notify"
	"kartel-backend/internal/service/fault"
	"kartel-backend/internal/store"
)

type fakePushSender struct {
	mu   sync.Mutex
	sent []string
	gone map[string]bool
	fail map[string]bool
}

func (f *fakePushSender) SendNotification(ctx context.Context, endpoint, payload string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gone[endpoint] {
		return notify.ErrSubscriptionGone
	}
	if f.fail[endpoint] {
		return errors.New("delivery failed")
	}
	f.sent = append(f.sent, endpoint)
	return nil
}

func TestSubscribeDeduplicatesByEndpoint(t *testing.T) {
	svc := New(store.NewMemoryStore(), &fakePushSender{}, nil)
	ctx := context.Background()

	first, err := svc.Subscribe(ctx, SubscribeParams{Endpoint: "https://push/ep-1"})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	second, err := svc.Subscribe(ctx, SubscribeParams{Endpoint: "https://push/ep-1"})
	if err != nil {
		t.Fatalf("second subscribe failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("same endpoint should resolve to one subscription: %s vs %s", first.ID, second.ID)
	}

	subs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected one subscription, got %d", len(subs))
	}
}

func TestSubscribeRequiresEndpoint(t *testing.T) {
	svc := New(store.NewMemoryStore(), &fakePushSender{}, nil)
	_, err := svc.Subscribe(context.Background(), SubscribeParams{})
	var svcErr *fault.Error
	if !errors.As(err, &svcErr) || svcErr.Code != fault.ErrorCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBroadcastRemovesGoneSubscriptions(t *testing.T) {
	sender := &fakePushSender{
		gone: map[string]bool{"https://push/gone": true},
		fail: map[string]bool{"https://push/flaky": true},
	}
	svc := New(store.NewMemoryStore(), sender, nil)
	ctx := context.Background()

	for _, endpoint := range []string{"https://push/ok-1", "https://push/ok-2", "https://push/gone", "https://push/flaky"} {
		if _, err := svc.Subscribe(ctx, SubscribeParams{Endpoint: endpoint}); err != nil {
			t.Fatalf("subscribe %s failed: %v", endpoint, err)
		}
	}

	result, err := svc.Broadcast(ctx, "Dinner", "Next week at De Kade")
	if err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}
	if result.Sent != 2 || result.Removed != 1 || result.Failed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	subs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, sub := range subs {
		if sub.Endpoint == "https://push/gone" {
			t.Fatal("gone subscription should have been removed")
		}
	}
	if len(subs) != 3 {
		t.Fatalf("expected 3 remaining subscriptions, got %d", len(subs))
	}
}

func TestBroadcastWithoutSender(t *testing.T) {
	svc := New(store.NewMemoryStore(), nil, nil)
	_, err := svc.Broadcast(context.Background(), "Dinner", "body")
	var svcErr *fault.Error
	if !errors.As(err, &svcErr) || svcErr.Code != fault.ErrorCodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}
