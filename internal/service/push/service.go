package push

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"kartel-backend/internal/model"
	"kartel-backend/internal/notify"
	"kartel-backend/internal/service/fault"
	"kartel-backend/internal/store"

	"go.uber.org/zap"
)

const broadcastWorkers = 8

type SubscribeParams struct {
	Endpoint string
	Keys     map[string]string
	MemberID string
}

type BroadcastResult struct {
	Sent    int `json:"sent"`
	Removed int `json:"removed"`
	Failed  int `json:"failed"`
}

// Service stores push subscriptions and fans a payload out to all of them.
// Individual send failures never fail the broadcast; subscriptions whose
// endpoint reports gone are deleted on the spot.
type Service struct {
	store  store.Store
	list   *store.List[model.PushSubscriptionItem]
	sender notify.PushSender
	now    func() time.Time
	logger *zap.Logger
}

func New(s store.Store, sender notify.PushSender, logger *zap.Logger) *Service {
	return NewWithClock(s, sender, logger, time.Now)
}

func NewWithClock(s store.Store, sender notify.PushSender, logger *zap.Logger, now func() time.Time) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:  s,
		list:   store.NewList(s, listConfig(), logger),
		sender: sender,
		now:    now,
		logger: logger,
	}
}

func listConfig() store.ListConfig[model.PushSubscriptionItem] {
	return store.ListConfig[model.PushSubscriptionItem]{
		Collection: model.PushSubscriptionsCollection,
		Key: func(p model.PushSubscriptionItem) string {
			return p.ID
		},
		SubmittedAt: func(p model.PushSubscriptionItem) time.Time {
			return store.RecordTime(p.CreatedAt)
		},
		Valid: func(p model.PushSubscriptionItem) bool {
			return p.Endpoint != ""
		},
	}
}

func (s *Service) Subscribe(ctx context.Context, params SubscribeParams) (model.PushSubscriptionItem, error) {
	endpoint := strings.TrimSpace(params.Endpoint)
	if endpoint == "" {
		return model.PushSubscriptionItem{}, fault.New(fault.ErrorCodeValidation, "missing required field: endpoint", nil)
	}

	subs, err := s.list.Load(ctx)
	if err != nil {
		return model.PushSubscriptionItem{}, fault.New(fault.ErrorCodeInternal, "failed to load subscriptions", err)
	}
	for _, existing := range subs {
		if existing.Endpoint == endpoint {
			return existing, nil
		}
	}

	sub := model.PushSubscriptionItem{
		ID:        model.NewRecordID("sub"),
		Endpoint:  endpoint,
		Keys:      params.Keys,
		MemberID:  strings.TrimSpace(params.MemberID),
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}

	if err := s.list.AppendOrUpdate(ctx, sub); err != nil {
		return model.PushSubscriptionItem{}, fault.New(fault.ErrorCodeInternal, "failed to save subscription", err)
	}
	return sub, nil
}

// Broadcast sends the payload to every stored subscription using a small
// worker pool. Gone endpoints are removed; other failures are counted and
// logged.
func (s *Service) Broadcast(ctx context.Context, title, body string) (BroadcastResult, error) {
	if s.sender == nil {
		return BroadcastResult{}, fault.New(fault.ErrorCodeInternal, "push sender not configured", nil)
	}

	subs, err := s.list.Load(ctx)
	if err != nil {
		return BroadcastResult{}, fault.New(fault.ErrorCodeInternal, "failed to load subscriptions", err)
	}

	payload, err := json.Marshal(map[string]string{
		"title": title,
		"body":  body,
	})
	if err != nil {
		return BroadcastResult{}, fault.New(fault.ErrorCodeInternal, "failed to encode payload", err)
	}

	var (
		mu     sync.Mutex
		result BroadcastResult
		wg     sync.WaitGroup
	)

	jobs := make(chan model.PushSubscriptionItem)
	for i := 0; i < broadcastWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sub := range jobs {
				err := s.sender.SendNotification(ctx, sub.Endpoint, string(payload))

				mu.Lock()
				switch {
				case err == nil:
					result.Sent++
				case errors.Is(err, notify.ErrSubscriptionGone):
					result.Removed++
				default:
					result.Failed++
				}
				mu.Unlock()

				if errors.Is(err, notify.ErrSubscriptionGone) {
					if removeErr := s.list.Remove(ctx, sub.ID); removeErr != nil {
						s.logger.Warn("failed to remove gone subscription",
							zap.String("subscriptionId", sub.ID),
							zap.Error(removeErr))
					}
				} else if err != nil {
					s.logger.Warn("push send failed",
						zap.String("subscriptionId", sub.ID),
						zap.Error(err))
				}
			}
		}()
	}

	for _, sub := range subs {
		jobs <- sub
	}
	close(jobs)
	wg.Wait()

	return result, nil
}

func (s *Service) Recover(ctx context.Context) (store.RebuildSummary, error) {
	summary, err := s.list.Rebuild(ctx)
	if err != nil {
		return store.RebuildSummary{}, fault.New(fault.ErrorCodeInternal, "failed to rebuild subscription list", err)
	}
	return summary, nil
}

func (s *Service) List(ctx context.Context) ([]model.PushSubscriptionItem, error) {
	subs, err := s.list.Load(ctx)
	if err != nil {
		return nil, fault.New(fault.ErrorCodeInternal, "failed to load subscriptions", err)
	}
	return subs, nil
}
