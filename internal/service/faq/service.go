package faq

import (
	"context"
	"strings"
	"time"

	"kartel-backend/internal/model"
	"kartel-backend/internal/service/fault"
	"kartel-backend/internal/store"

	"go.uber.org/zap"
)

type UpsertParams struct {
	ID       string
	Question string
	Answer   string
	Order    int
}

type Service struct {
	store  store.Store
	list   *store.List[model.FAQItem]
	now    func() time.Time
	logger *zap.Logger
}

func New(s store.Store, logger *zap.Logger) *Service {
	return NewWithClock(s, logger, time.Now)
}

func NewWithClock(s store.Store, logger *zap.Logger, now func() time.Time) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:  s,
		list:   store.NewList(s, listConfig(), logger),
		now:    now,
		logger: logger,
	}
}

func listConfig() store.ListConfig[model.FAQItem] {
	return store.ListConfig[model.FAQItem]{
		Collection: model.FAQsCollection,
		Key: func(f model.FAQItem) string {
			return f.ID
		},
		SubmittedAt: func(f model.FAQItem) time.Time {
			return store.RecordTime(f.CreatedAt)
		},
		Valid: func(f model.FAQItem) bool {
			return f.Question != ""
		},
	}
}

func (s *Service) Create(ctx context.Context, params UpsertParams) (model.FAQItem, error) {
	question := strings.TrimSpace(params.Question)
	answer := strings.TrimSpace(params.Answer)
	if question == "" {
		return model.FAQItem{}, fault.New(fault.ErrorCodeValidation, "missing required field: question", nil)
	}
	if answer == "" {
		return model.FAQItem{}, fault.New(fault.ErrorCodeValidation, "missing required field: answer", nil)
	}

	item := model.FAQItem{
		ID:        model.NewRecordID("faq"),
		Question:  question,
		Answer:    answer,
		Order:     params.Order,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}

	if err := s.list.AppendOrUpdate(ctx, item); err != nil {
		return model.FAQItem{}, fault.New(fault.ErrorCodeInternal, "failed to save faq", err)
	}
	return item, nil
}

func (s *Service) List(ctx context.Context) ([]model.FAQItem, error) {
	items, err := s.list.Load(ctx)
	if err != nil {
		return nil, fault.New(fault.ErrorCodeInternal, "failed to load faqs", err)
	}
	return items, nil
}

func (s *Service) Update(ctx context.Context, params UpsertParams) (model.FAQItem, error) {
	var item model.FAQItem
	found, err := store.GetJSON(ctx, s.store, model.FAQsCollection, params.ID, &item)
	if err != nil {
		return model.FAQItem{}, fault.New(fault.ErrorCodeInternal, "failed to load faq", err)
	}
	if !found {
		return model.FAQItem{}, fault.New(fault.ErrorCodeNotFound, "faq not found", nil)
	}

	if question := strings.TrimSpace(params.Question); question != "" {
		item.Question = question
	}
	if answer := strings.TrimSpace(params.Answer); answer != "" {
		item.Answer = answer
	}
	if params.Order != 0 {
		item.Order = params.Order
	}
	item.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	if err := s.list.AppendOrUpdate(ctx, item); err != nil {
		return model.FAQItem{}, fault.New(fault.ErrorCodeInternal, "failed to save faq", err)
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	var item model.FAQItem
	found, err := store.GetJSON(ctx, s.store, model.FAQsCollection, id, &item)
	if err != nil {
		return fault.New(fault.ErrorCodeInternal, "failed to load faq", err)
	}
	if !found {
		return fault.New(fault.ErrorCodeNotFound, "faq not found", nil)
	}

	if err := s.list.Remove(ctx, id); err != nil {
		return fault.New(fault.ErrorCodeInternal, "failed to delete faq", err)
	}
	return nil
}

func (s *Service) Recover(ctx context.Context) (store.RebuildSummary, error) {
	summary, err := s.list.Rebuild(ctx)
	if err != nil {
		return store.RebuildSummary{}, fault.New(fault.ErrorCodeInternal, "failed to rebuild faqs list", err)
	}
	return summary, nil
}
