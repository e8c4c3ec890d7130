package venue

import (
	"context"
	"strings"
	"time"

	"kartel-backend/internal/model"
	"kartel-backend/internal/service/fault"
	"kartel-backend/internal/store"

	"go.uber.org/zap"
)

type CreateParams struct {
	Name        string
	Address     string
	Description string
	Website     string
}

type UpdateParams struct {
	ID          string
	Name        string
	Address     string
	Description string
	Website     string
}

// Service is venue CRUD over the shared list/record pattern. Venue names
// are unique case-insensitively.
type Service struct {
	store  store.Store
	list   *store.List[model.VenueItem]
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

func listConfig() store.ListConfig[model.VenueItem] {
	return store.ListConfig[model.VenueItem]{
		Collection: model.VenuesCollection,
		Key: func(v model.VenueItem) string {
			return v.ID
		},
		SubmittedAt: func(v model.VenueItem) time.Time {
			return store.RecordTime(v.CreatedAt)
		},
		Valid: func(v model.VenueItem) bool {
			return v.Name != ""
		},
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (model.VenueItem, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return model.VenueItem{}, fault.New(fault.ErrorCodeValidation, "missing required field: name", nil)
	}

	venues, err := s.list.Load(ctx)
	if err != nil {
		return model.VenueItem{}, fault.New(fault.ErrorCodeInternal, "failed to load venues", err)
	}
	for _, existing := range venues {
		if strings.EqualFold(existing.Name, name) {
			return model.VenueItem{}, fault.New(fault.ErrorCodeConflict, "a venue with this name already exists", nil)
		}
	}

	venue := model.VenueItem{
		ID:          model.NewRecordID("venue"),
		Name:        name,
		Address:     strings.TrimSpace(params.Address),
		Description: strings.TrimSpace(params.Description),
		Website:     strings.TrimSpace(params.Website),
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
	}

	if err := s.list.AppendOrUpdate(ctx, venue); err != nil {
		return model.VenueItem{}, fault.New(fault.ErrorCodeInternal, "failed to save venue", err)
	}
	return venue, nil
}

func (s *Service) List(ctx context.Context) ([]model.VenueItem, error) {
	venues, err := s.list.Load(ctx)
	if err != nil {
		return nil, fault.New(fault.ErrorCodeInternal, "failed to load venues", err)
	}
	return venues, nil
}

func (s *Service) Update(ctx context.Context, params UpdateParams) (model.VenueItem, error) {
	var venue model.VenueItem
	found, err := store.GetJSON(ctx, s.store, model.VenuesCollection, params.ID, &venue)
	if err != nil {
		return model.VenueItem{}, fault.New(fault.ErrorCodeInternal, "failed to load venue", err)
	}
	if !found {
		return model.VenueItem{}, fault.New(fault.ErrorCodeNotFound, "venue not found", nil)
	}

	if name := strings.TrimSpace(params.Name); name != "" {
		venue.Name = name
	}
	if params.Address != "" {
		venue.Address = strings.TrimSpace(params.Address)
	}
	if params.Description != "" {
		venue.Description = strings.TrimSpace(params.Description)
	}
	if params.Website != "" {
		venue.Website = strings.TrimSpace(params.Website)
	}
	venue.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	if err := s.list.AppendOrUpdate(ctx, venue); err != nil {
		return model.VenueItem{}, fault.New(fault.ErrorCodeInternal, "failed to save venue", err)
	}
	return venue, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	var venue model.VenueItem
	found, err := store.GetJSON(ctx, s.store, model.VenuesCollection, id, &venue)
	if err != nil {
		return fault.New(fault.ErrorCodeInternal, "failed to load venue", err)
	}
	if !found {
		return fault.New(fault.ErrorCodeNotFound, "venue not found", nil)
	}

	if err := s.list.Remove(ctx, id); err != nil {
		return fault.New(fault.ErrorCodeInternal, "failed to delete venue", err)
	}
	return nil
}

func (s *Service) Recover(ctx context.Context) (store.RebuildSummary, error) {
	summary, err := s.list.Rebuild(ctx)
	if err != nil {
		return store.RebuildSummary{}, fault.New(fault.ErrorCodeInternal, "failed to rebuild venues list", err)
	}
	return summary, nil
}
