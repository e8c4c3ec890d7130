package gallery

import (
	"context"
	"strings"
	"time"

	"kartel-backend/internal/model"
	"kartel-backend/internal/service/fault"
	"kartel-backend/internal/store"

	"go.uber.org/zap"
)

type AddParams struct {
	URL        string
	Caption    string
	UploadedBy string
}

type Service struct {
	store  store.Store
	list   *store.List[model.GalleryPhotoItem]
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

func listConfig() store.ListConfig[model.GalleryPhotoItem] {
	return store.ListConfig[model.GalleryPhotoItem]{
		Collection: model.GalleryCollection,
		Key: func(p model.GalleryPhotoItem) string {
			return p.ID
		},
		SubmittedAt: func(p model.GalleryPhotoItem) time.Time {
			return store.RecordTime(p.CreatedAt)
		},
		Valid: func(p model.GalleryPhotoItem) bool {
			return p.URL != ""
		},
	}
}

func (s *Service) Add(ctx context.Context, params AddParams) (model.GalleryPhotoItem, error) {
	url := strings.TrimSpace(params.URL)
	if url == "" {
		return model.GalleryPhotoItem{}, fault.New(fault.ErrorCodeValidation, "missing required field: url", nil)
	}

	photo := model.GalleryPhotoItem{
		ID:         model.NewRecordID("photo"),
		URL:        url,
		Caption:    strings.TrimSpace(params.Caption),
		UploadedBy: strings.TrimSpace(params.UploadedBy),
		CreatedAt:  s.now().UTC().Format(time.RFC3339),
	}

	if err := s.list.AppendOrUpdate(ctx, photo); err != nil {
		return model.GalleryPhotoItem{}, fault.New(fault.ErrorCodeInternal, "failed to save photo", err)
	}
	return photo, nil
}

func (s *Service) List(ctx context.Context) ([]model.GalleryPhotoItem, error) {
	photos, err := s.list.Load(ctx)
	if err != nil {
		return nil, fault.New(fault.ErrorCodeInternal, "failed to load gallery", err)
	}
	return photos, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	var photo model.GalleryPhotoItem
	found, err := store.GetJSON(ctx, s.store, model.GalleryCollection, id, &photo)
	if err != nil {
		return fault.New(fault.ErrorCodeInternal, "failed to load photo", err)
	}
	if !found {
		return fault.New(fault.ErrorCodeNotFound, "photo not found", nil)
	}

	if err := s.list.Remove(ctx, id); err != nil {
		return fault.New(fault.ErrorCodeInternal, "failed to delete photo", err)
	}
	return nil
}

func (s *Service) Recover(ctx context.Context) (store.RebuildSummary, error) {
	summary, err := s.list.Rebuild(ctx)
	if err != nil {
		return store.RebuildSummary{}, fault.New(fault.ErrorCodeInternal, "failed to rebuild gallery list", err)
	}
	return summary, nil
}
