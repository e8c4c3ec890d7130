package token

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"kartel-backend/internal/model"
	"kartel-backend/internal/store"

	"go.uber.org/zap"
)

var (
	ErrNotFound    = errors.New("token not found")
	ErrExpired     = errors.New("token expired")
	ErrAlreadyUsed = errors.New("token already used")
)

// Service issues, validates and single-consumes time-bounded tokens kept in
// a dedicated collection (admin-tokens, login-tokens). A token moves from
// unused to used exactly once; expiry is checked at validation time rather
// than swept proactively.
type Service struct {
	store      store.Store
	collection string
	now        func() time.Time
	logger     *zap.Logger
}

func New(s store.Store, collection string, logger *zap.Logger) *Service {
	return NewWithClock(s, collection, logger, time.Now)
}

func NewWithClock(s store.Store, collection string, logger *zap.Logger, now func() time.Time) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:      s,
		collection: collection,
		now:        now,
		logger:     logger,
	}
}

// Issue stores a fresh token for the subject and returns the token string,
// which doubles as the record key.
func (s *Service) Issue(ctx context.Context, subjectID, email string, ttl time.Duration) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	token := hex.EncodeToString(raw)

	now := s.now().UTC()
	item := model.TokenItem{
		Token:     token,
		SubjectID: subjectID,
		Email:     email,
		ExpiresAt: now.Add(ttl).Format(time.RFC3339),
		Used:      false,
		CreatedAt: now.Format(time.RFC3339),
	}

	if err := store.SetJSON(ctx, s.store, s.collection, token, item); err != nil {
		return "", err
	}
	return token, nil
}

// Validate checks the token without consuming it, so a read-only check does
// not burn the credential. Expired tokens are opportunistically deleted.
func (s *Service) Validate(ctx context.Context, token string) (model.TokenItem, error) {
	var item model.TokenItem
	found, err := store.GetJSON(ctx, s.store, s.collection, token, &item)
	if err != nil {
		return model.TokenItem{}, err
	}
	if !found {
		return model.TokenItem{}, ErrNotFound
	}

	if s.now().UTC().After(store.RecordTime(item.ExpiresAt)) {
		if err := s.store.Delete(ctx, s.collection, token); err != nil {
			s.logger.Warn("failed to delete expired token",
				zap.String("collection", s.collection),
				zap.Error(err))
		}
		return model.TokenItem{}, ErrExpired
	}

	if item.Used {
		return model.TokenItem{}, ErrAlreadyUsed
	}

	return item, nil
}

// Consume marks the token used. A concurrent double-submit is not locked
// against; the second caller fails on its own Validate with ErrAlreadyUsed.
func (s *Service) Consume(ctx context.Context, token string) error {
	var item model.TokenItem
	found, err := store.GetJSON(ctx, s.store, s.collection, token, &item)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	if item.Used {
		return ErrAlreadyUsed
	}

	item.Used = true
	item.UsedAt = s.now().UTC().Format(time.RFC3339)
	return store.SetJSON(ctx, s.store, s.collection, token, item)
}
