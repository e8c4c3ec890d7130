package event

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
	Title       string
	VenueID     string
	VenueName   string
	Date        string
	Description string
}

type SignUpParams struct {
	EventID  string
	MemberID string
	Name     string
	Email    string
	Company  string
}

// Service manages events and their attendee roster. A member appears at
// most once per event.
type Service struct {
	store  store.Store
	list   *store.List[model.EventItem]
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

func listConfig() store.ListConfig[model.EventItem] {
	return store.ListConfig[model.EventItem]{
		Collection: model.EventsCollection,
		Key: func(e model.EventItem) string {
			return e.ID
		},
		SubmittedAt: func(e model.EventItem) time.Time {
			return store.RecordTime(e.CreatedAt)
		},
		Valid: func(e model.EventItem) bool {
			return e.Title != ""
		},
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (model.EventItem, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return model.EventItem{}, fault.New(fault.ErrorCodeValidation, "missing required field: title", nil)
	}

	event := model.EventItem{
		ID:          model.NewRecordID("event"),
		Title:       title,
		VenueID:     strings.TrimSpace(params.VenueID),
		VenueName:   strings.TrimSpace(params.VenueName),
		Date:        strings.TrimSpace(params.Date),
		Description: strings.TrimSpace(params.Description),
		Attendees:   []model.AttendeeItem{},
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
	}

	if err := s.list.AppendOrUpdate(ctx, event); err != nil {
		return model.EventItem{}, fault.New(fault.ErrorCodeInternal, "failed to save event", err)
	}
	return event, nil
}

func (s *Service) List(ctx context.Context) ([]model.EventItem, error) {
	events, err := s.list.Load(ctx)
	if err != nil {
		return nil, fault.New(fault.ErrorCodeInternal, "failed to load events", err)
	}
	return events, nil
}

func (s *Service) Get(ctx context.Context, id string) (model.EventItem, error) {
	return s.getByID(ctx, id)
}

// SignUp appends the member to the event's attendee roster. Signing up
// twice is a conflict and leaves the roster unchanged.
func (s *Service) SignUp(ctx context.Context, params SignUpParams) (model.AttendeeItem, error) {
	memberID := strings.TrimSpace(params.MemberID)
	if memberID == "" {
		return model.AttendeeItem{}, fault.New(fault.ErrorCodeValidation, "missing required field: memberId", nil)
	}

	event, err := s.getByID(ctx, params.EventID)
	if err != nil {
		return model.AttendeeItem{}, err
	}

	for _, attendee := range event.Attendees {
		if attendee.MemberID == memberID {
			return model.AttendeeItem{}, fault.New(fault.ErrorCodeConflict, "already signed up for this event", nil)
		}
	}

	attendee := model.AttendeeItem{
		MemberID:     memberID,
		Name:         strings.TrimSpace(params.Name),
		Email:        strings.TrimSpace(params.Email),
		Company:      strings.TrimSpace(params.Company),
		RegisteredAt: s.now().UTC().Format(time.RFC3339),
		Attended:     false,
	}
	event.Attendees = append(event.Attendees, attendee)
	event.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	if err := s.list.AppendOrUpdate(ctx, event); err != nil {
		return model.AttendeeItem{}, fault.New(fault.ErrorCodeInternal, "failed to save sign-up", err)
	}
	return attendee, nil
}

// MarkAttended flags a registered attendee as present.
func (s *Service) MarkAttended(ctx context.Context, eventID, memberID string) (model.EventItem, error) {
	event, err := s.getByID(ctx, eventID)
	if err != nil {
		return model.EventItem{}, err
	}

	updated := false
	for i, attendee := range event.Attendees {
		if attendee.MemberID == memberID {
			event.Attendees[i].Attended = true
			updated = true
			break
		}
	}
	if !updated {
		return model.EventItem{}, fault.New(fault.ErrorCodeNotFound, "attendee not found", nil)
	}

	event.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	if err := s.list.AppendOrUpdate(ctx, event); err != nil {
		return model.EventItem{}, fault.New(fault.ErrorCodeInternal, "failed to save attendance", err)
	}
	return event, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.getByID(ctx, id); err != nil {
		return err
	}
	if err := s.list.Remove(ctx, id); err != nil {
		return fault.New(fault.ErrorCodeInternal, "failed to delete event", err)
	}
	return nil
}

func (s *Service) Recover(ctx context.Context) (store.RebuildSummary, error) {
	summary, err := s.list.Rebuild(ctx)
	if err != nil {
		return store.RebuildSummary{}, fault.New(fault.ErrorCodeInternal, "failed to rebuild events list", err)
	}
	return summary, nil
}

func (s *Service) getByID(ctx context.Context, id string) (model.EventItem, error) {
	if id == "" {
		return model.EventItem{}, fault.New(fault.ErrorCodeValidation, "missing event id", nil)
	}

	var event model.EventItem
	found, err := store.GetJSON(ctx, s.store, model.EventsCollection, id, &event)
	if err != nil {
		return model.EventItem{}, fault.New(fault.ErrorCodeInternal, "failed to load event", err)
	}
	if !found {
		return model.EventItem{}, fault.New(fault.ErrorCodeNotFound, "event not found", nil)
	}
	return event, nil
}
