package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"kartel-backend/internal/dto"
	"kartel-backend/internal/model"
	eventsvc "kartel-backend/internal/service/event"
)

type EventEndpoints interface {
	Events(http.ResponseWriter, *http.Request) error
	SignUp(http.ResponseWriter, *http.Request) error
	Attendance(http.ResponseWriter, *http.Request) error
}

type eventEndpoints struct {
	service *eventsvc.Service
}

func NewEventEndpoints(service *eventsvc.Service) EventEndpoints {
	return &eventEndpoints{service: service}
}

func (h *eventEndpoints) Events(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:    h.handleList,
		http.MethodPost:   h.handleCreate,
		http.MethodDelete: h.handleDelete,
	})
}

func (h *eventEndpoints) SignUp(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleSignUp,
	})
}

func (h *eventEndpoints) Attendance(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleAttendance,
	})
}

func (h *eventEndpoints) handleList(w http.ResponseWriter, r *http.Request) error {
	if id := r.URL.Query().Get("id"); id != "" {
		event, err := h.service.Get(r.Context(), id)
		if err != nil {
			return serviceError(err)
		}
		return WriteJSON(w, http.StatusOK, dto.EventItemResponse{
			Success: true,
			Event:   toEventResponse(event),
		})
	}

	events, err := h.service.List(r.Context())
	if err != nil {
		return serviceError(err)
	}

	resp := dto.EventListResponse{
		Success: true,
		Events:  make([]dto.EventResponse, 0, len(events)),
	}
	for _, e := range events {
		resp.Events = append(resp.Events, toEventResponse(e))
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *eventEndpoints) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req dto.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode event request: %w", err))
	}

	event, err := h.service.Create(r.Context(), eventsvc.CreateParams{
		Title:       req.Title,
		VenueID:     req.VenueID,
		VenueName:   req.VenueName,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, dto.EventItemResponse{
		Success: true,
		Event:   toEventResponse(event),
	})
}

func (h *eventEndpoints) handleDelete(w http.ResponseWriter, r *http.Request) error {
	var req dto.DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode delete request: %w", err))
	}

	if err := h.service.Delete(r.Context(), req.ID); err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.MessageResponse{Success: true})
}

func (h *eventEndpoints) handleSignUp(w http.ResponseWriter, r *http.Request) error {
	var req dto.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode sign up request: %w", err))
	}

	attendee, err := h.service.SignUp(r.Context(), eventsvc.SignUpParams{
		EventID:  req.EventID,
		MemberID: req.MemberID,
		Name:     req.Name,
		Email:    req.Email,
		Company:  req.Company,
	})
	if err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.SignUpResponse{
		Success:  true,
		Attendee: toAttendeeResponse(attendee),
	})
}

func (h *eventEndpoints) handleAttendance(w http.ResponseWriter, r *http.Request) error {
	var req dto.AttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode attendance request: %w", err))
	}

	event, err := h.service.MarkAttended(r.Context(), req.EventID, req.MemberID)
	if err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.EventItemResponse{
		Success: true,
		Event:   toEventResponse(event),
	})
}

func toEventResponse(e model.EventItem) dto.EventResponse {
	resp := dto.EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		VenueID:     e.VenueID,
		VenueName:   e.VenueName,
		Date:        e.Date,
		Description: e.Description,
		Attendees:   make([]dto.AttendeeResponse, 0, len(e.Attendees)),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	for _, a := range e.Attendees {
		resp.Attendees = append(resp.Attendees, toAttendeeResponse(a))
	}
	return resp
}

func toAttendeeResponse(a model.AttendeeItem) dto.AttendeeResponse {
	return dto.AttendeeResponse{
		MemberID:     a.MemberID,
		Name:         a.Name,
		Email:        a.Email,
		Company:      a.Company,
		RegisteredAt: a.RegisteredAt,
		Attended:     a.Attended,
	}
}
