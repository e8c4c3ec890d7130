package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"kartel-backend/internal/dto"
	"kartel-backend/internal/model"
	venuesvc "kartel-backend/internal/service/venue"
)

type VenueEndpoints interface {
	Venues(http.ResponseWriter, *http.Request) error
}

type venueEndpoints struct {
	service *venuesvc.Service
}

func NewVenueEndpoints(service *venuesvc.Service) VenueEndpoints {
	return &venueEndpoints{service: service}
}

func (h *venueEndpoints) Venues(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:    h.handleList,
		http.MethodPost:   h.handleCreate,
		http.MethodPut:    h.handleUpdate,
		http.MethodDelete: h.handleDelete,
	})
}

func (h *venueEndpoints) handleList(w http.ResponseWriter, r *http.Request) error {
	venues, err := h.service.List(r.Context())
	if err != nil {
		return serviceError(err)
	}

	resp := dto.VenueListResponse{
		Success: true,
		Venues:  make([]dto.VenueResponse, 0, len(venues)),
	}
	for _, v := range venues {
		resp.Venues = append(resp.Venues, toVenueResponse(v))
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *venueEndpoints) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req dto.VenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode venue request: %w", err))
	}

	venue, err := h.service.Create(r.Context(), venuesvc.CreateParams{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Website:     req.Website,
	})
	if err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, dto.VenueItemResponse{
		Success: true,
		Venue:   toVenueResponse(venue),
	})
}

func (h *venueEndpoints) handleUpdate(w http.ResponseWriter, r *http.Request) error {
	var req dto.VenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode venue request: %w", err))
	}

	venue, err := h.service.Update(r.Context(), venuesvc.UpdateParams{
		ID:          req.ID,
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Website:     req.Website,
	})
	if err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.VenueItemResponse{
		Success: true,
		Venue:   toVenueResponse(venue),
	})
}

func (h *venueEndpoints) handleDelete(w http.ResponseWriter, r *http.Request) error {
	var req dto.DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode delete request: %w", err))
	}

	if err := h.service.Delete(r.Context(), req.ID); err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.MessageResponse{Success: true})
}

func toVenueResponse(v model.VenueItem) dto.VenueResponse {
	return dto.VenueResponse{
		ID:          v.ID,
		Name:        v.Name,
		Address:     v.Address,
		Description: v.Description,
		Website:     v.Website,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
