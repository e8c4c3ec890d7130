package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"kartel-backend/internal/dto"
	"kartel-backend/internal/model"
	faqsvc "kartel-backend/internal/service/faq"
)

type FAQEndpoints interface {
	FAQs(http.ResponseWriter, *http.Request) error
}

type faqEndpoints struct {
	service *faqsvc.Service
}

func NewFAQEndpoints(service *faqsvc.Service) FAQEndpoints {
	return &faqEndpoints{service: service}
}

func (h *faqEndpoints) FAQs(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:    h.handleList,
		http.MethodPost:   h.handleCreate,
		http.MethodPut:    h.handleUpdate,
		http.MethodDelete: h.handleDelete,
	})
}

func (h *faqEndpoints) handleList(w http.ResponseWriter, r *http.Request) error {
	faqs, err := h.service.List(r.Context())
	if err != nil {
		return serviceError(err)
	}

	resp := dto.FAQListResponse{
		Success: true,
		FAQs:    make([]dto.FAQResponse, 0, len(faqs)),
	}
	for _, f := range faqs {
		resp.FAQs = append(resp.FAQs, toFAQResponse(f))
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *faqEndpoints) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req dto.FAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode faq request: %w", err))
	}

	faq, err := h.service.Create(r.Context(), faqsvc.UpsertParams{
		Question: req.Question,
		Answer:   req.Answer,
		Order:    req.Order,
	})
	if err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, dto.FAQItemResponse{
		Success: true,
		FAQ:     toFAQResponse(faq),
	})
}

func (h *faqEndpoints) handleUpdate(w http.ResponseWriter, r *http.Request) error {
	var req dto.FAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode faq request: %w", err))
	}

	faq, err := h.service.Update(r.Context(), faqsvc.UpsertParams{
		ID:       req.ID,
		Question: req.Question,
		Answer:   req.Answer,
		Order:    req.Order,
	})
	if err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.FAQItemResponse{
		Success: true,
		FAQ:     toFAQResponse(faq),
	})
}

func (h *faqEndpoints) handleDelete(w http.ResponseWriter, r *http.Request) error {
	var req dto.DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode delete request: %w", err))
	}

	if err := h.service.Delete(r.Context(), req.ID); err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.MessageResponse{Success: true})
}

func toFAQResponse(f model.FAQItem) dto.FAQResponse {
	return dto.FAQResponse{
		ID:        f.ID,
		Question:  f.Question,
		Answer:    f.Answer,
		Order:     f.Order,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
