package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"kartel-backend/internal/dto"
	pushsvc "kartel-backend/internal/service/push"
)

type PushEndpoints interface {
	Subscribe(http.ResponseWriter, *http.Request) error
	Broadcast(http.ResponseWriter, *http.Request) error
}

type pushEndpoints struct {
	service *pushsvc.Service
}

func NewPushEndpoints(service *pushsvc.Service) PushEndpoints {
	return &pushEndpoints{service: service}
}

func (h *pushEndpoints) Subscribe(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleSubscribe,
	})
}

func (h *pushEndpoints) Broadcast(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleBroadcast,
	})
}

func (h *pushEndpoints) handleSubscribe(w http.ResponseWriter, r *http.Request) error {
	var req dto.PushSubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode subscribe request: %w", err))
	}

	sub, err := h.service.Subscribe(r.Context(), pushsvc.SubscribeParams{
		Endpoint: req.Endpoint,
		Keys:     req.Keys,
		MemberID: req.MemberID,
	})
	if err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, dto.PushSubscribeResponse{
		Success:        true,
		SubscriptionID: sub.ID,
	})
}

func (h *pushEndpoints) handleBroadcast(w http.ResponseWriter, r *http.Request) error {
	var req dto.PushBroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode broadcast request: %w", err))
	}

	result, err := h.service.Broadcast(r.Context(), req.Title, req.Body)
	if err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.PushBroadcastResponse{
		Success: true,
		Sent:    result.Sent,
		Removed: result.Removed,
		Failed:  result.Failed,
	})
}
