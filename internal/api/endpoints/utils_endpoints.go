package endpoints

import (
	"context"
	"net/http"
	"time"

	"kartel-backend/internal/store"
)

type UtilsEndpoints interface {
	Health(http.ResponseWriter, *http.Request) error
}

type utilsEndpoints struct {
	store store.Store
}

func NewUtilsEndpoints(s store.Store) UtilsEndpoints {
	return &utilsEndpoints{store: s}
}

func (h *utilsEndpoints) Health(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleHealth,
	})
}

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

func (h *utilsEndpoints) handleHealth(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Store: "ok"}
	if _, err := h.store.Get(ctx, "health", "probe"); err != nil {
		resp.Status = "degraded"
		resp.Store = "unreachable"
		return WriteJSON(w, http.StatusServiceUnavailable, resp)
	}
	return WriteJSON(w, http.StatusOK, resp)
}
