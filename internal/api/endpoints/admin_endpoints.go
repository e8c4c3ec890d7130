package endpoints

import (
	"context"
	"fmt"
	"net/http"

	"kartel-backend/internal/dto"
	"kartel-backend/internal/model"
	"kartel-backend/internal/store"

	eventsvc "kartel-backend/internal/service/event"
	faqsvc "kartel-backend/internal/service/faq"
	gallerysvc "kartel-backend/internal/service/gallery"
	pushsvc "kartel-backend/internal/service/push"
	venuesvc "kartel-backend/internal/service/venue"
)

type AdminEndpoints interface {
	Recover(http.ResponseWriter, *http.Request) error
}

type recoverFunc func(context.Context) (store.RebuildSummary, error)

// adminEndpoints rebuilds a collection's list blob from its records. The
// applications collection has its own recover route on the application
// endpoints; everything else is served here by collection name.
type adminEndpoints struct {
	recoverers map[string]recoverFunc
}

func NewAdminEndpoints(
	venues *venuesvc.Service,
	events *eventsvc.Service,
	faqs *faqsvc.Service,
	gallery *gallerysvc.Service,
	push *pushsvc.Service,
) AdminEndpoints {
	return &adminEndpoints{
		recoverers: map[string]recoverFunc{
			model.VenuesCollection:            venues.Recover,
			model.EventsCollection:            events.Recover,
			model.FAQsCollection:              faqs.Recover,
			model.GalleryCollection:           gallery.Recover,
			model.PushSubscriptionsCollection: push.Recover,
		},
	}
}

func (h *adminEndpoints) Recover(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleRecover,
	})
}

func (h *adminEndpoints) handleRecover(w http.ResponseWriter, r *http.Request) error {
	collection := r.URL.Query().Get("collection")
	rebuild, ok := h.recoverers[collection]
	if !ok {
		return badRequest("Unknown collection", fmt.Errorf("recover for unknown collection %q", collection))
	}

	summary, err := rebuild(r.Context())
	if err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.RecoverResponse{
		Success:      true,
		Recovered:    summary.Recovered,
		Skipped:      summary.Skipped,
		StatusCounts: summary.StatusCounts,
	})
}
