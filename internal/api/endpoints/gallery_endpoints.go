package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"kartel-backend/internal/dto"
	"kartel-backend/internal/model"
	gallerysvc "kartel-backend/internal/service/gallery"
)

type GalleryEndpoints interface {
	Gallery(http.ResponseWriter, *http.Request) error
}

type galleryEndpoints struct {
	service *gallerysvc.Service
}

func NewGalleryEndpoints(service *gallerysvc.Service) GalleryEndpoints {
	return &galleryEndpoints{service: service}
}

func (h *galleryEndpoints) Gallery(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:    h.handleList,
		http.MethodPost:   h.handleAdd,
		http.MethodDelete: h.handleDelete,
	})
}

func (h *galleryEndpoints) handleList(w http.ResponseWriter, r *http.Request) error {
	photos, err := h.service.List(r.Context())
	if err != nil {
		return serviceError(err)
	}

	resp := dto.GalleryListResponse{
		Success: true,
		Photos:  make([]dto.GalleryPhotoResponse, 0, len(photos)),
	}
	for _, p := range photos {
		resp.Photos = append(resp.Photos, toGalleryResponse(p))
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *galleryEndpoints) handleAdd(w http.ResponseWriter, r *http.Request) error {
	var req dto.GalleryPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode gallery request: %w", err))
	}

	photo, err := h.service.Add(r.Context(), gallerysvc.AddParams{
		URL:     req.URL,
		Caption: req.Caption,
	})
	if err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, dto.GalleryItemResponse{
		Success: true,
		Photo:   toGalleryResponse(photo),
	})
}

func (h *galleryEndpoints) handleDelete(w http.ResponseWriter, r *http.Request) error {
	var req dto.DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode delete request: %w", err))
	}

	if err := h.service.Delete(r.Context(), req.ID); err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.MessageResponse{Success: true})
}

func toGalleryResponse(p model.GalleryPhotoItem) dto.GalleryPhotoResponse {
	return dto.GalleryPhotoResponse{
		ID:         p.ID,
		URL:        p.URL,
		Caption:    p.Caption,
		UploadedBy: p.UploadedBy,
		CreatedAt:  p.CreatedAt,
	}
}
