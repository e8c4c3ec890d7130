package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"kartel-backend/internal/dto"
	"kartel-backend/internal/model"
	appsvc "kartel-backend/internal/service/application"
)

type ApplicationEndpoints interface {
	Submit(http.ResponseWriter, *http.Request) error
	List(http.ResponseWriter, *http.Request) error
	Review(http.ResponseWriter, *http.Request) error
	Action(http.ResponseWriter, *http.Request) error
	Promote(http.ResponseWriter, *http.Request) error
	IssueAdminSetup(http.ResponseWriter, *http.Request) error
	Recover(http.ResponseWriter, *http.Request) error
}

type applicationEndpoints struct {
	service *appsvc.Service
}

func NewApplicationEndpoints(service *appsvc.Service) ApplicationEndpoints {
	return &applicationEndpoints{service: service}
}

func (h *applicationEndpoints) Submit(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleSubmit,
	})
}

func (h *applicationEndpoints) List(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleList,
	})
}

func (h *applicationEndpoints) Review(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleReview,
	})
}

func (h *applicationEndpoints) Action(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:  h.handleAction,
		http.MethodPost: h.handleAction,
	})
}

func (h *applicationEndpoints) Promote(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handlePromote,
	})
}

func (h *applicationEndpoints) IssueAdminSetup(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleIssueAdminSetup,
	})
}

func (h *applicationEndpoints) Recover(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleRecover,
	})
}

func (h *applicationEndpoints) handleSubmit(w http.ResponseWriter, r *http.Request) error {
	var req dto.SubmitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode submit request: %w", err))
	}

	app, err := h.service.Submit(r.Context(), appsvc.SubmitParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Name:      req.Name,
		Email:     req.Email,
		Company:   req.Company,
		Phone:     req.Phone,
		Message:   req.Message,
	})
	if err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, dto.SubmitApplicationResponse{
		Success:     true,
		Application: toApplicationResponse(app),
	})
}

func (h *applicationEndpoints) handleList(w http.ResponseWriter, r *http.Request) error {
	apps, err := h.service.List(r.Context())
	if err != nil {
		return serviceError(err)
	}

	resp := dto.ListApplicationsResponse{
		Success:      true,
		Applications: make([]dto.ApplicationResponse, 0, len(apps)),
	}
	for _, app := range apps {
		resp.Applications = append(resp.Applications, toApplicationResponse(app))
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *applicationEndpoints) handleReview(w http.ResponseWriter, r *http.Request) error {
	var req dto.ReviewApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode review request: %w", err))
	}

	app, err := h.service.Review(r.Context(), appsvc.ReviewParams{
		ApplicationID: req.ApplicationID,
		Decision:      model.ApplicationStatus(req.Decision),
		ReviewedBy:    req.ReviewedBy,
		Notes:         req.Notes,
		Notify:        req.Notify,
	})
	if err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.ReviewApplicationResponse{
		Success:     true,
		Application: toApplicationResponse(app),
	})
}

func (h *applicationEndpoints) handleAction(w http.ResponseWriter, r *http.Request) error {
	token := r.URL.Query().Get("token")

	app, err := h.service.ReviewByActionToken(r.Context(), token)
	if err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.ReviewApplicationResponse{
		Success:     true,
		Application: toApplicationResponse(app),
	})
}

func (h *applicationEndpoints) handlePromote(w http.ResponseWriter, r *http.Request) error {
	var req dto.PromoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode promote request: %w", err))
	}

	app, err := h.service.PromoteToSuperAdmin(r.Context(), req.Email)
	if err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.ReviewApplicationResponse{
		Success:     true,
		Application: toApplicationResponse(app),
	})
}

func (h *applicationEndpoints) handleIssueAdminSetup(w http.ResponseWriter, r *http.Request) error {
	var req dto.IssueAdminSetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode setup request: %w", err))
	}

	if err := h.service.IssueAdminSetupLink(r.Context(), req.ApplicationID); err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Setup link sent",
	})
}

func (h *applicationEndpoints) handleRecover(w http.ResponseWriter, r *http.Request) error {
	summary, err := h.service.Recover(r.Context())
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

func toApplicationResponse(app model.ApplicationItem) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:           app.ID,
		FirstName:    app.FirstName,
		LastName:     app.LastName,
		Email:        app.Email,
		Company:      app.Company,
		Phone:        app.Phone,
		Message:      app.Message,
		Status:       string(app.Status),
		SubmittedAt:  app.SubmittedAt,
		ReviewedAt:   app.ReviewedAt,
		ReviewedBy:   app.ReviewedBy,
		Notes:        app.Notes,
		IsAdmin:      app.IsAdmin,
		IsSuperAdmin: app.IsSuperAdmin,
	}
}
