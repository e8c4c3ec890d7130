package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"kartel-backend/internal/api"
	"kartel-backend/internal/dto"
	internaljwt "kartel-backend/internal/jwt"
	"kartel-backend/internal/model"
	"kartel-backend/internal/notify"
	"kartel-backend/internal/queue"
	applicationsvc "kartel-backend/internal/service/application"
	"kartel-backend/internal/store"
)

type testEmailSender struct {
	mu   sync.Mutex
	sent []notify.EmailMessage
}

func (f *testEmailSender) Send(ctx context.Context, msg notify.EmailMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

func setupApplicationHandler(t *testing.T) (http.Handler, *applicationsvc.Service, func()) {
	t.Helper()

	recordStore := store.NewMemoryStore()
	email := &testEmailSender{}
	service := applicationsvc.New(recordStore, email, applicationsvc.Config{
		WebURL:     "https://kartel.example",
		AdminEmail: "board@kartel.example",
		TokenIssuer: func(member internaljwt.Member, role internaljwt.Role, validUntil int64) (internaljwt.TokenResponse, error) {
			return internaljwt.TokenResponse{AccessToken: "access-" + member.Id}, nil
		},
	}, nil)

	appEndpoints := &applicationEndpoints{service: service}

	queueManager := queue.NewRequestQueueManager(10, 1, nil)
	server := api.NewAPIServer(":0", queueManager, recordStore, email, nil, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/applications", server.MakeHTTPHandleFunc(appEndpoints.List))
	mux.HandleFunc("/api/v1/applications/submit", server.MakeHTTPHandleFunc(appEndpoints.Submit))
	mux.HandleFunc("/api/v1/applications/review", server.MakeHTTPHandleFunc(appEndpoints.Review))
	mux.HandleFunc("/api/v1/applications/action", server.MakeHTTPHandleFunc(appEndpoints.Action))
	mux.HandleFunc("/api/v1/applications/recover", server.MakeHTTPHandleFunc(appEndpoints.Recover))

	return mux, service, func() {
		queueManager.Shutdown()
	}
}

func doJSONRequest[T any](t *testing.T, handler http.Handler, method, target string, body interface{}, expectedStatus int) T {
	t.Helper()

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		payload = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != expectedStatus {
		t.Fatalf("expected status %d, got %d: %s", expectedStatus, rec.Code, rec.Body.String())
	}

	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return result
}

func TestApplicationEndpointsEndToEnd(t *testing.T) {
	handler, _, cleanup := setupApplicationHandler(t)
	defer cleanup()

	submitted := doJSONRequest[dto.SubmitApplicationResponse](t, handler,
		http.MethodPost, "/api/v1/applications/submit",
		dto.SubmitApplicationRequest{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Phone:     "+31612345678",
		}, http.StatusCreated)

	if !submitted.Success || submitted.Application.Status != string(model.ApplicationStatusPending) {
		t.Fatalf("unexpected submit response: %+v", submitted)
	}
	if submitted.Application.ID == "" {
		t.Fatal("submit response must carry the application id")
	}

	listed := doJSONRequest[dto.ListApplicationsResponse](t, handler,
		http.MethodGet, "/api/v1/applications", nil, http.StatusOK)
	if len(listed.Applications) != 1 {
		t.Fatalf("expected one application, got %+v", listed)
	}

	reviewed := doJSONRequest[dto.ReviewApplicationResponse](t, handler,
		http.MethodPost, "/api/v1/applications/review",
		dto.ReviewApplicationRequest{
			ApplicationID: submitted.Application.ID,
			Decision:      string(model.ApplicationStatusApproved),
			ReviewedBy:    "board@kartel.example",
		}, http.StatusOK)
	if reviewed.Application.Status != string(model.ApplicationStatusApproved) {
		t.Fatalf("unexpected review response: %+v", reviewed)
	}

	recovered := doJSONRequest[dto.RecoverResponse](t, handler,
		http.MethodPost, "/api/v1/applications/recover", nil, http.StatusOK)
	if recovered.Recovered != 1 {
		t.Fatalf("unexpected recover response: %+v", recovered)
	}
	if recovered.StatusCounts[string(model.ApplicationStatusApproved)] != 1 {
		t.Fatalf("unexpected status counts: %+v", recovered.StatusCounts)
	}
}

func TestSubmitValidationFailureMapsTo400(t *testing.T) {
	handler, _, cleanup := setupApplicationHandler(t)
	defer cleanup()

	errResp := doJSONRequest[api.ApiError](t, handler,
		http.MethodPost, "/api/v1/applications/submit",
		dto.SubmitApplicationRequest{Email: "ada@example.com"},
		http.StatusBadRequest)
	if errResp.Error == "" {
		t.Fatal("expected an error message")
	}
}

func TestReviewUnknownApplicationMapsTo404(t *testing.T) {
	handler, _, cleanup := setupApplicationHandler(t)
	defer cleanup()

	doJSONRequest[api.ApiError](t, handler,
		http.MethodPost, "/api/v1/applications/review",
		dto.ReviewApplicationRequest{
			ApplicationID: "app_missing",
			Decision:      string(model.ApplicationStatusApproved),
		}, http.StatusNotFound)
}

func TestActionLinkApprovesApplication(t *testing.T) {
	handler, service, cleanup := setupApplicationHandler(t)
	defer cleanup()

	app, err := service.Submit(context.Background(), applicationsvc.SubmitParams{
		FirstName: "Ada",
		Email:     "ada@example.com",
		Phone:     "+31612345678",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	approved := doJSONRequest[dto.ReviewApplicationResponse](t, handler,
		http.MethodGet, "/api/v1/applications/action?token="+app.ApproveToken, nil, http.StatusOK)
	if approved.Application.Status != string(model.ApplicationStatusApproved) {
		t.Fatalf("unexpected action response: %+v", approved)
	}

	// The companion reject link is dead after the decision.
	doJSONRequest[api.ApiError](t, handler,
		http.MethodGet, "/api/v1/applications/action?token="+app.RejectToken, nil, http.StatusConflict)
}

func TestMethodNotAllowed(t *testing.T) {
	handler, _, cleanup := setupApplicationHandler(t)
	defer cleanup()

	doJSONRequest[api.ApiError](t, handler,
		http.MethodDelete, "/api/v1/applications/submit", nil, http.StatusMethodNotAllowed)
}
