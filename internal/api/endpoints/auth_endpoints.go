package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"kartel-backend/internal/dto"
	appsvc "kartel-backend/internal/service/application"
)

type AuthEndpoints interface {
	SetupPassword(http.ResponseWriter, *http.Request) error
	SetMemberPassword(http.ResponseWriter, *http.Request) error
	RequestLoginLink(http.ResponseWriter, *http.Request) error
	VerifyLogin(http.ResponseWriter, *http.Request) error
	Login(http.ResponseWriter, *http.Request) error
	AdminLogin(http.ResponseWriter, *http.Request) error
}

type authEndpoints struct {
	service *appsvc.Service
}

func NewAuthEndpoints(service *appsvc.Service) AuthEndpoints {
	return &authEndpoints{service: service}
}

func (h *authEndpoints) SetupPassword(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleSetupPassword,
	})
}

func (h *authEndpoints) SetMemberPassword(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleSetMemberPassword,
	})
}

func (h *authEndpoints) RequestLoginLink(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleRequestLoginLink,
	})
}

func (h *authEndpoints) VerifyLogin(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleVerifyLogin,
	})
}

func (h *authEndpoints) Login(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleLogin,
	})
}

func (h *authEndpoints) AdminLogin(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleAdminLogin,
	})
}

func (h *authEndpoints) handleSetupPassword(w http.ResponseWriter, r *http.Request) error {
	var req dto.SetupPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode setup password request: %w", err))
	}

	if err := h.service.GrantAdminCredentials(r.Context(), req.Token, req.Password); err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Password set",
	})
}

func (h *authEndpoints) handleSetMemberPassword(w http.ResponseWriter, r *http.Request) error {
	memberID := r.URL.Query().Get("memberId")
	if memberID == "" {
		return badRequest("memberId is required", fmt.Errorf("set member password without memberId"))
	}

	var req dto.SetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode set password request: %w", err))
	}

	if err := h.service.SetMemberPassword(r.Context(), memberID, req.Password); err != nil {
		return serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Password set",
	})
}

func (h *authEndpoints) handleRequestLoginLink(w http.ResponseWriter, r *http.Request) error {
	var req dto.LoginLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode login link request: %w", err))
	}

	if err := h.service.RequestLoginLink(r.Context(), req.Email); err != nil {
		return serviceError(err)
	}

	// Identical response whether or not the address belongs to a member.
	return WriteJSON(w, http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "If the address is registered, a login link is on its way",
	})
}

func (h *authEndpoints) handleVerifyLogin(w http.ResponseWriter, r *http.Request) error {
	var req dto.VerifyLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode verify login request: %w", err))
	}

	result, err := h.service.LoginWithToken(r.Context(), req.Token)
	if err != nil {
		return serviceError(err)
	}
	return WriteJSON(w, http.StatusOK, toAuthResponse(result))
}

func (h *authEndpoints) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode login request: %w", err))
	}

	result, err := h.service.LoginWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		return serviceError(err)
	}
	return WriteJSON(w, http.StatusOK, toAuthResponse(result))
}

func (h *authEndpoints) handleAdminLogin(w http.ResponseWriter, r *http.Request) error {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("Invalid request payload", fmt.Errorf("decode admin login request: %w", err))
	}

	result, err := h.service.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		return serviceError(err)
	}
	return WriteJSON(w, http.StatusOK, toAuthResponse(result))
}

func toAuthResponse(result appsvc.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Success:      true,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		Member:       toApplicationResponse(result.Member),
	}
}
