package dto

type SetupPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type LoginLinkRequest struct {
	Email string `json:"email"`
}

type VerifyLoginRequest struct {
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SetPasswordRequest struct {
	Password string `json:"password"`
}

type AuthResponse struct {
	Success      bool                `json:"success"`
	AccessToken  string              `json:"accessToken"`
	RefreshToken string              `json:"refreshToken,omitempty"`
	Member       ApplicationResponse `json:"member"`
}
