package jwt

type Role int

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Member is the authenticated subject carried inside session tokens. It is
// the approved application's identity, not a separate account record.
type Member struct {
	Id    string `json:"id"`
	Email string `json:"email"`
}
