package application

import (
	"kartel-backend/internal/jwt"
	"kartel-backend/internal/model"
	"time"
)

type SubmitParams struct {
	FirstName string
	LastName  string
	Name      string
	Email     string
	Company   string
	Phone     string
	Message   string
}

type ReviewParams struct {
	ApplicationID string
	Decision      model.ApplicationStatus
	ReviewedBy    string
	Notes         string
	Notify        bool
}

type AuthResult struct {
	Member model.ApplicationItem
	Tokens jwt.TokenResponse
}

// Config carries collaborator addresses and token TTLs; there is no ambient
// module state, everything is passed in at construction.
type Config struct {
	WebURL        string
	AdminEmail    string
	LoginTokenTTL time.Duration
	SetupTokenTTL time.Duration

	// TokenIssuer mints session tokens; defaults to the Redis-backed
	// jwt.CreateTokenWithRefresh. Tests substitute a plain issuer here.
	TokenIssuer func(jwt.Member, jwt.Role, int64) (jwt.TokenResponse, error)
}
