package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"kartel-backend/internal/env"
	internaljwt "kartel-backend/internal/jwt"

	"github.com/golang-jwt/jwt"
)

const legacyMinTokenLength = 32

// writeUnauthorized emits the same JSON error envelope the handlers use, so
// auth rejections are not the one plain-text response in the API.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// ValidateJWTMiddleware accepts a bearer token signed for any of the given
// roles; expiry is rechecked from the claims.
func ValidateJWTMiddleware(roles ...internaljwt.Role) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				writeUnauthorized(w, "Unauthorized")
				return
			}

			var claims jwt.MapClaims
			var err error
			for _, role := range roles {
				claims, err = internaljwt.ParseToken(tokenString, role)
				if err == nil {
					break
				}
			}
			if err != nil {
				writeUnauthorized(w, "Unauthorized")
				return
			}

			expires, ok := claims["exp"].(float64)
			if !ok || time.Now().Unix() > int64(expires) {
				writeUnauthorized(w, "Token expired")
				return
			}

			next(w, r)
		}
	}
}

// legacyBearerCheck is the deprecated scheme carried for clients that still
// send opaque admin tokens: any bearer value of plausible token length
// passes. Selected via AUTH_MODE=legacy.
func legacyBearerCheck() Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if len(bearerToken(r)) < legacyMinTokenLength {
				writeUnauthorized(w, "Unauthorized")
				return
			}
			next(w, r)
		}
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func legacyMode() bool {
	return env.Get(env.AuthMode) == "legacy"
}

// RequireMember admits any authenticated member, admins included.
func RequireMember() Middleware {
	if legacyMode() {
		return legacyBearerCheck()
	}
	return ValidateJWTMiddleware(internaljwt.RoleMember, internaljwt.RoleAdmin, internaljwt.RoleSuperAdmin)
}

func RequireAdmin() Middleware {
	if legacyMode() {
		return legacyBearerCheck()
	}
	return ValidateJWTMiddleware(internaljwt.RoleAdmin, internaljwt.RoleSuperAdmin)
}

func RequireSuperAdmin() Middleware {
	if legacyMode() {
		return legacyBearerCheck()
	}
	return ValidateJWTMiddleware(internaljwt.RoleSuperAdmin)
}
