package jwt

import (
	"time"

	"kartel-backend/internal/env"

	"github.com/go-redis/redis/v8"
)

const RefreshTokenTTL = 24 * 30 * time.Hour

const (
	RoleMember Role = iota
	RoleAdmin
	RoleSuperAdmin
)

var (
	RoleSecrets map[Role]string
	RedisClient *redis.Client
)

func init() {
	RoleSecrets = map[Role]string{
		RoleMember:     env.Get(env.MemberSecretKey),
		RoleAdmin:      env.Get(env.AdminSecretKey),
		RoleSuperAdmin: env.Get(env.SuperAdminSecretKey),
	}

	if addr := env.Get(env.AuthRedisURL); addr != "" {
		RedisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: env.Get(env.AuthRedisPass),
			DB:       0,
		})
	}
}
