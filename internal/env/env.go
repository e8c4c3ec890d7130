package env

import (
	"os"
)

const (
	AWSRegion        = "AWS_REGION"
	AWSID            = "AWS_ID"
	AWSSecret        = "AWS_SECRET"
	AWSToken         = "AWS_TOKEN"
	DynamoDBEndpoint = "DYNAMODB_ENDPOINT"
	RecordsTable     = "RECORDS_TABLE"

	MemberSecretKey     = "MEMBER_SECRET"
	AdminSecretKey      = "ADMIN_SECRET"
	SuperAdminSecretKey = "SUPERADMIN_SECRET"
	AuthRedisURL        = "AUTH_REDIS_URL"
	AuthRedisPass       = "AUTH_REDIS_PASS"
	AuthMode            = "AUTH_MODE"

	EmailFrom     = "EMAIL_FROM"
	AdminEmail    = "ADMIN_EMAIL"
	WebUrl        = "WEB_URL"
	LoginTokenTTL = "LOGIN_TOKEN_TTL"
	SetupTokenTTL = "SETUP_TOKEN_TTL"

	LogLevel  = "LOG_LEVEL"
	LogFormat = "LOG_FORMAT"
)

func Get(key string) string {
	return os.Getenv(key)
}

func GetOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func MustGet(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("env: required environment variable not set: " + key)
	}
	return val
}
