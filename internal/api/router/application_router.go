package router

import (
	"net/http"
	"time"

	"kartel-backend/internal/api"
	"kartel-backend/internal/api/endpoints"
	"kartel-backend/internal/api/middleware"
	"kartel-backend/internal/env"
	applicationservice "kartel-backend/internal/service/application"
)

func ApplicationRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := applicationservice.New(s.Store(), s.Email(), applicationConfig(), s.Logger())
		appEndpoints := endpoints.NewApplicationEndpoints(service)

		// Submission and the emailed approve/reject links are public; the
		// rest is the admin review surface.
		mux.HandleFunc(prefix+"/applications", s.MakeHTTPHandleFunc(appEndpoints.List, middleware.RequireAdmin()))
		mux.HandleFunc(prefix+"/applications/submit", s.MakeHTTPHandleFunc(appEndpoints.Submit))
		mux.HandleFunc(prefix+"/applications/action", s.MakeHTTPHandleFunc(appEndpoints.Action))
		mux.HandleFunc(prefix+"/applications/review", s.MakeHTTPHandleFunc(appEndpoints.Review, middleware.RequireAdmin()))
		mux.HandleFunc(prefix+"/applications/setup-link", s.MakeHTTPHandleFunc(appEndpoints.IssueAdminSetup, middleware.RequireAdmin()))
		mux.HandleFunc(prefix+"/applications/promote", s.MakeHTTPHandleFunc(appEndpoints.Promote, middleware.RequireSuperAdmin()))
		mux.HandleFunc(prefix+"/applications/recover", s.MakeHTTPHandleFunc(appEndpoints.Recover, middleware.RequireAdmin()))
	}
}

func applicationConfig() applicationservice.Config {
	return applicationservice.Config{
		WebURL:        env.GetOrDefault(env.WebUrl, "http://localhost:3000"),
		AdminEmail:    env.Get(env.AdminEmail),
		LoginTokenTTL: durationFromEnv(env.LoginTokenTTL),
		SetupTokenTTL: durationFromEnv(env.SetupTokenTTL),
	}
}

func durationFromEnv(key string) time.Duration {
	raw := env.Get(key)
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}
