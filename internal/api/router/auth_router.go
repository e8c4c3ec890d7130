package router

import (
	"net/http"

	"kartel-backend/internal/api"
	"kartel-backend/internal/api/endpoints"
	"kartel-backend/internal/api/middleware"
	applicationservice "kartel-backend/internal/service/application"
)

func AuthRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := applicationservice.New(s.Store(), s.Email(), applicationConfig(), s.Logger())
		authEndpoints := endpoints.NewAuthEndpoints(service)

		mux.HandleFunc(prefix+"/auth/setup-password", s.MakeHTTPHandleFunc(authEndpoints.SetupPassword))
		mux.HandleFunc(prefix+"/auth/login-link", s.MakeHTTPHandleFunc(authEndpoints.RequestLoginLink))
		mux.HandleFunc(prefix+"/auth/verify", s.MakeHTTPHandleFunc(authEndpoints.VerifyLogin))
		mux.HandleFunc(prefix+"/auth/login", s.MakeHTTPHandleFunc(authEndpoints.Login))
		mux.HandleFunc(prefix+"/auth/admin-login", s.MakeHTTPHandleFunc(authEndpoints.AdminLogin))
		mux.HandleFunc(prefix+"/auth/set-password", s.MakeHTTPHandleFunc(authEndpoints.SetMemberPassword, middleware.RequireMember()))
	}
}
