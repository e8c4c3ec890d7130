package router

import (
	"net/http"

	"kartel-backend/internal/api"
	"kartel-backend/internal/api/endpoints"
	"kartel-backend/internal/api/middleware"
	pushservice "kartel-backend/internal/service/push"
)

func PushRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := pushservice.New(s.Store(), s.Push(), s.Logger())
		pushEndpoints := endpoints.NewPushEndpoints(service)

		mux.HandleFunc(prefix+"/push/subscribe", s.MakeHTTPHandleFunc(pushEndpoints.Subscribe))
		mux.HandleFunc(prefix+"/push/broadcast", s.MakeHTTPHandleFunc(pushEndpoints.Broadcast, middleware.RequireAdmin()))
	}
}
