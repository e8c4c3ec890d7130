package router

import (
	"net/http"

	"kartel-backend/internal/api"
	"kartel-backend/internal/api/endpoints"
	"kartel-backend/internal/api/middleware"
	eventservice "kartel-backend/internal/service/event"
	faqservice "kartel-backend/internal/service/faq"
	galleryservice "kartel-backend/internal/service/gallery"
	pushservice "kartel-backend/internal/service/push"
	venueservice "kartel-backend/internal/service/venue"
)

func AdminRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		adminEndpoints := endpoints.NewAdminEndpoints(
			venueservice.New(s.Store(), s.Logger()),
			eventservice.New(s.Store(), s.Logger()),
			faqservice.New(s.Store(), s.Logger()),
			galleryservice.New(s.Store(), s.Logger()),
			pushservice.New(s.Store(), s.Push(), s.Logger()),
		)

		mux.HandleFunc(prefix+"/admin/recover", s.MakeHTTPHandleFunc(adminEndpoints.Recover, middleware.RequireAdmin()))
	}
}
