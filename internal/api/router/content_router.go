package router

import (
	"net/http"

	"kartel-backend/internal/api"
	"kartel-backend/internal/api/endpoints"
	"kartel-backend/internal/api/middleware"
	eventservice "kartel-backend/internal/service/event"
	faqservice "kartel-backend/internal/service/faq"
	galleryservice "kartel-backend/internal/service/gallery"
	venueservice "kartel-backend/internal/service/venue"
)

// VenueRoutes: reads are public, writes are admin-only. The same split
// applies to events, FAQs and the gallery below, so each GET route is
// registered separately from its write counterpart.
func VenueRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := venueservice.New(s.Store(), s.Logger())
		venueEndpoints := endpoints.NewVenueEndpoints(service)

		mux.HandleFunc(prefix+"/venues", s.MakeHTTPHandleFunc(guardWrites(venueEndpoints.Venues)))
	}
}

func EventRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := eventservice.New(s.Store(), s.Logger())
		eventEndpoints := endpoints.NewEventEndpoints(service)

		mux.HandleFunc(prefix+"/events", s.MakeHTTPHandleFunc(guardWrites(eventEndpoints.Events)))
		mux.HandleFunc(prefix+"/events/signup", s.MakeHTTPHandleFunc(eventEndpoints.SignUp, middleware.RequireMember()))
		mux.HandleFunc(prefix+"/events/attendance", s.MakeHTTPHandleFunc(eventEndpoints.Attendance, middleware.RequireAdmin()))
	}
}

func FAQRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := faqservice.New(s.Store(), s.Logger())
		faqEndpoints := endpoints.NewFAQEndpoints(service)

		mux.HandleFunc(prefix+"/faqs", s.MakeHTTPHandleFunc(guardWrites(faqEndpoints.FAQs)))
	}
}

func GalleryRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := galleryservice.New(s.Store(), s.Logger())
		galleryEndpoints := endpoints.NewGalleryEndpoints(service)

		mux.HandleFunc(prefix+"/gallery", s.MakeHTTPHandleFunc(guardWrites(galleryEndpoints.Gallery)))
	}
}

// guardWrites leaves GET requests open and pushes every other method
// through the admin check before the handler runs.
func guardWrites(f func(http.ResponseWriter, *http.Request) error) func(http.ResponseWriter, *http.Request) error {
	adminCheck := middleware.RequireAdmin()
	return func(w http.ResponseWriter, r *http.Request) error {
		if r.Method == http.MethodGet {
			return f(w, r)
		}

		var handlerErr error
		adminCheck(func(w http.ResponseWriter, r *http.Request) {
			handlerErr = f(w, r)
		})(w, r)
		return handlerErr
	}
}
