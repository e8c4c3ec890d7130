package api

import (
	"net/http"

	"kartel-backend/internal/notify"
	"kartel-backend/internal/queue"
	"kartel-backend/internal/store"

	"go.uber.org/zap"
)

type RouteRegistrar func(mux *http.ServeMux, s *APIServer)

type APIServer struct {
	listenAddr          string
	requestQueueManager *queue.RequestQueueManager
	store               store.Store
	email               notify.EmailSender
	push                notify.PushSender
	routeRegistrars     []RouteRegistrar
	metrics             *metrics
	logger              *zap.Logger
}

func NewAPIServer(
	listenAddr string,
	rqm *queue.RequestQueueManager,
	recordStore store.Store,
	email notify.EmailSender,
	push notify.PushSender,
	logger *zap.Logger,
	registrars ...RouteRegistrar,
) *APIServer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &APIServer{
		listenAddr:          listenAddr,
		requestQueueManager: rqm,
		store:               recordStore,
		email:               email,
		push:                push,
		routeRegistrars:     registrars,
		metrics:             newMetrics(listenAddr, rqm),
		logger:              logger,
	}
}

func (s *APIServer) Run() {
	mux := http.NewServeMux()

	for _, reg := range s.routeRegistrars {
		reg(mux, s)
	}

	mux.Handle("/metrics", s.metrics.metricsHandler())

	s.logger.Info("server listening", zap.String("addr", s.listenAddr))

	if err := http.ListenAndServe(s.listenAddr, s.metrics.instrument(mux)); err != nil {
		s.logger.Error("server stopped", zap.Error(err))
	}
}

func (s *APIServer) Store() store.Store {
	return s.store
}

func (s *APIServer) Email() notify.EmailSender {
	return s.email
}

func (s *APIServer) Push() notify.PushSender {
	return s.push
}

func (s *APIServer) Logger() *zap.Logger {
	return s.logger
}
