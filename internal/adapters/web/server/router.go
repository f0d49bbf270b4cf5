package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lcalzada-xor/hsmap/internal/adapters/web/middleware"
)

func SetupRoutes(s *Server) http.Handler {
	router := mux.NewRouter()

	// Protected API
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.APIKeyMiddleware(s.APIKeyHash))

	api.HandleFunc("/networks", s.NetworkHandler.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/networks/{key}", s.NetworkHandler.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/decode", s.NetworkHandler.HandleDecode).Methods(http.MethodPost)
	api.HandleFunc("/report", s.ReportHandler.HandleSurveyReport).Methods(http.MethodGet)

	// Live discovery feed
	router.HandleFunc("/ws", s.WSManager.HandleWebSocket)

	// Metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	return router
}
