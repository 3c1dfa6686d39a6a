package main

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/agrovista/agrovista/pkg/dashboard"
	"github.com/agrovista/agrovista/pkg/database"
)

// RouteManager handles all API routes
type RouteManager struct {
	dbManager        *database.Manager
	dashboardService *dashboard.Service
	Router           *mux.Router
}

// NewRouteManager creates a new RouteManager instance
func NewRouteManager(dbManager *database.Manager, dashboardService *dashboard.Service) *RouteManager {
	return &RouteManager{
		dbManager:        dbManager,
		dashboardService: dashboardService,
		Router:           mux.NewRouter(),
	}
}

// Setup configures all API routes
func (rm *RouteManager) Setup() {
	r := rm.Router
	r.Use(rm.corsMiddleware)
	r.Use(rm.contextMiddleware)

	// Global OPTIONS handler - catches all preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health check
	r.HandleFunc("/health", rm.healthHandler).Methods("GET")

	// API v1 routes
	api := r.PathPrefix("/api/v1").Subrouter()
	rm.setupAPIRoutes(api)
}

// setupAPIRoutes configures all API v1 routes
func (rm *RouteManager) setupAPIRoutes(api *mux.Router) {
	// Public auth endpoints (no auth required)
	api.HandleFunc("/auth/register", rm.handleRegister).Methods("POST")
	api.HandleFunc("/auth/login", rm.handleLogin).Methods("POST")
	api.HandleFunc("/auth/logout", rm.handleLogout).Methods("POST")

	// Live rotation snapshots (public, mirrors the landing page widgets)
	api.HandleFunc("/live", rm.getLiveHandler).Methods("GET")
	api.HandleFunc("/live/charts", rm.getLiveChartsHandler).Methods("GET")

	// Readings
	api.HandleFunc("/readings/{kind}/current", rm.getCurrentReadingsHandler).Methods("GET")
	api.HandleFunc("/readings/{kind}/history", rm.getReadingHistoryHandler).Methods("GET")

	// Protected endpoints (auth required)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(rm.JWTAuthMiddleware)

	// User info
	protected.HandleFunc("/auth/me", rm.handleMe).Methods("GET")
	protected.HandleFunc("/auth/refresh", rm.handleRefreshToken).Methods("POST")

	// Re-fetch the historical datasets and rebuild pagination state
	protected.HandleFunc("/readings/reload", rm.reloadReadingsHandler).Methods("POST")

	// Parcel management
	protected.HandleFunc("/parcels", rm.getParcelsHandler).Methods("GET")
	protected.HandleFunc("/parcels", rm.createParcelHandler).Methods("POST")
	protected.HandleFunc("/parcels/stats/crops", rm.getCropStatsHandler).Methods("GET")
	protected.HandleFunc("/parcels/geo", rm.getGeoParcelsHandler).Methods("GET")
	protected.HandleFunc("/parcels/deleted", rm.getDeletedParcelsHandler).Methods("GET")
	protected.HandleFunc("/parcels/deleted/{id}", rm.permanentlyDeleteParcelHandler).Methods("DELETE")
	protected.HandleFunc("/parcels/{id}", rm.getParcelHandler).Methods("GET")
	protected.HandleFunc("/parcels/{id}", rm.updateParcelHandler).Methods("PUT")
	protected.HandleFunc("/parcels/{id}", rm.deleteParcelHandler).Methods("DELETE")
	protected.HandleFunc("/parcels/{id}/restore", rm.restoreParcelHandler).Methods("POST")
}
