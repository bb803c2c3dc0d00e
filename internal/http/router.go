package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stock-backend/internal/access"
	"stock-backend/internal/handlers"
	"stock-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	productHandler *handlers.ProductHandler,
	locationHandler *handlers.LocationHandler,
	transferHandler *handlers.TransferHandler,
	settingsHandler *handlers.SettingsHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Helper to wrap a handler with a capability check.
	can := func(cap access.Capability, h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.RequireCapability(cap)(h).ServeHTTP
	}

	// Protected API routes - Products
	productsAPI := r.PathPrefix("/api/products").Subrouter()
	productsAPI.Use(authMiddleware.Authenticate)
	productsAPI.HandleFunc("", can(access.CapProducts, productHandler.ListProducts)).Methods("GET")
	productsAPI.HandleFunc("", can(access.CapProducts, productHandler.CreateProduct)).Methods("POST")
	productsAPI.HandleFunc("/{id}", can(access.CapProducts, productHandler.GetProduct)).Methods("GET")
	productsAPI.HandleFunc("/{id}", can(access.CapProducts, productHandler.UpdateProduct)).Methods("PATCH")
	productsAPI.HandleFunc("/{id}", can(access.CapProducts, productHandler.DeleteProduct)).Methods("DELETE")

	// Protected API routes - Locations
	locationsAPI := r.PathPrefix("/api/locations").Subrouter()
	locationsAPI.Use(authMiddleware.Authenticate)
	locationsAPI.HandleFunc("", can(access.CapLocations, locationHandler.ListLocations)).Methods("GET")
	locationsAPI.HandleFunc("", can(access.CapLocations, locationHandler.CreateLocation)).Methods("POST")
	locationsAPI.HandleFunc("/{id}", can(access.CapLocations, locationHandler.GetLocation)).Methods("GET")
	locationsAPI.HandleFunc("/{id}", can(access.CapLocations, locationHandler.UpdateLocation)).Methods("PATCH")
	locationsAPI.HandleFunc("/{id}", can(access.CapLocations, locationHandler.DeleteLocation)).Methods("DELETE")

	// Protected API routes - Users
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("", can(access.CapUsers, userHandler.ListUsers)).Methods("GET")
	usersAPI.HandleFunc("", can(access.CapUsers, userHandler.CreateUser)).Methods("POST")
	usersAPI.HandleFunc("/{id}", can(access.CapUsers, userHandler.GetUser)).Methods("GET")
	usersAPI.HandleFunc("/{id}", can(access.CapUsers, userHandler.UpdateUser)).Methods("PATCH")
	usersAPI.HandleFunc("/{id}", can(access.CapUsers, userHandler.DeleteUser)).Methods("DELETE")

	// Protected API routes - Transfers. Each lifecycle action carries its
	// own capability so a receiver cannot dispatch and vice versa.
	transfersAPI := r.PathPrefix("/api/transfers").Subrouter()
	transfersAPI.Use(authMiddleware.Authenticate)
	transfersAPI.HandleFunc("", can(access.CapAllTransfers, transferHandler.ListTransfers)).Methods("GET")
	transfersAPI.HandleFunc("", can(access.CapNewTransfer, transferHandler.CreateTransfer)).Methods("POST")
	transfersAPI.HandleFunc("/{id}", can(access.CapAllTransfers, transferHandler.GetTransfer)).Methods("GET")
	transfersAPI.HandleFunc("/{id}/dispatch", can(access.CapDispatch, transferHandler.DispatchTransfer)).Methods("PATCH")
	transfersAPI.HandleFunc("/{id}/receive", can(access.CapReceive, transferHandler.ReceiveTransfer)).Methods("PATCH")
	transfersAPI.HandleFunc("/{id}/manifest", can(access.CapAllTransfers, transferHandler.Manifest)).Methods("GET")

	// Protected API routes - Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/summary", can(access.CapReports, reportHandler.Summary)).Methods("GET")
	reportsAPI.HandleFunc("/transfers.csv", can(access.CapReports, reportHandler.TransfersCSV)).Methods("GET")

	// Protected API routes - Email settings
	settingsAPI := r.PathPrefix("/api/email-settings").Subrouter()
	settingsAPI.Use(authMiddleware.Authenticate)
	settingsAPI.HandleFunc("", can(access.CapIntegration, settingsHandler.GetSettings)).Methods("GET")
	settingsAPI.HandleFunc("", can(access.CapIntegration, settingsHandler.SaveSettings)).Methods("POST")
	settingsAPI.HandleFunc("/test", can(access.CapIntegration, settingsHandler.SendTest)).Methods("POST")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
