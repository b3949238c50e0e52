package http

import (
	"net/http"

	"clinic-portal-api/internal/delivery/http/handler"
	"clinic-portal-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router         *mux.Router
	authHandler    *handler.AuthHandler
	clinicHandler  *handler.ClinicHandler
	invoiceHandler *handler.InvoiceHandler
	patientHandler *handler.PatientHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	clinicHandler *handler.ClinicHandler,
	invoiceHandler *handler.InvoiceHandler,
	patientHandler *handler.PatientHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		authHandler:    authHandler,
		clinicHandler:  clinicHandler,
		invoiceHandler: invoiceHandler,
		patientHandler: patientHandler,
		adminHandler:   adminHandler,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/request-password-reset", r.authHandler.RequestPasswordReset).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password", r.authHandler.ResetPassword).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Clinic wait time: reads are public, writes are staff-or-above
	api.HandleFunc("/clinic/wait-time", r.clinicHandler.GetWaitTime).Methods(http.MethodGet)

	clinicProtected := api.PathPrefix("/clinic").Subrouter()
	clinicProtected.Use(r.authMiddleware.Authenticate)
	clinicProtected.Use(middleware.RequireStaffOrAbove)
	clinicProtected.HandleFunc("/wait-time", r.clinicHandler.SetWaitTime).Methods(http.MethodPut)

	// Invoice ledger (staff-or-above)
	invoices := api.PathPrefix("/invoices").Subrouter()
	invoices.Use(r.authMiddleware.Authenticate)
	invoices.Use(middleware.RequireStaffOrAbove)
	invoices.HandleFunc("/{invoiceId}", r.invoiceHandler.GetInvoice).Methods(http.MethodGet)
	invoices.HandleFunc("/{invoiceId}/transactions", r.invoiceHandler.ListInvoiceTransactions).Methods(http.MethodGet)
	invoices.HandleFunc("/{invoiceId}/payments", r.invoiceHandler.RecordPayment).Methods(http.MethodPost)

	// Patient portal (patient-only, self-scoped)
	patientPortal := api.PathPrefix("/patient-profile").Subrouter()
	patientPortal.Use(r.authMiddleware.Authenticate)
	patientPortal.Use(middleware.RequirePatient)
	patientPortal.HandleFunc("", r.patientHandler.GetSelfProfile).Methods(http.MethodGet)
	patientPortal.HandleFunc("/invoices", r.invoiceHandler.ListOwnInvoices).Methods(http.MethodGet)

	// Admin surface
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", r.adminHandler.ListAuditLogs).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
