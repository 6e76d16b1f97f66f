package rest

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/office-management/internal/auth"
	"github.com/frahmantamala/office-management/internal/department"
	"github.com/frahmantamala/office-management/internal/employee"
	"github.com/frahmantamala/office-management/internal/geography"
	"github.com/frahmantamala/office-management/internal/transport/middleware"
	"github.com/frahmantamala/office-management/internal/transport/swagger"
	"github.com/frahmantamala/office-management/internal/webui"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type RouterConfig struct {
	AllowedOrigins string
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, cfg RouterConfig, authHandler *auth.Handler, departmentHandler *department.Handler, employeeHandler *employee.Handler, geographyHandler *geography.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Admin browser console
	router.Handle("/app/*", http.StripPrefix("/app", webui.Handler()))
	router.Get("/app", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/app/", http.StatusMovedPermanently)
	})

	// Root welcome endpoint
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":       true,
			"message":       "Welcome to Office Management System API",
			"version":       "1.0.0",
			"documentation": "/swagger/",
		})
	})

	// Mount API under /api to match the OpenAPI basePath
	router.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"success":   true,
				"message":   "Office Management API is running",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		})
		r.Get("/health/db", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/register", authHandler.Register)
		})

		r.Route("/locations", func(sr chi.Router) {
			sr.Get("/countries", geographyHandler.GetCountries)
			sr.Get("/states/{country}", geographyHandler.GetStates)
			sr.Get("/cities/{country}/{state}", geographyHandler.GetCities)
		})

		// Reads are public, writes require a valid admin token.
		r.Route("/departments", func(sr chi.Router) {
			sr.Get("/", departmentHandler.List)
			sr.Get("/{id}", departmentHandler.Get)

			sr.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)
				pr.Post("/", departmentHandler.Create)
				pr.Put("/{id}", departmentHandler.Update)
				pr.Delete("/{id}", departmentHandler.Delete)
			})
		})

		r.Route("/employees", func(sr chi.Router) {
			sr.Get("/", employeeHandler.List)
			sr.Get("/{id}", employeeHandler.Get)

			sr.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)
				pr.Post("/", employeeHandler.Create)
				pr.Put("/{id}", employeeHandler.Update)
				pr.Delete("/{id}", employeeHandler.Delete)
			})
		})
	})

	// Unknown routes answer with the standard envelope.
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": fmt.Sprintf("Route %s not found", r.URL.Path),
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
