package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/user-administration/internal/auth"
	"github.com/frahmantamala/user-administration/internal/employee"
	"github.com/frahmantamala/user-administration/internal/project"
	"github.com/frahmantamala/user-administration/internal/transport/middleware"
	"github.com/frahmantamala/user-administration/internal/transport/swagger"
	"github.com/frahmantamala/user-administration/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, employeeHandler *employee.Handler, projectHandler *project.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				if userHandler != nil {
					pr.Get("/users/me", userHandler.GetCurrentUser)

					pr.Route("/users", func(ur chi.Router) {
						ur.Get("/", userHandler.GetUsers)
						ur.Get("/{id}", userHandler.GetUser)

						// Account mutations are admin-only
						ur.Group(func(ar chi.Router) {
							ar.Use(middleware.RequireRoles(user.RoleAdmin))
							ar.Post("/", userHandler.CreateUser)
							ar.Put("/{id}", userHandler.UpdateUser)
							ar.Delete("/{id}", userHandler.DeleteUser)
							ar.Post("/{id}/reset-password", userHandler.ResetPassword)
						})
					})
				}

				if employeeHandler != nil {
					pr.Route("/employees", func(er chi.Router) {
						er.Get("/", employeeHandler.GetEmployees)
						er.Get("/lookup", employeeHandler.Lookup)
					})
				}

				if projectHandler != nil {
					pr.Route("/projects", func(pjr chi.Router) {
						pjr.Get("/", projectHandler.GetProjects)
						pjr.Get("/tree", projectHandler.GetTree)
						pjr.Post("/selection/toggle", projectHandler.ToggleSelection)
						pjr.Post("/selection/all", projectHandler.SelectAll)
						pjr.Post("/selection/summary", projectHandler.Summary)
					})
				}
			})
		}
	})
}
