package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/vehicle-dashboard/internal/handlers"
	"github.com/GregMSThompson/vehicle-dashboard/internal/middleware"
)

func NewRouter(deps *handlers.Deps, authClient *auth.Client) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	dh := handlers.NewDashboardHandlers(deps)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewMiddleware(authClient).FirebaseAuth)
		r.Mount("/dashboard", dh.DashboardRoutes())
	})
	return r
}
