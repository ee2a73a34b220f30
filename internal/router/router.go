package router

import (
	"github.com/avdeyev/liblend/internal/middleware"
	"github.com/avdeyev/liblend/internal/middleware/metrics"
	"github.com/avdeyev/liblend/internal/setup"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New creates the chi router with all routes and their gates. Privileged
// routes are reachable only through the gate middleware, so a rejected call
// never touches a handler or storage.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", middleware.ClaimHeader},
		AllowCredentials: false,
	}))
	r.Use(metrics.Middleware)

	h := deps.Handler
	gate := deps.Gate

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
			r.Post("/google", h.GoogleLogin)
			r.Get("/students", h.ListStudents)
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", h.ListBooks)
			r.With(gate.RequireAdmin()).Post("/", h.CreateBook)
		})

		r.Route("/assignments", func(r chi.Router) {
			r.With(gate.RequireAdmin()).Post("/", h.CreateAssignment)
			r.With(gate.RequireAdmin()).Get("/", h.ListAssignments)
			r.With(gate.RequireSelf("email")).Get("/student/{email}", h.ListStudentAssignments)
		})
	})

	return r
}
