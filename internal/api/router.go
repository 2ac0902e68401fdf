package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasksum-api/internal/api/middleware"
	"github.com/phrazzld/tasksum-api/internal/api/shared"
)

// NewRouter registers every endpoint and the shared middleware chain.
func NewRouter(tasks *TaskHandler, health *HealthHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewTraceMiddleware(logger))
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", tasks.CreateTask)
		r.Get("/", tasks.ListTasks)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", tasks.GetTask)
			r.Put("/", tasks.UpdateTask)
			r.Patch("/", tasks.UpdateTask)
			r.Delete("/", tasks.DeleteTask)
		})
	})

	r.Get("/health", health.Health)

	return r
}
