package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard-api/internal/middleware"
	"github.com/BuzzLyutic/taskboard-api/pkg/respond"
)

// Pinger reports storage health; *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter wires middleware, /health and the task routes mounted under basePath.
func NewRouter(basePath string, db Pinger, tasks TaskService, subTasks SubTaskService, logger *zap.Logger) http.Handler {
	taskHandler := NewTaskHandler(tasks, logger)
	subTaskHandler := NewSubTaskHandler(tasks, subTasks, logger)

	r := chi.NewRouter() // Создаем роутер
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, http.StatusNotFound, "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", health(db, logger))

	routes := func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", taskHandler.Create)
			r.Get("/", taskHandler.List)
			r.Get("/{id}", taskHandler.Get)
			r.Put("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)

			r.Route("/{id}/subtasks", func(r chi.Router) {
				r.Post("/", subTaskHandler.Create)
				r.Get("/", subTaskHandler.List)
				r.Get("/{subtaskID}", subTaskHandler.Get)
				r.Put("/{subtaskID}", subTaskHandler.Update)
				r.Delete("/{subtaskID}", subTaskHandler.Delete)
			})
		})
	}

	if basePath == "" {
		routes(r)
	} else {
		r.Route(basePath, routes)
	}
	return r
}

func health(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			respond.JSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	}
}
