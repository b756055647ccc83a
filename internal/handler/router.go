package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/todoapp/todo-backend/internal/logging"
)

// RouterDeps carries everything the router needs wired in.
type RouterDeps struct {
	Todos  TodoService
	Logger *logging.Logger

	// Health probes the backing store. A nil Health makes /health
	// always report ok.
	Health func(ctx context.Context) error
}

// NewRouter builds the HTTP surface: the /api/todos routes, wildcard
// CORS, and a health endpoint.
func NewRouter(deps *RouterDeps) chi.Router {
	logger := deps.Logger

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(jsonContentType)
	// Development stance: every origin is allowed. Tighten at deployment.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", healthHandler(deps.Health))

	r.Route("/api/todos", func(r chi.Router) {
		r.Get("/", ListTodos(deps.Todos, logger))
		r.Post("/", CreateTodo(deps.Todos, logger))
		r.Delete("/", DeleteAllTodos(deps.Todos, logger))
		// The static segment outranks {id} in chi, so "positions" is
		// never taken as an id.
		r.Put("/positions", UpdatePositions(deps.Todos, logger))
		r.Get("/{id}", GetTodo(deps.Todos, logger))
		r.Put("/{id}", UpdateTodo(deps.Todos, logger))
		r.Delete("/{id}", DeleteTodo(deps.Todos, logger))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
		logger.Warn().Str("path", r.URL.Path).Msg("404 not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		logger.Warn().Str("path", r.URL.Path).Msg("405 method not allowed")
	})

	return r
}

func healthHandler(probe func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if probe != nil {
			if err := probe(r.Context()); err != nil {
				writeError(w, http.StatusServiceUnavailable, "store unreachable")
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Forces JSON Content-Type for all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
