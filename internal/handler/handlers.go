package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/todoapp/todo-backend/internal/logging"
	"github.com/todoapp/todo-backend/internal/metrics"
	"github.com/todoapp/todo-backend/internal/model"
)

// TodoService is what the handlers need from the domain layer.
type TodoService interface {
	GetAllTodos(ctx context.Context) ([]model.Todo, error)
	CreateTodo(ctx context.Context, draft model.Todo) (*model.Todo, error)
	GetTodoByID(ctx context.Context, id string) (*model.Todo, error)
	UpdateTodo(ctx context.Context, id string, patch model.Todo) (*model.Todo, error)
	UpdatePositions(ctx context.Context, updates []model.PositionUpdate) ([]model.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
	DeleteAllTodos(ctx context.Context) error
}

func ListTodos(svc TodoService, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		todos, err := svc.GetAllTodos(r.Context())
		if err != nil {
			logger.Error().Err(err).Msg("failed to list todos")
			writeError(w, http.StatusInternalServerError, "failed to list todos")
			metrics.TodoOpsCounter.WithLabelValues("list", "error").Inc()
			return
		}
		metrics.TodoOpsCounter.WithLabelValues("list", "success").Inc()
		writeJSON(w, http.StatusOK, todos)
	}
}

func CreateTodo(svc TodoService, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft model.Todo
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			logger.Error().Err(err).Msg("invalid create payload")
			writeError(w, http.StatusBadRequest, "invalid payload")
			metrics.TodoOpsCounter.WithLabelValues("create", "invalid").Inc()
			return
		}

		todo, err := svc.CreateTodo(r.Context(), draft)
		if err != nil {
			logger.Error().Err(err).Msg("failed to create todo")
			writeError(w, http.StatusInternalServerError, "failed to create todo")
			metrics.TodoOpsCounter.WithLabelValues("create", "error").Inc()
			return
		}
		metrics.TodoOpsCounter.WithLabelValues("create", "success").Inc()
		writeJSON(w, http.StatusOK, todo)
	}
}

func GetTodo(svc TodoService, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		todo, err := svc.GetTodoByID(r.Context(), id)
		if err != nil {
			logger.Error().Err(err).Str("id", id).Msg("failed to get todo")
			writeError(w, http.StatusInternalServerError, "failed to get todo")
			metrics.TodoOpsCounter.WithLabelValues("get", "error").Inc()
			return
		}
		if todo == nil {
			writeError(w, http.StatusNotFound, "todo not found")
			metrics.TodoOpsCounter.WithLabelValues("get", "not_found").Inc()
			return
		}
		metrics.TodoOpsCounter.WithLabelValues("get", "success").Inc()
		writeJSON(w, http.StatusOK, todo)
	}
}

func UpdateTodo(svc TodoService, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var patch model.Todo
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			logger.Error().Err(err).Msg("invalid update payload")
			writeError(w, http.StatusBadRequest, "invalid payload")
			metrics.TodoOpsCounter.WithLabelValues("update", "invalid").Inc()
			return
		}

		todo, err := svc.UpdateTodo(r.Context(), id, patch)
		if err != nil {
			respondServiceError(w, logger, "update", err)
			return
		}
		metrics.TodoOpsCounter.WithLabelValues("update", "success").Inc()
		writeJSON(w, http.StatusOK, todo)
	}
}

func UpdatePositions(svc TodoService, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var updates []model.PositionUpdate
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			logger.Error().Err(err).Msg("invalid positions payload")
			writeError(w, http.StatusBadRequest, "invalid payload")
			metrics.TodoOpsCounter.WithLabelValues("reorder", "invalid").Inc()
			return
		}

		todos, err := svc.UpdatePositions(r.Context(), updates)
		if err != nil {
			respondServiceError(w, logger, "reorder", err)
			return
		}
		metrics.TodoOpsCounter.WithLabelValues("reorder", "success").Inc()
		writeJSON(w, http.StatusOK, todos)
	}
}

func DeleteTodo(svc TodoService, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := svc.DeleteTodo(r.Context(), id); err != nil {
			respondServiceError(w, logger, "delete", err)
			return
		}
		metrics.TodoOpsCounter.WithLabelValues("delete", "success").Inc()
		w.WriteHeader(http.StatusOK)
	}
}

func DeleteAllTodos(svc TodoService, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteAllTodos(r.Context()); err != nil {
			logger.Error().Err(err).Msg("failed to delete all todos")
			writeError(w, http.StatusInternalServerError, "failed to delete todos")
			metrics.TodoOpsCounter.WithLabelValues("delete_all", "error").Inc()
			return
		}
		metrics.TodoOpsCounter.WithLabelValues("delete_all", "success").Inc()
		w.WriteHeader(http.StatusOK)
	}
}

// respondServiceError maps a domain error onto the response: a missing
// id is 404, anything else is a storage failure.
func respondServiceError(w http.ResponseWriter, logger *logging.Logger, op string, err error) {
	if errors.Is(err, model.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		metrics.TodoOpsCounter.WithLabelValues(op, "not_found").Inc()
		return
	}
	logger.Error().Err(err).Str("operation", op).Msg("todo operation failed")
	writeError(w, http.StatusInternalServerError, "operation failed")
	metrics.TodoOpsCounter.WithLabelValues(op, "error").Inc()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a structured JSON error.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
	})
}
