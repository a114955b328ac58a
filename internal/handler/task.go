package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard-api/internal/model"
	"github.com/BuzzLyutic/taskboard-api/internal/service"
	"github.com/BuzzLyutic/taskboard-api/pkg/respond"
)

type TaskService interface {
	GetAllTasks(ctx context.Context) ([]model.Task, error)
	GetTaskByID(ctx context.Context, id int64) (model.Task, error)
	Exists(ctx context.Context, id int64) (bool, error)
	CreateTask(ctx context.Context, in model.NewTask) (model.Task, error)
	UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

const (
	msgTaskNotFound    = "Task not found"
	msgSubTaskNotFound = "SubTask not found"
	msgParentNotFound  = "Parent task not found"
)

type TaskHandler struct {
	service TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeBody(w, r, &req); err != nil {
		if errors.Is(err, errEmptyBody) {
			err = errMissingTitle
		}
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	in, err := req.toNewTask()
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.service.CreateTask(r.Context(), in)
	if err != nil {
		handleErrors(w, r, h.logger, err, msgTaskNotFound)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%d", strings.TrimSuffix(r.URL.Path, "/"), task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.GetAllTasks(r.Context())
	if err != nil {
		handleErrors(w, r, h.logger, err, msgTaskNotFound)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.service.GetTaskByID(r.Context(), id)
	if err != nil {
		handleErrors(w, r, h.logger, err, msgTaskNotFound)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var raw map[string]json.RawMessage
	if err := decodeBody(w, r, &raw); err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(raw) == 0 {
		respond.Error(w, r, http.StatusBadRequest, errEmptyBody.Error())
		return
	}

	patch, err := taskPatchFromJSON(raw)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.service.UpdateTask(r.Context(), id, patch)
	if err != nil {
		handleErrors(w, r, h.logger, err, msgTaskNotFound)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.DeleteTask(r.Context(), id); err != nil {
		handleErrors(w, r, h.logger, err, msgTaskNotFound)
		return
	}
	respond.Message(w, r, http.StatusOK, "Task deleted successfully")
}

// handleErrors is the one place service errors become status codes.
// Internal errors are returned verbatim and logged.
func handleErrors(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error, notFound string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrParentNotFound):
		respond.Error(w, r, http.StatusNotFound, msgParentNotFound)
	case errors.Is(err, service.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, notFound)
	default:
		logger.Error("internal error",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", chimw.GetReqID(r.Context())),
		)
		respond.Error(w, r, http.StatusInternalServerError, err.Error())
	}
}
