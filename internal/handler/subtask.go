package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard-api/internal/model"
	"github.com/BuzzLyutic/taskboard-api/pkg/respond"
)

type SubTaskService interface {
	CreateSubTask(ctx context.Context, title string, taskID int64) (model.SubTask, error)
	GetSubTasksForTask(ctx context.Context, taskID int64) ([]model.SubTask, error)
	GetSubTask(ctx context.Context, taskID, id int64) (model.SubTask, error)
	UpdateSubTask(ctx context.Context, taskID, id int64, patch model.SubTaskPatch) (model.SubTask, error)
	DeleteSubTask(ctx context.Context, taskID, id int64) error
}

// SubTaskHandler serves /tasks/{id}/subtasks. It needs the task service only
// to answer 404 for an unknown parent on listing.
type SubTaskHandler struct {
	tasks    TaskService
	subTasks SubTaskService
	logger   *zap.Logger
}

func NewSubTaskHandler(tasks TaskService, subTasks SubTaskService, logger *zap.Logger) *SubTaskHandler {
	return &SubTaskHandler{
		tasks:    tasks,
		subTasks: subTasks,
		logger:   logger,
	}
}

func (h *SubTaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req createSubTaskRequest
	if err := decodeBody(w, r, &req); err != nil {
		if errors.Is(err, errEmptyBody) {
			err = errMissingTitle
		}
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, errMissingTitle.Error())
		return
	}

	subTask, err := h.subTasks.CreateSubTask(r.Context(), req.Title, taskID)
	if err != nil {
		handleErrors(w, r, h.logger, err, msgTaskNotFound)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%d", strings.TrimSuffix(r.URL.Path, "/"), subTask.ID))
	respond.JSON(w, r, http.StatusCreated, subTask)
}

func (h *SubTaskHandler) List(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	exists, err := h.tasks.Exists(r.Context(), taskID)
	if err != nil {
		handleErrors(w, r, h.logger, err, msgTaskNotFound)
		return
	}
	if !exists {
		respond.Error(w, r, http.StatusNotFound, msgTaskNotFound)
		return
	}

	subTasks, err := h.subTasks.GetSubTasksForTask(r.Context(), taskID)
	if err != nil {
		handleErrors(w, r, h.logger, err, msgTaskNotFound)
		return
	}
	respond.JSON(w, r, http.StatusOK, subTasks)
}

func (h *SubTaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	taskID, id, ok := h.ids(w, r)
	if !ok {
		return
	}

	subTask, err := h.subTasks.GetSubTask(r.Context(), taskID, id)
	if err != nil {
		handleErrors(w, r, h.logger, err, msgSubTaskNotFound)
		return
	}
	respond.JSON(w, r, http.StatusOK, subTask)
}

func (h *SubTaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	taskID, id, ok := h.ids(w, r)
	if !ok {
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

	patch, err := subTaskPatchFromJSON(raw)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	subTask, err := h.subTasks.UpdateSubTask(r.Context(), taskID, id, patch)
	if err != nil {
		handleErrors(w, r, h.logger, err, msgSubTaskNotFound)
		return
	}
	respond.JSON(w, r, http.StatusOK, subTask)
}

func (h *SubTaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	taskID, id, ok := h.ids(w, r)
	if !ok {
		return
	}

	if err := h.subTasks.DeleteSubTask(r.Context(), taskID, id); err != nil {
		handleErrors(w, r, h.logger, err, msgSubTaskNotFound)
		return
	}
	respond.Message(w, r, http.StatusOK, "SubTask deleted successfully")
}

func (h *SubTaskHandler) ids(w http.ResponseWriter, r *http.Request) (taskID, id int64, ok bool) {
	taskID, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	id, err = pathID(r, "subtaskID")
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	return taskID, id, true
}
