package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard-api/internal/model"
	"github.com/BuzzLyutic/taskboard-api/internal/service"
	"github.com/BuzzLyutic/taskboard-api/pkg/respond"
)

var stamp = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func setupRouter(t *testing.T) (http.Handler, *MockTaskService, *MockSubTaskService) {
	t.Helper()
	tasks := new(MockTaskService)
	subTasks := new(MockSubTaskService)
	t.Cleanup(func() {
		tasks.AssertExpectations(t)
		subTasks.AssertExpectations(t)
	})
	return NewRouter("", fakePinger{}, tasks, subTasks, zap.NewNop()), tasks, subTasks
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body respond.ErrorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body.Error
}

func TestTaskHandler_Create(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(*MockTaskService)
		wantCode  int
		wantError string
		check     func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "title only",
			body: `{"title":"Write report"}`,
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, model.NewTask{Title: "Write report"}).Return(model.Task{
					ID: 1, Title: "Write report", Priority: 3, Status: "pending",
					CreatedAt: stamp, UpdatedAt: stamp, SubTasks: []model.SubTask{},
				}, nil)
			},
			wantCode: http.StatusCreated,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, w.Body.String(), `"priority":3`)
				assert.Contains(t, w.Body.String(), `"sub_tasks":[]`)
				assert.Contains(t, w.Body.String(), `"description":null`)
				assert.Equal(t, "/tasks/1", w.Header().Get("Location"))
			},
		},
		{
			name: "all fields with date-only deadline",
			body: `{"title":"Plan","description":"q3","priority":1,"deadline":"2026-07-01"}`,
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, mock.MatchedBy(func(in model.NewTask) bool {
					return in.Title == "Plan" &&
						in.Description != nil && *in.Description == "q3" &&
						in.Priority != nil && *in.Priority == 1 &&
						in.Deadline != nil && in.Deadline.Equal(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
				})).Return(model.Task{ID: 2, Title: "Plan", Priority: 1}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "missing title",
			body:      `{"description":"no title"}`,
			setupMock: func(*MockTaskService) {},
			wantCode:  http.StatusBadRequest,
			wantError: "Missing title in request body",
		},
		{
			name:      "empty body",
			body:      "",
			setupMock: func(*MockTaskService) {},
			wantCode:  http.StatusBadRequest,
			wantError: "Missing title in request body",
		},
		{
			name:      "invalid json",
			body:      `{"title":`,
			setupMock: func(*MockTaskService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "priority below one",
			body:      `{"title":"x","priority":0}`,
			setupMock: func(*MockTaskService) {},
			wantCode:  http.StatusBadRequest,
			wantError: "priority must be a positive integer",
		},
		{
			name:      "bad deadline",
			body:      `{"title":"x","deadline":"next tuesday"}`,
			setupMock: func(*MockTaskService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "service validation error",
			body: `{"title":"   "}`,
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, mock.Anything).
					Return(model.Task{}, errors.Join(service.ErrValidation, errors.New("title is required")))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "internal error surfaces raw message",
			body: `{"title":"x"}`,
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, mock.Anything).Return(model.Task{}, errors.New("connection refused"))
			},
			wantCode:  http.StatusInternalServerError,
			wantError: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, tasks, _ := setupRouter(t)
			tt.setupMock(tasks)

			w := do(h, http.MethodPost, "/tasks", tt.body)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorBody(t, w))
			}
			if tt.check != nil {
				tt.check(t, w)
			}
		})
	}
}

func TestTaskHandler_List(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h, tasks, _ := setupRouter(t)
		tasks.On("GetAllTasks", mock.Anything).Return([]model.Task{
			{ID: 1, Title: "a", Priority: 1, SubTasks: []model.SubTask{{ID: 3, TaskID: 1, Title: "child"}}},
			{ID: 2, Title: "b", Priority: 2, SubTasks: []model.SubTask{}},
		}, nil)

		w := do(h, http.MethodGet, "/tasks", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var got []model.Task
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		require.Len(t, got, 2)
		assert.Equal(t, "child", got[0].SubTasks[0].Title)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		h, tasks, _ := setupRouter(t)
		tasks.On("GetAllTasks", mock.Anything).Return([]model.Task{}, nil)

		w := do(h, http.MethodGet, "/tasks", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("internal error", func(t *testing.T) {
		h, tasks, _ := setupRouter(t)
		tasks.On("GetAllTasks", mock.Anything).Return([]model.Task(nil), errors.New("db down"))

		w := do(h, http.MethodGet, "/tasks", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "db down", errorBody(t, w))
	})
}

func TestTaskHandler_Get(t *testing.T) {
	t.Run("existing task", func(t *testing.T) {
		h, tasks, _ := setupRouter(t)
		tasks.On("GetTaskByID", mock.Anything, int64(5)).Return(model.Task{ID: 5, Title: "t"}, nil)

		w := do(h, http.MethodGet, "/tasks/5", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var got model.Task
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, int64(5), got.ID)
	})

	t.Run("non-existing task", func(t *testing.T) {
		h, tasks, _ := setupRouter(t)
		tasks.On("GetTaskByID", mock.Anything, int64(99999)).Return(model.Task{}, service.ErrNotFound)

		w := do(h, http.MethodGet, "/tasks/99999", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Task not found", errorBody(t, w))
	})

	t.Run("malformed id", func(t *testing.T) {
		h, _, _ := setupRouter(t)

		w := do(h, http.MethodGet, "/tasks/abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid id", errorBody(t, w))
	})
}

func TestTaskHandler_Update(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(*MockTaskService)
		wantCode  int
		wantError string
	}{
		{
			name: "status only",
			body: `{"status":"done"}`,
			setupMock: func(m *MockTaskService) {
				m.On("UpdateTask", mock.Anything, int64(1), model.TaskPatch{Status: ptr("done")}).
					Return(model.Task{ID: 1, Title: "t", Status: "done"}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "null description clears it",
			body: `{"description":null}`,
			setupMock: func(m *MockTaskService) {
				m.On("UpdateTask", mock.Anything, int64(1), model.TaskPatch{DescriptionSet: true}).
					Return(model.Task{ID: 1}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "deadline set",
			body: `{"deadline":"2026-05-01T09:30:00Z","priority":2}`,
			setupMock: func(m *MockTaskService) {
				m.On("UpdateTask", mock.Anything, int64(1), mock.MatchedBy(func(p model.TaskPatch) bool {
					return p.DeadlineSet && p.Deadline != nil &&
						p.Deadline.Equal(time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)) &&
						p.Priority != nil && *p.Priority == 2 && p.Title == nil
				})).Return(model.Task{ID: 1}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "empty body",
			body:      "",
			setupMock: func(*MockTaskService) {},
			wantCode:  http.StatusBadRequest,
			wantError: "Request body cannot be empty",
		},
		{
			name:      "empty object",
			body:      `{}`,
			setupMock: func(*MockTaskService) {},
			wantCode:  http.StatusBadRequest,
			wantError: "Request body cannot be empty",
		},
		{
			name:      "null title rejected",
			body:      `{"title":null}`,
			setupMock: func(*MockTaskService) {},
			wantCode:  http.StatusBadRequest,
			wantError: "title: must not be null",
		},
		{
			name:      "wrong type",
			body:      `{"priority":"high"}`,
			setupMock: func(*MockTaskService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "not found",
			body: `{"status":"done"}`,
			setupMock: func(m *MockTaskService) {
				m.On("UpdateTask", mock.Anything, int64(1), mock.Anything).Return(model.Task{}, service.ErrNotFound)
			},
			wantCode:  http.StatusNotFound,
			wantError: "Task not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, tasks, _ := setupRouter(t)
			tt.setupMock(tasks)

			w := do(h, http.MethodPut, "/tasks/1", tt.body)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorBody(t, w))
			}
		})
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		h, tasks, _ := setupRouter(t)
		tasks.On("DeleteTask", mock.Anything, int64(3)).Return(nil)

		w := do(h, http.MethodDelete, "/tasks/3", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Task deleted successfully"}`, w.Body.String())
	})

	t.Run("delete non-existing", func(t *testing.T) {
		h, tasks, _ := setupRouter(t)
		tasks.On("DeleteTask", mock.Anything, int64(3)).Return(service.ErrNotFound)

		w := do(h, http.MethodDelete, "/tasks/3", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouter_Health(t *testing.T) {
	ok := NewRouter("", fakePinger{}, new(MockTaskService), new(MockSubTaskService), zap.NewNop())
	w := do(ok, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	down := NewRouter("", fakePinger{err: errors.New("no db")}, new(MockTaskService), new(MockSubTaskService), zap.NewNop())
	w = do(down, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_BasePath(t *testing.T) {
	tasks := new(MockTaskService)
	tasks.On("GetAllTasks", mock.Anything).Return([]model.Task{}, nil)
	h := NewRouter("/api", fakePinger{}, tasks, new(MockSubTaskService), zap.NewNop())

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/tasks", "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/tasks", "").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/health", "").Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	h, _, _ := setupRouter(t)

	w := do(h, http.MethodPatch, "/tasks/1", `{"status":"done"}`)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
