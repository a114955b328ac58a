package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BuzzLyutic/taskboard-api/internal/model"
)

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) GetAllTasks(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) GetTaskByID(ctx context.Context, id int64) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskService) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskService) CreateTask(ctx context.Context, in model.NewTask) (model.Task, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (model.Task, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSubTaskService struct {
	mock.Mock
}

func (m *MockSubTaskService) CreateSubTask(ctx context.Context, title string, taskID int64) (model.SubTask, error) {
	args := m.Called(ctx, title, taskID)
	return args.Get(0).(model.SubTask), args.Error(1)
}

func (m *MockSubTaskService) GetSubTasksForTask(ctx context.Context, taskID int64) ([]model.SubTask, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).([]model.SubTask), args.Error(1)
}

func (m *MockSubTaskService) GetSubTask(ctx context.Context, taskID, id int64) (model.SubTask, error) {
	args := m.Called(ctx, taskID, id)
	return args.Get(0).(model.SubTask), args.Error(1)
}

func (m *MockSubTaskService) UpdateSubTask(ctx context.Context, taskID, id int64, patch model.SubTaskPatch) (model.SubTask, error) {
	args := m.Called(ctx, taskID, id, patch)
	return args.Get(0).(model.SubTask), args.Error(1)
}

func (m *MockSubTaskService) DeleteSubTask(ctx context.Context, taskID, id int64) error {
	args := m.Called(ctx, taskID, id)
	return args.Error(0)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }
