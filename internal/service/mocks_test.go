package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/BuzzLyutic/taskboard-api/internal/model"
	"github.com/BuzzLyutic/taskboard-api/internal/repo"
)

// MockTaskRepository - мок репозитория задач
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) List(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Get(ctx context.Context, id int64) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) GetForUpdate(ctx context.Context, id int64) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, title string, description *string, priority int, deadline *time.Time) (int64, error) {
	args := m.Called(ctx, title, description, priority, deadline)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, t model.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSubTaskRepository - мок репозитория подзадач
type MockSubTaskRepository struct {
	mock.Mock
}

func (m *MockSubTaskRepository) ListByTaskID(ctx context.Context, taskID int64) ([]model.SubTask, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).([]model.SubTask), args.Error(1)
}

func (m *MockSubTaskRepository) Get(ctx context.Context, id int64) (model.SubTask, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.SubTask), args.Error(1)
}

func (m *MockSubTaskRepository) GetForUpdate(ctx context.Context, id int64) (model.SubTask, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.SubTask), args.Error(1)
}

func (m *MockSubTaskRepository) Create(ctx context.Context, title string, taskID int64) (int64, error) {
	args := m.Called(ctx, title, taskID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubTaskRepository) Update(ctx context.Context, s model.SubTask) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubTaskRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubTaskRepository) DeleteByTaskID(ctx context.Context, taskID int64) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

// fakeTx runs every unit of work directly against the mocks.
type fakeTx struct {
	repos  repo.Repos
	writes int
	reads  int
}

func newFakeTx(tasks *MockTaskRepository, subTasks *MockSubTaskRepository) *fakeTx {
	return &fakeTx{repos: repo.Repos{Tasks: tasks, SubTasks: subTasks}}
}

func (f *fakeTx) InTx(_ context.Context, fn func(repo.Repos) error) error {
	f.writes++
	return fn(f.repos)
}

func (f *fakeTx) ReadTx(_ context.Context, fn func(repo.Repos) error) error {
	f.reads++
	return fn(f.repos)
}

func ptr[T any](v T) *T { return &v }
