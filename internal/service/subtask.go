package service

import (
	"context"
	"errors"
	"strings"

	"github.com/BuzzLyutic/taskboard-api/internal/model"
	"github.com/BuzzLyutic/taskboard-api/internal/repo"
)

type SubTaskService struct {
	tx repo.Transactor
}

func NewSubTaskService(tx repo.Transactor) *SubTaskService {
	return &SubTaskService{tx: tx}
}

// CreateSubTask checks the parent task before inserting. A missing parent
// yields ErrParentNotFound and writes nothing.
func (s *SubTaskService) CreateSubTask(ctx context.Context, title string, taskID int64) (model.SubTask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.SubTask{}, validationError("title is required")
	}

	var subTask model.SubTask
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		if _, err := r.Tasks.GetForUpdate(ctx, taskID); err != nil {
			if isNotFound(err) {
				return ErrParentNotFound
			}
			return err
		}

		id, err := r.SubTasks.Create(ctx, title, taskID)
		if err != nil {
			return err
		}
		subTask, err = r.SubTasks.Get(ctx, id)
		return err
	})
	return subTask, err
}

// GetSubTasksForTask does not check that the task exists; an unknown task
// simply has no sub-tasks.
func (s *SubTaskService) GetSubTasksForTask(ctx context.Context, taskID int64) ([]model.SubTask, error) {
	var subTasks []model.SubTask
	err := s.tx.ReadTx(ctx, func(r repo.Repos) error {
		var err error
		subTasks, err = r.SubTasks.ListByTaskID(ctx, taskID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if subTasks == nil {
		subTasks = []model.SubTask{}
	}
	return subTasks, nil
}

func (s *SubTaskService) GetSubTask(ctx context.Context, taskID, id int64) (model.SubTask, error) {
	var subTask model.SubTask
	err := s.tx.ReadTx(ctx, func(r repo.Repos) error {
		var err error
		subTask, err = ownedSubTask(ctx, r.SubTasks.Get, taskID, id)
		return err
	})
	return subTask, err
}

func (s *SubTaskService) UpdateSubTask(ctx context.Context, taskID, id int64, patch model.SubTaskPatch) (model.SubTask, error) {
	if patch.Empty() {
		return model.SubTask{}, validationError("no fields to update")
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return model.SubTask{}, validationError("title must not be empty")
	}
	if patch.Status != nil && strings.TrimSpace(*patch.Status) == "" {
		return model.SubTask{}, validationError("status must not be empty")
	}
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
	}

	var subTask model.SubTask
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		current, err := ownedSubTask(ctx, r.SubTasks.GetForUpdate, taskID, id)
		if err != nil {
			return err
		}
		if err := r.SubTasks.Update(ctx, patch.Apply(current)); err != nil {
			return err
		}
		subTask, err = r.SubTasks.Get(ctx, id)
		return err
	})
	return subTask, err
}

func (s *SubTaskService) DeleteSubTask(ctx context.Context, taskID, id int64) error {
	return s.tx.InTx(ctx, func(r repo.Repos) error {
		if _, err := ownedSubTask(ctx, r.SubTasks.GetForUpdate, taskID, id); err != nil {
			return err
		}
		return r.SubTasks.Delete(ctx, id)
	})
}

// ownedSubTask loads a sub-task and hides it when it belongs to another task.
func ownedSubTask(
	ctx context.Context,
	get func(context.Context, int64) (model.SubTask, error),
	taskID, id int64,
) (model.SubTask, error) {
	subTask, err := get(ctx, id)
	if err != nil {
		return model.SubTask{}, err
	}
	if subTask.TaskID != taskID {
		return model.SubTask{}, ErrNotFound
	}
	return subTask, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, repo.ErrorNotFound)
}
