package service

import (
	"context"
	"strings"

	"github.com/BuzzLyutic/taskboard-api/internal/model"
	"github.com/BuzzLyutic/taskboard-api/internal/repo"
)

type TaskService struct {
	tx repo.Transactor
}

func NewTaskService(tx repo.Transactor) *TaskService {
	return &TaskService{tx: tx}
}

// GetAllTasks returns every task with its sub-tasks attached. Sub-tasks are
// fetched with one query per task rather than a join.
func (s *TaskService) GetAllTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := s.tx.ReadTx(ctx, func(r repo.Repos) error {
		list, err := r.Tasks.List(ctx)
		if err != nil {
			return err
		}
		for i := range list {
			if err := attachSubTasks(ctx, r, &list[i]); err != nil {
				return err
			}
		}
		tasks = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id int64) (model.Task, error) {
	var task model.Task
	err := s.tx.ReadTx(ctx, func(r repo.Repos) error {
		var err error
		task, err = getComposite(ctx, r, id)
		return err
	})
	return task, err
}

func (s *TaskService) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.tx.ReadTx(ctx, func(r repo.Repos) error {
		_, err := r.Tasks.Get(ctx, id)
		switch {
		case err == nil:
			exists = true
		case isNotFound(err):
		default:
			return err
		}
		return nil
	})
	return exists, err
}

func (s *TaskService) CreateTask(ctx context.Context, in model.NewTask) (model.Task, error) {
	title := strings.TrimSpace(in.Title)
	priority := model.DefaultPriority
	if in.Priority != nil {
		priority = *in.Priority
	}
	if err := validateTask(title, priority); err != nil { // Валидация до обращения к БД
		return model.Task{}, err
	}

	var task model.Task
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		id, err := r.Tasks.Create(ctx, title, in.Description, priority, in.Deadline)
		if err != nil {
			return err
		}
		// Перечитываем строку, чтобы вернуть значения, выставленные БД
		task, err = r.Tasks.Get(ctx, id)
		if err != nil {
			return err
		}
		task.SubTasks = []model.SubTask{}
		return nil
	})
	return task, err
}

// UpdateTask applies the present fields of patch to the stored task and
// returns the fresh composite view. The row stays locked from the read to
// the write, so a concurrent delete cannot slip in between.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (model.Task, error) {
	if patch.Empty() {
		return model.Task{}, validationError("no fields to update")
	}
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
	}

	var task model.Task
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		current, err := r.Tasks.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		merged := patch.Apply(current)
		if err := validateTask(merged.Title, merged.Priority); err != nil {
			return err
		}
		if strings.TrimSpace(merged.Status) == "" {
			return validationError("status must not be empty")
		}

		if err := r.Tasks.Update(ctx, merged); err != nil {
			return err
		}
		task, err = getComposite(ctx, r, id)
		return err
	})
	return task, err
}

// DeleteTask removes the task together with its sub-tasks.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	return s.tx.InTx(ctx, func(r repo.Repos) error {
		if _, err := r.Tasks.GetForUpdate(ctx, id); err != nil {
			return err
		}
		if err := r.SubTasks.DeleteByTaskID(ctx, id); err != nil {
			return err
		}
		return r.Tasks.Delete(ctx, id)
	})
}

func getComposite(ctx context.Context, r repo.Repos, id int64) (model.Task, error) {
	task, err := r.Tasks.Get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	if err := attachSubTasks(ctx, r, &task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func attachSubTasks(ctx context.Context, r repo.Repos, task *model.Task) error {
	subTasks, err := r.SubTasks.ListByTaskID(ctx, task.ID)
	if err != nil {
		return err
	}
	if subTasks == nil {
		subTasks = []model.SubTask{}
	}
	task.SubTasks = subTasks
	return nil
}

func validateTask(title string, priority int) error {
	if strings.TrimSpace(title) == "" {
		return validationError("title is required")
	}
	if priority < 1 {
		return validationError("priority must be a positive integer")
	}
	return nil
}
