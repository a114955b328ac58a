package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/BuzzLyutic/taskboard-api/internal/model"
)

// Querier is the part of pgx shared by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	List(ctx context.Context) ([]model.Task, error)
	Get(ctx context.Context, id int64) (model.Task, error)
	GetForUpdate(ctx context.Context, id int64) (model.Task, error)
	Create(ctx context.Context, title string, description *string, priority int, deadline *time.Time) (int64, error)
	Update(ctx context.Context, t model.Task) error
	Delete(ctx context.Context, id int64) error
}

// SubTaskRepository определяет интерфейс для работы с подзадачами
type SubTaskRepository interface {
	ListByTaskID(ctx context.Context, taskID int64) ([]model.SubTask, error)
	Get(ctx context.Context, id int64) (model.SubTask, error)
	GetForUpdate(ctx context.Context, id int64) (model.SubTask, error)
	Create(ctx context.Context, title string, taskID int64) (int64, error)
	Update(ctx context.Context, s model.SubTask) error
	Delete(ctx context.Context, id int64) error
	DeleteByTaskID(ctx context.Context, taskID int64) error
}

// Repos is a pair of repositories bound to the same connection or transaction.
type Repos struct {
	Tasks    TaskRepository
	SubTasks SubTaskRepository
}

// Transactor runs a unit of work against repositories bound to one transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(Repos) error) error
	ReadTx(ctx context.Context, fn func(Repos) error) error
}
