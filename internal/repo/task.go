package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/BuzzLyutic/taskboard-api/internal/model"
)

var ErrorNotFound = errors.New("not found")

const taskColumns = `id, title, description, priority, status, deadline, created_at, updated_at`

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	q Querier
}

func NewTaskRepo(q Querier) *TaskRepo { // Конструктор
	return &TaskRepo{
		q: q,
	}
}

// List returns every task, most urgent first. Tasks without a deadline sort
// after dated ones of the same priority.
func (r *TaskRepo) List(ctx context.Context) ([]model.Task, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		ORDER BY priority ASC, deadline ASC NULLS LAST, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	return r.get(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (r *TaskRepo) GetForUpdate(ctx context.Context, id int64) (model.Task, error) {
	return r.get(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 FOR UPDATE`, id)
}

func (r *TaskRepo) get(ctx context.Context, query string, id int64) (model.Task, error) {
	t, err := scanTask(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *TaskRepo) Create(ctx context.Context, title string, description *string, priority int, deadline *time.Time) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO tasks (title, description, priority, status, deadline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING id
	`, title, description, priority, model.DefaultStatus, deadline).Scan(&id)
	return id, mapError(err)
}

// Update overwrites the mutable columns. A missing id affects no row and is
// not reported; callers check existence first.
func (r *TaskRepo) Update(ctx context.Context, t model.Task) error {
	_, err := r.q.Exec(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, priority = $4, status = $5, deadline = $6,
		    updated_at = GREATEST(now(), created_at)
		WHERE id = $1
	`, t.ID, t.Title, t.Description, t.Priority, t.Status, t.Deadline)
	return mapError(err)
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	return err
}

func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status, &t.Deadline, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23503" { // foreign_key_violation
			return ErrorNotFound
		}
	}
	return err
}
