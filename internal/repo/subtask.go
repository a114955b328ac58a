package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/BuzzLyutic/taskboard-api/internal/model"
)

const subTaskColumns = `id, title, status, task_id, created_at, updated_at`

type SubTaskRepo struct {
	q Querier
}

func NewSubTaskRepo(q Querier) *SubTaskRepo {
	return &SubTaskRepo{q: q}
}

func (r *SubTaskRepo) ListByTaskID(ctx context.Context, taskID int64) ([]model.SubTask, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+subTaskColumns+`
		FROM sub_tasks
		WHERE task_id = $1
		ORDER BY id ASC
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subTasks := make([]model.SubTask, 0)
	for rows.Next() {
		s, err := scanSubTask(rows)
		if err != nil {
			return nil, err
		}
		subTasks = append(subTasks, s)
	}
	return subTasks, rows.Err()
}

func (r *SubTaskRepo) Get(ctx context.Context, id int64) (model.SubTask, error) {
	return r.get(ctx, `SELECT `+subTaskColumns+` FROM sub_tasks WHERE id = $1`, id)
}

func (r *SubTaskRepo) GetForUpdate(ctx context.Context, id int64) (model.SubTask, error) {
	return r.get(ctx, `SELECT `+subTaskColumns+` FROM sub_tasks WHERE id = $1 FOR UPDATE`, id)
}

func (r *SubTaskRepo) get(ctx context.Context, query string, id int64) (model.SubTask, error) {
	s, err := scanSubTask(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return s, ErrorNotFound
	}
	return s, err
}

// Create inserts a sub-task. A task_id with no parent row comes back as
// ErrorNotFound through the foreign key.
func (r *SubTaskRepo) Create(ctx context.Context, title string, taskID int64) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO sub_tasks (title, status, task_id, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING id
	`, title, model.DefaultStatus, taskID).Scan(&id)
	return id, mapError(err)
}

func (r *SubTaskRepo) Update(ctx context.Context, s model.SubTask) error {
	_, err := r.q.Exec(ctx, `
		UPDATE sub_tasks
		SET title = $2, status = $3, updated_at = GREATEST(now(), created_at)
		WHERE id = $1
	`, s.ID, s.Title, s.Status)
	return mapError(err)
}

func (r *SubTaskRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, "DELETE FROM sub_tasks WHERE id = $1", id)
	return err
}

func (r *SubTaskRepo) DeleteByTaskID(ctx context.Context, taskID int64) error {
	_, err := r.q.Exec(ctx, "DELETE FROM sub_tasks WHERE task_id = $1", taskID)
	return err
}

func scanSubTask(row pgx.Row) (model.SubTask, error) {
	var s model.SubTask
	err := row.Scan(&s.ID, &s.Title, &s.Status, &s.TaskID, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
