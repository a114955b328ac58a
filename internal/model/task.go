package model

import "time"

const (
	DefaultPriority = 3 // "Low"
	DefaultStatus   = "pending"
)

type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    int        `json:"priority"`
	Status      string     `json:"status"`
	Deadline    *time.Time `json:"deadline"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	SubTasks    []SubTask  `json:"sub_tasks"`
}

type SubTask struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	TaskID    int64     `json:"task_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTask is the input of a task creation. A nil Priority means DefaultPriority.
type NewTask struct {
	Title       string
	Description *string
	Priority    *int
	Deadline    *time.Time
}

// TaskPatch is a partial update. Nil pointers keep the stored value; the
// nullable columns carry a Set flag so an explicit null clears them.
type TaskPatch struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Priority       *int
	Status         *string
	Deadline       *time.Time
	DeadlineSet    bool
}

// Empty reports whether the patch carries no field at all.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && !p.DescriptionSet && p.Priority == nil &&
		p.Status == nil && !p.DeadlineSet
}

// Apply merges the present fields of p into t.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.DescriptionSet {
		t.Description = p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DeadlineSet {
		t.Deadline = p.Deadline
	}
	return t
}

type SubTaskPatch struct {
	Title  *string
	Status *string
}

func (p SubTaskPatch) Empty() bool {
	return p.Title == nil && p.Status == nil
}

func (p SubTaskPatch) Apply(s SubTask) SubTask {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	return s
}
