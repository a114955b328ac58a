package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/BuzzLyutic/taskboard-api/internal/model"
)

const maxBodyBytes = 1 << 20

var (
	errEmptyBody    = errors.New("Request body cannot be empty")
	errMissingTitle = errors.New("Missing title in request body")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type createTaskRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Priority    *int    `json:"priority" validate:"omitempty,gte=1"`
	Deadline    *string `json:"deadline"`
}

type createSubTaskRequest struct {
	Title string `json:"title" validate:"required"`
}

// deadlineLayouts are tried in order; zone-less layouts are read as UTC.
var deadlineLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid deadline %q: use RFC 3339 or YYYY-MM-DD", s)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", strings.ReplaceAll(name, "ID", " id"))
	}
	return id, nil
}

// decodeBody decodes a JSON body into dst. An absent body or a bare null is errEmptyBody.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("invalid json: %v", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return errEmptyBody
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid json: %v", err)
	}
	return nil
}

func (req createTaskRequest) toNewTask() (model.NewTask, error) {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs[0].Field() == "Title" {
			return model.NewTask{}, errMissingTitle
		}
		return model.NewTask{}, errors.New("priority must be a positive integer")
	}

	in := model.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	}
	if req.Deadline != nil {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			return model.NewTask{}, err
		}
		in.Deadline = &deadline
	}
	return in, nil
}

// taskPatchFromJSON builds a patch from the keys present in raw. Unknown keys
// are ignored. description and deadline accept null to clear the value; the
// other fields reject it.
func taskPatchFromJSON(raw map[string]json.RawMessage) (model.TaskPatch, error) {
	var patch model.TaskPatch

	if v, ok := raw["title"]; ok {
		var title string
		if err := decodeNonNull(v, &title); err != nil {
			return patch, fmt.Errorf("title: %w", err)
		}
		patch.Title = &title
	}
	if v, ok := raw["description"]; ok {
		patch.DescriptionSet = true
		if !isJSONNull(v) {
			var desc string
			if err := json.Unmarshal(v, &desc); err != nil {
				return patch, fmt.Errorf("description: %w", err)
			}
			patch.Description = &desc
		}
	}
	if v, ok := raw["priority"]; ok {
		var priority int
		if err := decodeNonNull(v, &priority); err != nil {
			return patch, fmt.Errorf("priority: %w", err)
		}
		patch.Priority = &priority
	}
	if v, ok := raw["status"]; ok {
		var status string
		if err := decodeNonNull(v, &status); err != nil {
			return patch, fmt.Errorf("status: %w", err)
		}
		patch.Status = &status
	}
	if v, ok := raw["deadline"]; ok {
		patch.DeadlineSet = true
		if !isJSONNull(v) {
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return patch, fmt.Errorf("deadline: %w", err)
			}
			deadline, err := parseDeadline(s)
			if err != nil {
				return patch, err
			}
			patch.Deadline = &deadline
		}
	}
	return patch, nil
}

func subTaskPatchFromJSON(raw map[string]json.RawMessage) (model.SubTaskPatch, error) {
	var patch model.SubTaskPatch

	if v, ok := raw["title"]; ok {
		var title string
		if err := decodeNonNull(v, &title); err != nil {
			return patch, fmt.Errorf("title: %w", err)
		}
		patch.Title = &title
	}
	if v, ok := raw["status"]; ok {
		var status string
		if err := decodeNonNull(v, &status); err != nil {
			return patch, fmt.Errorf("status: %w", err)
		}
		patch.Status = &status
	}
	return patch, nil
}

var errNull = errors.New("must not be null")

func decodeNonNull(v json.RawMessage, dst any) error {
	if isJSONNull(v) {
		return errNull
	}
	return json.Unmarshal(v, dst)
}

func isJSONNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
