package service

import (
	"errors"
	"fmt"

	"github.com/BuzzLyutic/taskboard-api/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = repo.ErrorNotFound

	// ErrParentNotFound matches ErrNotFound under errors.Is.
	ErrParentNotFound = fmt.Errorf("parent task %w", repo.ErrorNotFound)
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
