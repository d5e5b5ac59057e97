package transfer

import "errors"

var (
	// ErrTaskNotFound is returned for ids the service does not know.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskNotActive is returned when stopping a finished task.
	ErrTaskNotActive = errors.New("task is not active")

	// ErrDuplicateSource is returned when an unfinished task already reads
	// the same source.
	ErrDuplicateSource = errors.New("task already exists for source")

	// ErrEmptySource is returned by AddTask for blank input.
	ErrEmptySource = errors.New("source is empty")
)
