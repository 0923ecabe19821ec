package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("file not found")
	ErrTruncated        = errors.New("file truncated")
	ErrInvalid          = errors.New("invalid contents")
	ErrLevelOutOfRange  = errors.New("level out of range")
	ErrNoLevelLoaded    = errors.New("no level loaded")
	ErrUnknownDirection = errors.New("unknown direction")
)

// LoadError reports a failed level or snapshot load. Err is one of
// ErrNotFound, ErrTruncated, ErrInvalid or an underlying I/O error.
type LoadError struct {
	Op   string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
