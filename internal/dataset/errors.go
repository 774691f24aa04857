package dataset

import (
	"errors"
	"fmt"
)

// ErrIOFailure classifies every error caused by reading or writing dataset files.
var ErrIOFailure = errors.New("io failure")

// FileError reports which file an I/O operation failed on. It matches ErrIOFailure
// under errors.Is and unwraps to the underlying cause.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

func (e *FileError) Is(target error) bool { return target == ErrIOFailure }

// ErrMalformed is returned when a table file does not have the expected header or
// a cell cannot be parsed.
var ErrMalformed = errors.New("malformed table")
