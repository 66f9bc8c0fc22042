package report

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyFile     = errors.New("empty file")
	ErrParse         = errors.New("parsing error")
	ErrMissingColumn = errors.New("missing column")
)

// LoadError reports an input report that could not be turned into a table.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("impossible to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("error writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
