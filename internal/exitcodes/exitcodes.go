package exitcodes

import (
	"errors"
	"fmt"
)

const (
	Usage        = 1
	LoadFailure  = 2
	RemoteFailed = 2
	Rejected     = 3
	WriteFailure = 3
)

// ExitError carries the process exit code an error should end the run with.
type ExitError struct {
	Code      int
	Err       error
	ShowUsage bool
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func New(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

func Newf(code int, format string, args ...any) *ExitError {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

// Usagef reports a command line misuse; the command usage is printed with it.
func Usagef(format string, args ...any) *ExitError {
	return &ExitError{Code: Usage, Err: fmt.Errorf(format, args...), ShowUsage: true}
}

// Code returns the exit code for err, Usage when it carries none.
func Code(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return Usage
}
