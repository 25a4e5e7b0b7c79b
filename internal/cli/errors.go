package cli

import (
	"errors"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Process exit codes.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitInvalidConfig = 2
	ExitDecode        = 3
	ExitEmptyImage    = 4
)

// ExitCode maps an error returned by a command onto a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, colour.ErrInvalidConfig):
		return ExitInvalidConfig
	case errors.Is(err, colour.ErrDecode):
		return ExitDecode
	case errors.Is(err, colour.ErrEmptyImage):
		return ExitEmptyImage
	default:
		return ExitFailure
	}
}
