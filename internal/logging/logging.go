// Package logging builds the hclog loggers shared by the CLI and session.
package logging

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// Options selects logger verbosity and destination.
type Options struct {
	Verbose bool
	Quiet   bool
	Output  io.Writer
	JSON    bool
}

// New returns the root "swatch" logger. Quiet wins over Verbose.
func New(opts Options) hclog.Logger {
	if opts.Quiet {
		return hclog.New(&hclog.LoggerOptions{
			Name:   "swatch",
			Output: io.Discard,
			Level:  hclog.Off,
		})
	}

	level := hclog.Info
	if opts.Verbose {
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       "swatch",
		Output:     opts.Output,
		Level:      level,
		JSONFormat: opts.JSON,
	})
}
