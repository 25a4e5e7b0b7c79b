// Package session holds host-side application state for palette analysis:
// an explicit state value, a pure reducer over analysis events, and a
// Session that runs analyses in the background with last-call-wins
// semantics. The colour pipeline itself knows nothing about this package.
package session

import (
	"context"
	"errors"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Status is the phase of the current analysis.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrorKind classifies a failed analysis for presentation.
type ErrorKind string

const (
	ErrorNone          ErrorKind = ""
	ErrorInvalidConfig ErrorKind = "invalid_config"
	ErrorEmptyImage    ErrorKind = "empty_image"
	ErrorDecode        ErrorKind = "decode"
	ErrorCancelled     ErrorKind = "cancelled"
	ErrorOther         ErrorKind = "other"
)

// Classify maps an error from loading or analysis onto an ErrorKind.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorNone
	case errors.Is(err, colour.ErrInvalidConfig):
		return ErrorInvalidConfig
	case errors.Is(err, colour.ErrEmptyImage):
		return ErrorEmptyImage
	case errors.Is(err, colour.ErrDecode):
		return ErrorDecode
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorCancelled
	default:
		return ErrorOther
	}
}

// State is the application state a renderer subscribes to.
//
// Palette is the most recent successful result. It survives Loading and
// Failed so a renderer can keep showing it while retrying.
type State struct {
	Status    Status
	RequestID uint64
	Source    string
	Palette   *colour.Palette
	Err       ErrorKind
	Message   string
}

// EventKind identifies an analysis lifecycle event.
type EventKind int

const (
	EventStarted EventKind = iota
	EventSucceeded
	EventFailed
	EventReset
)

// Event is an input to Reduce.
type Event struct {
	Kind      EventKind
	RequestID uint64
	Source    string
	Palette   *colour.Palette
	Err       error
}

// Reduce returns the state that follows s after e. It never mutates s.
//
// Request ids only move forward: a Started event for an older request
// and any result for a request other than the current one are ignored,
// which gives last-call-wins behaviour when results arrive out of order.
func Reduce(s State, e Event) State {
	switch e.Kind {
	case EventStarted:
		if e.RequestID <= s.RequestID {
			return s
		}
		return State{
			Status:    StatusLoading,
			RequestID: e.RequestID,
			Source:    e.Source,
			Palette:   s.Palette,
		}

	case EventSucceeded:
		if e.RequestID != s.RequestID || s.Status != StatusLoading {
			return s
		}
		return State{
			Status:    StatusReady,
			RequestID: s.RequestID,
			Source:    s.Source,
			Palette:   e.Palette,
		}

	case EventFailed:
		if e.RequestID != s.RequestID || s.Status != StatusLoading {
			return s
		}
		msg := ""
		if e.Err != nil {
			msg = e.Err.Error()
		}
		return State{
			Status:    StatusFailed,
			RequestID: s.RequestID,
			Source:    s.Source,
			Palette:   s.Palette,
			Err:       Classify(e.Err),
			Message:   msg,
		}

	case EventReset:
		return State{RequestID: s.RequestID}
	}

	return s
}
