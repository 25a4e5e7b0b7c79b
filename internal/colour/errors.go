package colour

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks. The typed errors below unwrap to these.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrEmptyImage    = errors.New("empty image")
	ErrDecode        = errors.New("decode failed")
)

// InvalidConfigError reports an out-of-range extraction option.
// It is returned before any pixel is read.
type InvalidConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// EmptyImageError reports an image with no pixels to analyse.
type EmptyImageError struct {
	Width  int
	Height int
}

func (e *EmptyImageError) Error() string {
	return fmt.Sprintf("empty image: %dx%d has no pixels to analyse", e.Width, e.Height)
}

func (e *EmptyImageError) Unwrap() error {
	return ErrEmptyImage
}

// DecodeError wraps a failure from the image decoder. Source names the
// file, URL or stream the bytes came from.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("failed to decode image: %v", e.Err)
	}
	return fmt.Sprintf("failed to decode image %s: %v", e.Source, e.Err)
}

// Unwrap exposes both the sentinel and the underlying decoder error.
func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}
