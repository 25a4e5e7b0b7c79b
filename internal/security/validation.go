// Package security provides input validation for untrusted image sources.
package security

import (
	"fmt"
	"io"
	"net/url"
	"strings"
)

// ValidateImageURL checks that urlStr is an absolute http(s) URL with a host.
func ValidateImageURL(urlStr string) error {
	if urlStr == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("unsupported URL scheme (only http:// and https:// allowed): %s", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	return nil
}

// IsURL reports whether path looks like an http(s) URL rather than a file path.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// Reading past the limit is an error, not EOF.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		// Only data beyond the limit is an overflow. EOF, other errors and
		// empty reads from the underlying reader pass through.
		var probe [1]byte
		n, err := l.R.Read(probe[:])
		if n > 0 {
			return 0, fmt.Errorf("decompression size limit exceeded")
		}
		return 0, err
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
