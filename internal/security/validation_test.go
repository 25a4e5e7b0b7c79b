package security

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestValidateImageURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{url: "https://example.com/photo.jpg"},
		{url: "http://example.com/photo.jpg"},
		{url: "", wantErr: true},
		{url: "ftp://example.com/photo.jpg", wantErr: true},
		{url: "file:///etc/passwd", wantErr: true},
		{url: "https://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateImageURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImageURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestIsURL(t *testing.T) {
	if !IsURL("https://example.com/a.png") || !IsURL("http://example.com/a.png") {
		t.Error("IsURL() should accept http and https")
	}
	if IsURL("/tmp/a.png") || IsURL("a.png") {
		t.Error("IsURL() should reject file paths")
	}
}

func TestLimitedReader(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 100)

	got, err := io.ReadAll(NewLimitedReader(bytes.NewReader(data), 100))
	if err != nil {
		t.Fatalf("ReadAll() at exact limit error = %v", err)
	}
	if len(got) != 100 {
		t.Errorf("read %d bytes, want 100", len(got))
	}

	_, err = io.ReadAll(NewLimitedReader(bytes.NewReader(data), 99))
	if err == nil || !strings.Contains(err.Error(), "limit exceeded") {
		t.Errorf("ReadAll() over limit error = %v, want limit exceeded", err)
	}
}

// stallReader returns (0, nil) once before handing over to r.
type stallReader struct {
	stalled bool
	r       io.Reader
}

func (s *stallReader) Read(p []byte) (int, error) {
	if !s.stalled {
		s.stalled = true
		return 0, nil
	}
	return s.r.Read(p)
}

func TestLimitedReaderAtLimit(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 10)

	t.Run("empty read is not overflow", func(t *testing.T) {
		lr := NewLimitedReader(bytes.NewReader(data), 10)
		if _, err := io.ReadFull(lr, make([]byte, 10)); err != nil {
			t.Fatalf("ReadFull() error = %v", err)
		}
		lr.R = &stallReader{r: lr.R}

		n, err := lr.Read(make([]byte, 4))
		if n != 0 || err != nil {
			t.Errorf("Read() = %d, %v, want 0, nil", n, err)
		}
		if _, err := lr.Read(make([]byte, 4)); err != io.EOF {
			t.Errorf("Read() error = %v, want io.EOF", err)
		}
	})

	t.Run("underlying error is kept", func(t *testing.T) {
		boom := errors.New("disk on fire")
		r := io.MultiReader(bytes.NewReader(data), iotest.ErrReader(boom))

		_, err := io.ReadAll(NewLimitedReader(r, 10))
		if !errors.Is(err, boom) {
			t.Errorf("ReadAll() error = %v, want %v", err, boom)
		}
	})
}
