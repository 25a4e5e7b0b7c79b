package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/session"
)

// syncBuffer is a bytes.Buffer safe for one writer and one polling reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// waitForOutput polls buf until cond holds or the deadline passes.
func waitForOutput(t *testing.T, buf *syncBuffer, cond func(string) bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond(buf.String()) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for output, got %q", buf.String())
}

func TestRunWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.png")
	writePNG(t, path, 4, 4, redMostly)

	sess, err := session.New(colour.DefaultConfig(), image.NewFileLoader(), hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("session.New() error = %v", err)
	}
	defer sess.Close()

	render := func(p *colour.Palette) (string, error) {
		return formatPalette(p, "", FormatHex, false)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, &out, sess, path, render, hclog.NewNullLogger(), 20*time.Millisecond)
	}()

	// Initial analysis.
	waitForOutput(t, &out, func(s string) bool { return s == "#ff0000\n#0000ff\n" })

	// A rewrite is picked up and printed after the first palette.
	writePNG(t, path, 4, 4, blueMostly)
	waitForOutput(t, &out, func(s string) bool {
		return strings.HasSuffix(s, "#0000ff\n#ff0000\n")
	})

	// Changes to other files in the directory are ignored.
	before := out.String()
	writePNG(t, filepath.Join(dir, "other.png"), 4, 4, redMostly)
	time.Sleep(200 * time.Millisecond)
	if got := out.String(); got != before {
		t.Errorf("unrelated file produced output: %q", strings.TrimPrefix(got, before))
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runWatch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runWatch did not stop after cancel")
	}
}

func TestWatchCommandRejectsNonFiles(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		arg  string
	}{
		{"directory", dir},
		{"url", "https://example.com/a.png"},
		{"missing", filepath.Join(dir, "nope.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, nil, "watch", tt.arg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestWatchCommandInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writePNG(t, path, 2, 2, redMostly)

	_, _, err := runCLI(t, nil, "watch", "--merge-threshold=-1", path)
	if code := ExitCode(err); code != ExitInvalidConfig {
		t.Fatalf("ExitCode() = %d, want %d (err = %v)", code, ExitInvalidConfig, err)
	}
}
