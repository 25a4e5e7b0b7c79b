package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/security"
	"github.com/jmylchreest/swatch/internal/session"
)

// DefaultDebounce is how long watch waits after the last change before re-analysing.
const DefaultDebounce = 200 * time.Millisecond

type watchOptions struct {
	*rootOptions

	config   colour.Config
	envErr   error
	format   string
	preview  string
	debounce time.Duration
}

func newWatchCmd(root *rootOptions) *cobra.Command {
	opts := &watchOptions{rootOptions: root}
	opts.config, opts.envErr = configFromEnv(root.getenv)

	cmd := &cobra.Command{
		Use:   "watch <image>",
		Short: "Re-extract the palette every time an image file changes",
		Long: `Watch a local image file and print its palette each time it is written.

The palette is printed once at start-up and again after every change. A
change that fails to decode is logged and the previous palette stays the
last one printed. Stop with Ctrl-C.

Examples:
  # Follow a render output as it is re-exported
  swatch watch render.png

  # Print hex values only
  swatch watch -f hex render.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.envErr != nil {
				return opts.envErr
			}
			if err := opts.config.Validate(); err != nil {
				return err
			}
			if !slices.Contains(ValidFormats(), opts.format) {
				return fmt.Errorf("unsupported format: %s (supported: %s)", opts.format, strings.Join(ValidFormats(), ", "))
			}

			path := args[0]
			if security.IsURL(path) {
				return fmt.Errorf("watch needs a local file, got URL: %s", path)
			}
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to access image file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("path is a directory, not a file: %s", path)
			}
			if err := image.ValidateImagePath(path); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			showPreview, err := previewEnabled(opts.preview, out)
			if err != nil {
				return err
			}

			logger := opts.logger.Named("watch")
			sess, err := session.New(opts.config, image.NewFileLoader(), logger)
			if err != nil {
				return err
			}
			defer sess.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			render := func(p *colour.Palette) (string, error) {
				return formatPalette(p, path, opts.format, showPreview)
			}
			return runWatch(ctx, out, sess, path, render, logger, opts.debounce)
		},
	}

	bindConfigFlags(cmd.Flags(), &opts.config)
	cmd.Flags().StringVarP(&opts.format, "format", "f", FormatText, "output format ("+strings.Join(ValidFormats(), ", ")+")")
	cmd.Flags().StringVar(&opts.preview, "preview", "auto", "show colour swatches (auto, always, never)")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", DefaultDebounce, "wait this long after the last change before re-analysing")

	return cmd
}

// runWatch analyses path once, then again after each write to it, until
// ctx is done. Each new palette is rendered to w once; a rewrite that
// leaves the pixels unchanged prints nothing.
func runWatch(
	ctx context.Context,
	w io.Writer,
	sess *session.Session,
	path string,
	render func(*colour.Palette) (string, error),
	logger hclog.Logger,
	debounce time.Duration,
) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so atomic replace-by-rename is still seen.
	dir, base := filepath.Dir(path), filepath.Base(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	states := sess.Subscribe()
	sess.Submit(ctx, path)
	logger.Info("watching", "path", path)

	var (
		printed     uint64
		lastPalette *colour.Palette
		fire        <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil

		case st, ok := <-states:
			if !ok {
				return nil
			}
			switch st.Status {
			case session.StatusReady:
				if st.RequestID == printed {
					continue
				}
				printed = st.RequestID
				if st.Palette == lastPalette {
					logger.Debug("palette unchanged", "path", path)
					continue
				}
				lastPalette = st.Palette
				text, err := render(st.Palette)
				if err != nil {
					return fmt.Errorf("failed to format output: %w", err)
				}
				if _, err := io.WriteString(w, text); err != nil {
					return err
				}
			case session.StatusFailed:
				logger.Warn("keeping previous palette", "path", path, "kind", st.Err, "error", st.Message)
			}

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base || (!ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create)) {
				continue
			}
			logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			fire = time.After(debounce)

		case <-fire:
			fire = nil
			sess.Submit(ctx, path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
