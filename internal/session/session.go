package session

import (
	"context"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/image"
)

// AnalyzeFunc runs the colour pipeline. colour.Analyze is the default.
type AnalyzeFunc func(*colour.Image, colour.Config) (*colour.Palette, error)

// Session runs one analysis at a time from the caller's point of view.
// Submitting a new source cancels the previous load and any result that
// arrives for a superseded request is dropped. An image whose pixels match
// the last one analysed reuses that palette.
type Session struct {
	cfg     colour.Config
	loader  image.Loader
	analyze AnalyzeFunc
	logger  hclog.Logger

	mu     sync.Mutex
	state  State
	nextID uint64
	cancel context.CancelFunc
	subs   []chan State
	closed bool

	// Last analysed image, keyed by pixel fingerprint.
	memoKey     string
	memoPalette *colour.Palette

	wg sync.WaitGroup
}

// Option customises a Session.
type Option func(*Session)

// WithAnalyzeFunc replaces the pipeline, mainly for tests.
func WithAnalyzeFunc(fn AnalyzeFunc) Option {
	return func(s *Session) {
		s.analyze = fn
	}
}

// New creates a Session. cfg is validated up front so every later failure
// is about the image, not the options.
func New(cfg colour.Config, loader image.Loader, logger hclog.Logger, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	s := &Session{
		cfg:     cfg,
		loader:  loader,
		analyze: colour.Analyze,
		logger:  logger.Named("session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a channel that receives every state change. A slow
// reader only ever sees the latest state; intermediate states are dropped.
// The channel is closed by Close.
func (s *Session) Subscribe() <-chan State {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan State, 1)
	if s.closed {
		close(ch)
		return ch
	}
	s.subs = append(s.subs, ch)
	return ch
}

// Submit starts loading and analysing source in the background and
// returns its request id. Any analysis still in flight is superseded.
func (s *Session) Submit(ctx context.Context, source string) uint64 {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.nextID++
	id := s.nextID
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.dispatchLocked(Event{Kind: EventStarted, RequestID: id, Source: source})
	// Registered under the lock so Close cannot start waiting before it.
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Debug("analysis submitted", "request", id, "source", source)

	go func() {
		defer s.wg.Done()
		defer cancel()
		s.run(ctx, id, source)
	}()

	return id
}

// run loads and analyses one source and reports the outcome.
func (s *Session) run(ctx context.Context, id uint64, source string) {
	img, err := s.loader.Load(ctx, source)
	if err == nil {
		// The pipeline cannot be interrupted; a superseded result is
		// simply discarded by the reducer when it arrives.
		err = ctx.Err()
	}
	if err != nil {
		s.finish(Event{Kind: EventFailed, RequestID: id, Err: err})
		return
	}

	key := image.Fingerprint(img)
	if palette := s.recall(key); palette != nil {
		s.logger.Debug("image unchanged, reusing palette", "request", id, "fingerprint", key)
		s.finish(Event{Kind: EventSucceeded, RequestID: id, Palette: palette})
		return
	}

	palette, err := s.analyze(img, s.cfg)
	if err != nil {
		s.finish(Event{Kind: EventFailed, RequestID: id, Err: err})
		return
	}
	s.remember(key, palette)
	s.finish(Event{Kind: EventSucceeded, RequestID: id, Palette: palette})
}

// recall returns the palette of the last analysed image if its fingerprint is key.
func (s *Session) recall(key string) *colour.Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.memoKey != key {
		return nil
	}
	return s.memoPalette
}

func (s *Session) remember(key string, palette *colour.Palette) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memoKey = key
	s.memoPalette = palette
}

func (s *Session) finish(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.RequestID != s.state.RequestID {
		s.logger.Debug("discarding stale result", "request", e.RequestID, "current", s.state.RequestID)
		return
	}

	switch e.Kind {
	case EventSucceeded:
		s.logger.Debug("analysis complete", "request", e.RequestID, "colours", e.Palette.Len())
	case EventFailed:
		s.logger.Warn("analysis failed", "request", e.RequestID, "kind", Classify(e.Err), "error", e.Err)
	}
	s.dispatchLocked(e)
}

// Reset returns the session to idle and cancels any in-flight analysis.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.dispatchLocked(Event{Kind: EventReset})
}

// Wait blocks until every submitted analysis has finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels in-flight work, waits for it, and closes subscriber channels.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}

// dispatchLocked applies e and publishes the new state. Caller holds s.mu.
func (s *Session) dispatchLocked(e Event) {
	next := Reduce(s.state, e)
	if next == s.state {
		return
	}
	s.state = next
	for _, ch := range s.subs {
		select {
		case ch <- next:
		default:
			// Replace the unread state with the newer one.
			select {
			case <-ch:
			default:
			}
			ch <- next
		}
	}
}
