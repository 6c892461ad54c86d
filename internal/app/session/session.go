package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"voicescribe/internal/app/audio"
	"voicescribe/internal/app/ledger"
	"voicescribe/internal/app/recognition"
)

// State is the lifecycle state of a listening session.
type State int

const (
	StateIdle State = iota
	StateListening
	StatePaused
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// InvalidTransitionError reports a session command issued from a state
// that does not permit it. Commands are rejected, never silently ignored,
// so UIs can keep their controls in sync.
type InvalidTransitionError struct {
	Command string
	From    State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s from %s state", e.Command, e.From)
}

// Recognizer is the slice of the orchestrator the session needs.
type Recognizer interface {
	Recognize(ctx context.Context, buf *audio.Buffer) recognition.Outcome
}

// Config tunes the listening loop.
type Config struct {
	// PollInterval bounds how long pause/resume/stop can go unobserved.
	PollInterval time.Duration
	// CaptureTimeout bounds each wait for an audio segment so the loop
	// stays responsive when nobody is speaking.
	CaptureTimeout time.Duration
	// MaxUtterance truncates a single captured segment.
	MaxUtterance time.Duration
	// MaxInflight caps concurrently dispatched recognition calls.
	MaxInflight int
	// SourceTag is recorded on every entry this session appends.
	SourceTag string
	// OnTranscript, when set, is called after each successful append.
	OnTranscript func(ledger.Entry)
}

func (c *Config) applyDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = 100 * time.Millisecond
	}
	if c.CaptureTimeout <= 0 {
		c.CaptureTimeout = time.Second
	}
	if c.MaxUtterance <= 0 {
		c.MaxUtterance = 5 * time.Second
	}
	if c.MaxInflight <= 0 {
		c.MaxInflight = 4
	}
	if c.SourceTag == "" {
		c.SourceTag = "live"
	}
}

// Session runs one continuous listen/transcribe cycle against a shared
// ledger. It is single-use: once stopped it cannot be restarted.
//
// The background loop captures bounded audio segments and dispatches each
// one to the recognizer on its own goroutine, so a slow provider call does
// not block the next capture. Appends therefore happen in completion
// order, which may differ from spoken order.
type Session struct {
	src    audio.Source
	rec    Recognizer
	ledger *ledger.Ledger
	logger *zap.Logger
	cfg    Config

	mu    sync.Mutex
	state State

	inflight chan struct{}
	loopDone chan struct{}
	dispatch sync.WaitGroup

	// entries are the appends this session made to the shared ledger,
	// collected so callers can archive exactly this session's output.
	entriesMu sync.Mutex
	entries   []ledger.Entry

	// LastErr holds the capture-source error that forced the session to
	// stop, if any. Read it after Wait returns.
	errMu   sync.Mutex
	lastErr error
}

// New creates an idle session sharing the given ledger.
func New(src audio.Source, rec Recognizer, led *ledger.Ledger, logger *zap.Logger, cfg Config) *Session {
	cfg.applyDefaults()
	return &Session{
		src:      src,
		rec:      rec,
		ledger:   led,
		logger:   logger,
		cfg:      cfg,
		state:    StateIdle,
		inflight: make(chan struct{}, cfg.MaxInflight),
		loopDone: make(chan struct{}),
	}
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start moves Idle -> Listening and launches the background loop.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return &InvalidTransitionError{Command: "start", From: s.state}
	}
	s.state = StateListening
	go s.loop()
	return nil
}

// Pause moves Listening -> Paused.
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateListening {
		return &InvalidTransitionError{Command: "pause", From: s.state}
	}
	s.state = StatePaused
	return nil
}

// Resume moves Paused -> Listening.
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePaused {
		return &InvalidTransitionError{Command: "resume", From: s.state}
	}
	s.state = StateListening
	return nil
}

// Stop moves Listening or Paused -> Stopped. The signal is cooperative:
// the loop exits after its current iteration and in-flight recognition
// calls run to completion.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateListening && s.state != StatePaused {
		return &InvalidTransitionError{Command: "stop", From: s.state}
	}
	s.state = StateStopped
	return nil
}

// Entries returns the ledger entries this session appended, in
// completion order. The set is complete once Wait has returned.
func (s *Session) Entries() []ledger.Entry {
	s.entriesMu.Lock()
	defer s.entriesMu.Unlock()
	out := make([]ledger.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Wait blocks until the background loop has exited and every dispatched
// recognition has completed. It returns the capture-source error that
// terminated the session early, or nil after a clean stop.
func (s *Session) Wait() error {
	<-s.loopDone
	s.dispatch.Wait()

	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.lastErr
}

func (s *Session) loop() {
	defer close(s.loopDone)

	for {
		switch s.State() {
		case StateStopped:
			return

		case StatePaused:
			time.Sleep(s.cfg.PollInterval)

		case StateListening:
			buf, err := s.src.Capture(context.Background(), s.cfg.CaptureTimeout, s.cfg.MaxUtterance)
			if err != nil {
				if errors.Is(err, audio.ErrCaptureTimeout) {
					continue // silence is normal, just re-check state
				}
				s.fail(err)
				return
			}
			if buf.Empty() {
				continue
			}
			s.dispatchRecognition(buf)

		default:
			return
		}
	}
}

// dispatchRecognition hands one captured segment to the recognizer on a
// fresh goroutine, bounded by the in-flight semaphore.
func (s *Session) dispatchRecognition(buf *audio.Buffer) {
	s.inflight <- struct{}{}
	s.dispatch.Add(1)

	go func() {
		defer func() {
			<-s.inflight
			s.dispatch.Done()
		}()

		out := s.rec.Recognize(context.Background(), buf)
		if out.Kind != recognition.OutcomeText {
			return
		}
		if s.State() == StateStopped {
			// Late completion after stop; the caller already considers
			// the session over, so the result is dropped.
			return
		}

		e := ledger.NewEntry(out.Text, out.Provider, out.Language, s.cfg.SourceTag)
		s.ledger.Append(e)

		s.entriesMu.Lock()
		s.entries = append(s.entries, e)
		s.entriesMu.Unlock()

		if s.cfg.OnTranscript != nil {
			s.cfg.OnTranscript(e)
		}
	}()
}

func (s *Session) fail(err error) {
	s.logger.Error("audio source failed, stopping session", zap.Error(err))

	s.errMu.Lock()
	s.lastErr = err
	s.errMu.Unlock()

	s.mu.Lock()
	s.state = StateStopped
	s.mu.Unlock()
}
