// Package app wires the recognition core together behind a single facade
// the CLI and HTTP layers call. The App owns the settings store, the
// provider registry, the shared ledger and at most one live listening
// session.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voicescribe/internal/app/audio"
	"voicescribe/internal/app/converter"
	"voicescribe/internal/app/ledger"
	"voicescribe/internal/app/recognition"
	"voicescribe/internal/app/repository"
	"voicescribe/internal/app/session"
	"voicescribe/internal/app/settings"
)

var (
	// ErrSessionActive is returned when a session is started while one is
	// already listening or paused. Sessions are never queued.
	ErrSessionActive = errors.New("a listening session is already active")

	// ErrNoActiveSession is returned by session commands when no session
	// has been started.
	ErrNoActiveSession = errors.New("no active listening session")

	// ErrConfirmationRequired gates destructive ledger operations.
	ErrConfirmationRequired = errors.New("confirmation required to clear transcripts")
)

// App is the top-level application instance.
type App struct {
	Settings     *settings.Store
	Registry     *recognition.Registry
	Orchestrator *recognition.Orchestrator
	Ledger       *ledger.Ledger
	Archive      repository.TranscriptArchive
	Converter    *converter.Converter
	Logger       *zap.Logger

	mu        sync.Mutex
	current   *session.Session
	currentID string
	stopWG    sync.WaitGroup
}

// NewApp builds an App over its shared components.
func NewApp(
	store *settings.Store,
	registry *recognition.Registry,
	orch *recognition.Orchestrator,
	led *ledger.Ledger,
	archive repository.TranscriptArchive,
	conv *converter.Converter,
	logger *zap.Logger,
) *App {
	return &App{
		Settings:     store,
		Registry:     registry,
		Orchestrator: orch,
		Ledger:       led,
		Archive:      archive,
		Converter:    conv,
		Logger:       logger,
	}
}

// StartListening begins a new session over src. Only one session may be
// active at a time; a second start is rejected, not queued.
func (a *App) StartListening(src audio.Source, cfg session.Config) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current != nil {
		if st := a.current.State(); st == session.StateListening || st == session.StatePaused {
			return "", ErrSessionActive
		}
	}

	s := session.New(src, a.Orchestrator, a.Ledger, a.Logger, cfg)
	if err := s.Start(); err != nil {
		return "", err
	}

	a.current = s
	a.currentID = uuid.New().String()
	a.Logger.Info("listening session started",
		zap.String("session_id", a.currentID),
		zap.String("provider", a.Settings.ActiveProvider()),
		zap.String("language", a.Settings.ActiveLanguage()))
	return a.currentID, nil
}

// PauseListening pauses the active session.
func (a *App) PauseListening() error {
	s, _, err := a.activeSession()
	if err != nil {
		return err
	}
	return s.Pause()
}

// ResumeListening resumes the active session.
func (a *App) ResumeListening() error {
	s, _, err := a.activeSession()
	if err != nil {
		return err
	}
	return s.Resume()
}

// StopListening stops the active session. With archive set, the session's
// portion of the ledger is written to the transcript archive once all
// in-flight recognitions have drained; archiving failures are logged, not
// returned, since the stop itself has already succeeded.
func (a *App) StopListening(archive bool) error {
	s, id, err := a.activeSession()
	if err != nil {
		return err
	}
	if err := s.Stop(); err != nil {
		return err
	}

	a.stopWG.Add(1)
	go func() {
		defer a.stopWG.Done()
		if waitErr := s.Wait(); waitErr != nil {
			a.Logger.Warn("session ended on capture error",
				zap.String("session_id", id), zap.Error(waitErr))
		}
		if archive && a.Archive != nil {
			if err := a.Archive.SaveSession(id, s.Entries()); err != nil {
				a.Logger.Warn("could not archive session",
					zap.String("session_id", id), zap.Error(err))
			}
		}
	}()
	return nil
}

// SessionState reports the current session state; Idle when no session
// has been started.
func (a *App) SessionState() session.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return session.StateIdle
	}
	return a.current.State()
}

// SessionID returns the id of the current session, or empty.
func (a *App) SessionID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentID
}

func (a *App) activeSession() (*session.Session, string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return nil, "", ErrNoActiveSession
	}
	return a.current, a.currentID, nil
}

// RecognizeBuffer runs one recognition attempt without touching the
// ledger. Used by upload-style callers that record outcomes themselves.
func (a *App) RecognizeBuffer(ctx context.Context, buf *audio.Buffer) recognition.Outcome {
	return a.Orchestrator.Recognize(ctx, buf)
}

// ClearTranscripts empties the ledger. The caller must pass confirm=true;
// the confirmation prompt itself lives in the UI.
func (a *App) ClearTranscripts(confirm bool) error {
	if !confirm {
		return ErrConfirmationRequired
	}
	a.Ledger.Clear()
	return nil
}

// SetActiveProvider validates and selects a provider.
func (a *App) SetActiveProvider(id string) error {
	if _, err := a.Registry.Resolve(id); err != nil {
		return err
	}
	a.Settings.SetActiveProvider(id)
	return nil
}

// SetActiveLanguage validates and selects a language.
func (a *App) SetActiveLanguage(code string) error {
	if !recognition.IsSupportedLanguage(code) {
		return fmt.Errorf("unsupported language %q", code)
	}
	a.Settings.SetActiveLanguage(code)
	return nil
}

// Close waits for any in-flight session archiving and releases the
// archive connection.
func (a *App) Close() error {
	a.stopWG.Wait()
	if a.Archive != nil {
		return a.Archive.Close()
	}
	return nil
}
