package repository

import (
	"time"

	"voicescribe/internal/app/ledger"
)

// SessionSummary describes one archived listening session.
type SessionSummary struct {
	SessionID  string    `json:"session_id"`
	ArchivedAt time.Time `json:"archived_at"`
	Entries    int       `json:"entries"`
}

// TranscriptArchive persists finished sessions' ledgers. Archiving is
// explicitly opt-in; nothing in the core writes here on its own.
type TranscriptArchive interface {
	SaveSession(sessionID string, entries []ledger.Entry) error
	GetSession(sessionID string) ([]ledger.Entry, error)
	RecentSessions(limit int) ([]SessionSummary, error)
	Close() error
}
