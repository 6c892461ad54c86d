package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"voicescribe/internal/app/ledger"
	"voicescribe/internal/app/repository"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcripts (
	id          TEXT PRIMARY KEY,
	session_id  TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL,
	archived_at TIMESTAMP NOT NULL,
	text        TEXT NOT NULL,
	provider    TEXT NOT NULL,
	language    TEXT NOT NULL,
	source      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcripts_session ON transcripts(session_id);
`

// Archive is a sqlite-backed TranscriptArchive.
type Archive struct {
	db *sql.DB
}

var _ repository.TranscriptArchive = (*Archive)(nil)

// Open opens (creating if needed) the archive database at dbFilePath.
func Open(dbFilePath string) (*Archive, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("open archive database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// NewWithDB wraps an existing connection; the schema must already exist.
// Used by tests.
func NewWithDB(db *sql.DB) *Archive {
	return &Archive{db: db}
}

func (a *Archive) Close() error {
	return a.db.Close()
}

// SaveSession writes all entries of a session in one transaction.
func (a *Archive) SaveSession(sessionID string, entries []ledger.Entry) error {
	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("begin archive transaction: %w", err)
	}

	now := time.Now()
	const insertSQL = `INSERT INTO transcripts
		(id, session_id, created_at, archived_at, text, provider, language, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, e := range entries {
		if _, err := tx.Exec(insertSQL,
			e.ID, sessionID, e.Timestamp, now, e.Text, e.Provider, e.Language, e.Source); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert transcript %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

// GetSession returns the archived entries of one session in capture order.
func (a *Archive) GetSession(sessionID string) ([]ledger.Entry, error) {
	const query = `SELECT id, created_at, text, provider, language, source
		FROM transcripts WHERE session_id = ? ORDER BY created_at`
	rows, err := a.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query session %s: %w", sessionID, err)
	}
	defer rows.Close()

	entries := make([]ledger.Entry, 0)
	for rows.Next() {
		var e ledger.Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Text, &e.Provider, &e.Language, &e.Source); err != nil {
			return nil, fmt.Errorf("scan transcript row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecentSessions lists the most recently archived sessions.
func (a *Archive) RecentSessions(limit int) ([]repository.SessionSummary, error) {
	const query = `SELECT session_id, MAX(archived_at), COUNT(*)
		FROM transcripts GROUP BY session_id
		ORDER BY MAX(archived_at) DESC LIMIT ?`
	rows, err := a.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]repository.SessionSummary, 0)
	for rows.Next() {
		var s repository.SessionSummary
		if err := rows.Scan(&s.SessionID, &s.ArchivedAt, &s.Entries); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
