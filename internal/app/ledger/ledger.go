package ledger

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Entry is one accepted transcription. Entries are immutable once
// appended.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
	Provider  string    `json:"provider"`
	Language  string    `json:"language"`
	Source    string    `json:"source"`
}

// NewEntry builds an entry stamped with the current time.
func NewEntry(text, provider, language, source string) Entry {
	return Entry{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Text:      text,
		Provider:  provider,
		Language:  language,
		Source:    source,
	}
}

// Stats summarizes the ledger contents.
type Stats struct {
	Count             int `json:"count"`
	TotalChars        int `json:"total_chars"`
	TotalWords        int `json:"total_words"`
	DistinctProviders int `json:"distinct_providers"`
	DistinctLanguages int `json:"distinct_languages"`
}

// Ledger is the append-only, insertion-ordered record of accepted
// transcriptions for the current run. It is safe for concurrent use:
// multiple in-flight recognition dispatches may append while the UI reads.
type Ledger struct {
	mu      sync.RWMutex
	entries []Entry
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append adds an entry to the end of the ledger.
func (l *Ledger) Append(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

// All returns a copy of the entries in insertion order.
func (l *Ledger) All() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear empties the ledger. Confirmation is the caller's responsibility;
// the ledger itself has no undo.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// Stats computes summary statistics over the current contents.
func (l *Ledger) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := Stats{Count: len(l.entries)}
	for _, e := range l.entries {
		s.TotalChars += len([]rune(e.Text))
		s.TotalWords += len(strings.Fields(e.Text))
	}
	s.DistinctProviders = len(lo.UniqBy(l.entries, func(e Entry) string { return e.Provider }))
	s.DistinctLanguages = len(lo.UniqBy(l.entries, func(e Entry) string { return e.Language }))
	return s
}
