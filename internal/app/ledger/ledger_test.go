package ledger

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendPreservesOrder(t *testing.T) {
	l := New()
	for i := 0; i < 5; i++ {
		l.Append(NewEntry(fmt.Sprintf("entry %d", i), "google", "en-US", "live"))
	}

	entries := l.All()
	require.Len(t, entries, 5)
	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("entry %d", i), e.Text)
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.Timestamp.IsZero())
	}
}

func TestAllReturnsCopy(t *testing.T) {
	l := New()
	l.Append(NewEntry("original", "google", "en-US", "live"))

	entries := l.All()
	entries[0].Text = "mutated"

	assert.Equal(t, "original", l.All()[0].Text)
}

func TestConcurrentAppends(t *testing.T) {
	const n = 64
	l := New()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Append(NewEntry(fmt.Sprintf("entry %d", i), "google", "en-US", "live"))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, l.Len())

	seen := make(map[string]bool)
	for _, e := range l.All() {
		assert.False(t, seen[e.ID], "duplicate entry id %s", e.ID)
		seen[e.ID] = true
	}
}

func TestClear(t *testing.T) {
	l := New()
	l.Append(NewEntry("entry", "google", "en-US", "live"))
	require.Equal(t, 1, l.Len())

	l.Clear()
	assert.Zero(t, l.Len())
	assert.Empty(t, l.All())
}

func TestStats(t *testing.T) {
	l := New()
	l.Append(NewEntry("hello world", "google", "en-US", "live"))
	l.Append(NewEntry("bonjour", "wit", "fr-FR", "live"))
	l.Append(NewEntry("one two three", "google", "en-US", "file"))

	stats := l.Stats()
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 6, stats.TotalWords)
	assert.Equal(t, len("hello world")+len("bonjour")+len("one two three"), stats.TotalChars)
	assert.Equal(t, 2, stats.DistinctProviders)
	assert.Equal(t, 2, stats.DistinctLanguages)
}

func TestStatsEmpty(t *testing.T) {
	stats := New().Stats()
	assert.Zero(t, stats.Count)
	assert.Zero(t, stats.TotalWords)
	assert.Zero(t, stats.DistinctProviders)
}
