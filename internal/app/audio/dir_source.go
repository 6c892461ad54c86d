package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// DirSource captures utterances from a spool directory: every new .wav
// file dropped into the directory becomes one capture. It stands in for a
// microphone on systems where capture happens out of process (recording
// tools, scp drops, browser uploads written to disk).
type DirSource struct {
	dir          string
	pollInterval time.Duration

	mu   sync.Mutex
	seen map[string]bool
}

// NewDirSource watches dir for newly created wav files. Files already
// present at construction time are ignored.
func NewDirSource(dir string) (*DirSource, error) {
	s := &DirSource{
		dir:          dir,
		pollInterval: 200 * time.Millisecond,
		seen:         make(map[string]bool),
	}

	existing, err := s.listWavFiles()
	if err != nil {
		return nil, err
	}
	for _, name := range existing {
		s.seen[name] = true
	}
	return s, nil
}

// Capture waits for the next unseen wav file and decodes it. maxDuration
// truncates the decoded buffer so a long recording cannot stall the
// listening loop.
func (s *DirSource) Capture(ctx context.Context, timeout, maxDuration time.Duration) (*Buffer, error) {
	deadline := time.Now().Add(timeout)

	for {
		path, ok, err := s.nextUnseen()
		if err != nil {
			// The directory itself is gone or unreadable; the session
			// must see this as a source failure, not as silence.
			return nil, fmt.Errorf("read spool directory: %w", err)
		}
		if ok {
			buf, err := ReadFile(path)
			if err != nil {
				return nil, err
			}
			return truncate(buf, maxDuration), nil
		}

		if time.Now().After(deadline) {
			return nil, ErrCaptureTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.pollInterval):
		}
	}
}

func (s *DirSource) nextUnseen() (string, bool, error) {
	names, err := s.listWavFiles()
	if err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		if !s.seen[name] {
			s.seen[name] = true
			return filepath.Join(s.dir, name), true, nil
		}
	}
	return "", false, nil
}

func (s *DirSource) listWavFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func truncate(buf *Buffer, maxDuration time.Duration) *Buffer {
	if maxDuration <= 0 || buf.Duration() <= maxDuration {
		return buf
	}
	blockAlign := buf.Channels * (buf.BitDepth / 8)
	maxBytes := int(float64(buf.SampleRate*blockAlign) * maxDuration.Seconds())
	maxBytes -= maxBytes % blockAlign
	if maxBytes < len(buf.PCM) {
		buf.PCM = buf.PCM[:maxBytes]
	}
	return buf
}
