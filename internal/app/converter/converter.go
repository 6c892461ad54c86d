// Package converter runs batch transcription over wav files on disk,
// feeding each file through the recognition orchestrator and recording
// successes in the shared ledger.
package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"voicescribe/internal/app/audio"
	"voicescribe/internal/app/ledger"
	"voicescribe/internal/app/recognition"
	"voicescribe/internal/app/session"
)

// Result describes the outcome of one file in a batch.
type Result struct {
	Path    string
	Outcome recognition.Outcome
	Err     error
}

// Converter transcribes files and directories outside a live session.
type Converter struct {
	rec    session.Recognizer
	ledger *ledger.Ledger
	logger *zap.Logger
}

// New creates a converter sharing the given ledger.
func New(rec session.Recognizer, led *ledger.Ledger, logger *zap.Logger) *Converter {
	return &Converter{rec: rec, ledger: led, logger: logger}
}

// ConvertFile transcribes a single wav file. A Text outcome is appended
// to the ledger with source "file".
func (c *Converter) ConvertFile(ctx context.Context, path string) (recognition.Outcome, error) {
	buf, err := audio.ReadFile(path)
	if err != nil {
		return recognition.Outcome{}, err
	}

	out := c.rec.Recognize(ctx, buf)
	if out.Kind == recognition.OutcomeText {
		c.ledger.Append(ledger.NewEntry(out.Text, out.Provider, out.Language, "file"))
	}
	return out, nil
}

// ConvertDir transcribes every wav file in dir, in name order. Failures
// are collected per file; the batch keeps going.
func (c *Converter) ConvertDir(ctx context.Context, dir string, progress ProgressConfig) ([]Result, error) {
	paths, err := listWavFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no wav files found in %s", dir)
	}

	bar := newProgressBar(progress, len(paths), "transcribing")
	results := make([]Result, 0, len(paths))

	for _, path := range paths {
		start := time.Now()
		out, err := c.ConvertFile(ctx, path)
		if err != nil {
			c.logger.Warn("skipping file", zap.String("path", path), zap.Error(err))
		}
		results = append(results, Result{Path: path, Outcome: out, Err: err})
		bar.increment(time.Since(start))

		select {
		case <-ctx.Done():
			bar.wait()
			return results, ctx.Err()
		default:
		}
	}

	bar.wait()
	return results, nil
}

func listWavFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
