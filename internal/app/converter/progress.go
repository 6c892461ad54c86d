package converter

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ProgressConfig controls whether batch runs render a progress bar.
type ProgressConfig struct {
	Enabled bool
	Writer  io.Writer
}

// progressBar wraps an mpb bar; a disabled bar is a no-op so the batch
// code never branches on the flag.
type progressBar struct {
	bar     *mpb.Bar
	manager *mpb.Progress
	enabled bool
}

func newProgressBar(cfg ProgressConfig, total int, description string) *progressBar {
	if !cfg.Enabled {
		return &progressBar{}
	}

	writer := cfg.Writer
	if writer == nil {
		writer = os.Stderr
	}

	manager := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWaitGroup(&sync.WaitGroup{}),
	)

	bar := manager.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(description+" "),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), " done",
			),
		),
	)

	return &progressBar{bar: bar, manager: manager, enabled: true}
}

func (pb *progressBar) increment(elapsed time.Duration) {
	if pb.enabled {
		pb.bar.EwmaIncrement(elapsed)
	}
}

func (pb *progressBar) wait() {
	if pb.enabled {
		pb.manager.Wait()
	}
}
