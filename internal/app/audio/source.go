package audio

import (
	"context"
	"errors"
	"time"
)

// ErrCaptureTimeout is returned when no audio segment became available
// within the caller's timeout. The listening loop treats it as a normal
// condition, not a failure.
var ErrCaptureTimeout = errors.New("audio capture timed out")

// Source supplies decoded audio segments to the listening loop. The loop
// does not own the source; it borrows it for the duration of each capture.
type Source interface {
	// Capture blocks until the next segment is available, up to timeout.
	// maxDuration bounds the length of the returned segment; sources may
	// return shorter segments. Returns ErrCaptureTimeout when nothing
	// arrived in time.
	Capture(ctx context.Context, timeout, maxDuration time.Duration) (*Buffer, error)
}
