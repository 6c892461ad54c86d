package recognition

import (
	"context"
	"errors"

	"voicescribe/internal/app/audio"
)

// ErrNoSpeech is returned by providers when the audio contained no
// intelligible speech. The orchestrator maps it to a NoSpeechDetected
// outcome; it is an expected condition during silence or noise, not a
// failure.
var ErrNoSpeech = errors.New("no speech detected")

// Provider is a single speech-recognition backend. Implementations wrap
// the vendor API and are responsible for translating vendor-specific
// failures into errors whose text carries the shared keyword hints
// ("quota", "network", "key") so the orchestrator can classify them.
type Provider interface {
	// Recognize transcribes one utterance. credential is empty for
	// providers whose Info().RequiresCredential is false.
	Recognize(ctx context.Context, buf *audio.Buffer, language, credential string) (string, error)

	// Info returns the provider's catalog entry.
	Info() ProviderInfo
}

// ProviderInfo describes a catalog entry.
type ProviderInfo struct {
	ID                 string `json:"id"`
	DisplayName        string `json:"display_name"`
	RequiresCredential bool   `json:"requires_credential"`
}
