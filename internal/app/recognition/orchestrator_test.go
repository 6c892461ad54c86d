package recognition

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voicescribe/internal/app/audio"
	"voicescribe/internal/app/settings"
)

// fakeProvider records its invocations so tests can assert whether the
// orchestrator actually reached the backend.
type fakeProvider struct {
	info       ProviderInfo
	text       string
	err        error
	calls      int
	language   string
	credential string
}

func (p *fakeProvider) Recognize(ctx context.Context, buf *audio.Buffer, language, credential string) (string, error) {
	p.calls++
	p.language = language
	p.credential = credential
	return p.text, p.err
}

func (p *fakeProvider) Info() ProviderInfo {
	return p.info
}

func newTestOrchestrator(t *testing.T, p *fakeProvider) (*Orchestrator, *settings.Store) {
	t.Helper()

	registry := &Registry{
		providers: map[string]Provider{p.info.ID: p},
		order:     []string{p.info.ID},
	}
	store := settings.Load(filepath.Join(t.TempDir(), "config.json"), zap.NewNop())
	store.SetActiveProvider(p.info.ID)

	return NewOrchestrator(registry, store, zap.NewNop()), store
}

func testBuffer() *audio.Buffer {
	return &audio.Buffer{PCM: make([]byte, 3200), SampleRate: 16000, Channels: 1, BitDepth: 16}
}

func TestRecognizeText(t *testing.T) {
	p := &fakeProvider{
		info: ProviderInfo{ID: "fake", DisplayName: "Fake", RequiresCredential: true},
		text: "hello world",
	}
	orch, store := newTestOrchestrator(t, p)
	store.SetCredential("fake", "secret")
	store.SetActiveLanguage("fr-FR")

	out := orch.Recognize(context.Background(), testBuffer())

	assert.Equal(t, OutcomeText, out.Kind)
	assert.Equal(t, "hello world", out.Text)
	assert.Equal(t, "fake", out.Provider)
	assert.Equal(t, "fr-FR", out.Language)
	assert.Equal(t, "fr-FR", p.language)
	assert.Equal(t, "secret", p.credential)
}

func TestRecognizeMissingCredentialSkipsProvider(t *testing.T) {
	p := &fakeProvider{
		info: ProviderInfo{ID: "fake", DisplayName: "Fake", RequiresCredential: true},
		text: "should never be returned",
	}
	orch, _ := newTestOrchestrator(t, p)

	out := orch.Recognize(context.Background(), testBuffer())

	require.Equal(t, OutcomeFailure, out.Kind)
	assert.Equal(t, FailureMissingCredential, out.Failure)
	assert.Zero(t, p.calls, "provider must not be invoked without a credential")
}

func TestRecognizeCredentialOptional(t *testing.T) {
	p := &fakeProvider{
		info: ProviderInfo{ID: "fake", DisplayName: "Fake", RequiresCredential: false},
		text: "free tier",
	}
	orch, _ := newTestOrchestrator(t, p)

	out := orch.Recognize(context.Background(), testBuffer())

	assert.Equal(t, OutcomeText, out.Kind)
	assert.Equal(t, 1, p.calls)
	assert.Empty(t, p.credential)
}

func TestRecognizeNoSpeech(t *testing.T) {
	testCases := []struct {
		name string
		text string
		err  error
	}{
		{name: "sentinel error", err: ErrNoSpeech},
		{name: "wrapped sentinel", err: fmt.Errorf("backend: %w", ErrNoSpeech)},
		{name: "empty text", text: ""},
		{name: "whitespace only", text: "   \n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := &fakeProvider{
				info: ProviderInfo{ID: "fake", DisplayName: "Fake"},
				text: tc.text,
				err:  tc.err,
			}
			orch, _ := newTestOrchestrator(t, p)

			out := orch.Recognize(context.Background(), testBuffer())
			assert.Equal(t, OutcomeNoSpeech, out.Kind)
			assert.Empty(t, out.Text)
		})
	}
}

func TestRecognizeClassifiesFailures(t *testing.T) {
	p := &fakeProvider{
		info: ProviderInfo{ID: "fake", DisplayName: "Fake"},
		err:  errors.New("fake quota exceeded (status 429)"),
	}
	orch, _ := newTestOrchestrator(t, p)

	out := orch.Recognize(context.Background(), testBuffer())

	require.Equal(t, OutcomeFailure, out.Kind)
	assert.Equal(t, FailureRateLimited, out.Failure)
	assert.Contains(t, out.Detail, "quota")
}

func TestRecognizeUnknownActiveProvider(t *testing.T) {
	p := &fakeProvider{info: ProviderInfo{ID: "fake", DisplayName: "Fake"}}
	orch, store := newTestOrchestrator(t, p)
	store.SetActiveProvider("vanished")

	out := orch.Recognize(context.Background(), testBuffer())

	require.Equal(t, OutcomeFailure, out.Kind)
	assert.Equal(t, FailureUnknown, out.Failure)
	assert.Zero(t, p.calls)
}
