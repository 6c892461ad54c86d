package wit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicescribe/internal/app/audio"
	"voicescribe/internal/app/recognition"
)

func testBuffer() *audio.Buffer {
	return &audio.Buffer{PCM: make([]byte, 3200), SampleRate: 16000, Channels: 1, BitDepth: 16}
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) recognition.Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := newProvider(map[string]interface{}{"endpoint": server.URL})
	require.NoError(t, err)
	return p
}

func TestRecognizeKeepsFinalText(t *testing.T) {
	var gotAuth, gotContentType string
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")

		// Wit streams partial hypotheses as separate JSON objects; the
		// last non-empty text is the final transcription.
		w.Write([]byte(`{"text":"turn"}
{"text":"turn on"}
{"text":"turn on the lights","is_final":true}`))
	})

	text, err := p.Recognize(context.Background(), testBuffer(), "en-US", "wit-token")
	require.NoError(t, err)
	assert.Equal(t, "turn on the lights", text)
	assert.Equal(t, "Bearer wit-token", gotAuth)
	assert.Equal(t, "audio/wav", gotContentType)
}

func TestRecognizeNoSpeech(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":""}`))
	})

	_, err := p.Recognize(context.Background(), testBuffer(), "en-US", "wit-token")
	assert.ErrorIs(t, err, recognition.ErrNoSpeech)
}

func TestRecognizeRejectedToken(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad token"}`))
	})

	_, err := p.Recognize(context.Background(), testBuffer(), "en-US", "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected the API key")
}

func TestRecognizeMalformedResponse(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": not json`))
	})

	_, err := p.Recognize(context.Background(), testBuffer(), "en-US", "wit-token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed response")
}

func TestInfo(t *testing.T) {
	p, err := newProvider(nil)
	require.NoError(t, err)

	info := p.Info()
	assert.Equal(t, "wit", info.ID)
	assert.True(t, info.RequiresCredential)
}
