package azure

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

func TestRecognize(t *testing.T) {
	var gotKey, gotLang string
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		gotLang = r.URL.Query().Get("language")
		w.Write([]byte(`{"RecognitionStatus":"Success","DisplayText":"guten tag"}`))
	})

	text, err := p.Recognize(context.Background(), testBuffer(), "de-DE", "azure-key")
	require.NoError(t, err)
	assert.Equal(t, "guten tag", text)
	assert.Equal(t, "azure-key", gotKey)
	assert.Equal(t, "de-DE", gotLang)
}

func TestRecognizeNoMatch(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "no match", body: `{"RecognitionStatus":"NoMatch"}`},
		{name: "initial silence", body: `{"RecognitionStatus":"InitialSilenceTimeout"}`},
		{name: "success without text", body: `{"RecognitionStatus":"Success","DisplayText":""}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			})

			_, err := p.Recognize(context.Background(), testBuffer(), "en-US", "azure-key")
			assert.ErrorIs(t, err, recognition.ErrNoSpeech)
		})
	}
}

func TestRecognizeRejectedKey(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := p.Recognize(context.Background(), testBuffer(), "en-US", "bad-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected the API key")
}

func TestRegionBuildsEndpoint(t *testing.T) {
	p, err := newProvider(map[string]interface{}{"region": "westeurope"})
	require.NoError(t, err)

	assert.Contains(t, p.(*provider).endpoint, "westeurope.stt.speech.microsoft.com")
}

func TestInfo(t *testing.T) {
	p, err := newProvider(nil)
	require.NoError(t, err)

	info := p.Info()
	assert.Equal(t, "azure", info.ID)
	assert.True(t, info.RequiresCredential)
}
