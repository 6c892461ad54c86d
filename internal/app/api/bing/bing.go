// Package bing implements the legacy Bing Voice Recognition backend. The
// service shares its wire format with Azure Speech but lives on the old
// speech.platform.bing.com host and keys.
package bing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"voicescribe/internal/app/api"
	"voicescribe/internal/app/audio"
	"voicescribe/internal/app/recognition"
)

const defaultEndpoint = "https://speech.platform.bing.com/speech/recognition/interactive/cognitiveservices/v1"

type provider struct {
	endpoint string
	client   *http.Client
}

func newProvider(settings map[string]interface{}) (recognition.Provider, error) {
	return &provider{
		endpoint: api.StringSetting(settings, "endpoint", defaultEndpoint),
		client:   &http.Client{Timeout: api.TimeoutSetting(settings, 30*time.Second)},
	}, nil
}

func (p *provider) Info() recognition.ProviderInfo {
	return recognition.ProviderInfo{
		ID:                 "bing",
		DisplayName:        "Microsoft Bing Voice Recognition",
		RequiresCredential: true,
	}
}

func (p *provider) Recognize(ctx context.Context, buf *audio.Buffer, language, credential string) (string, error) {
	q := url.Values{}
	q.Set("language", language)
	q.Set("format", "simple")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.endpoint+"?"+q.Encode(), bytes.NewReader(buf.WAV()))
	if err != nil {
		return "", fmt.Errorf("bing: build request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", credential)
	req.Header.Set("Content-Type",
		fmt.Sprintf("audio/wav; codecs=audio/pcm; samplerate=%d", buf.SampleRate))

	resp, err := p.client.Do(req)
	if err != nil {
		return "", api.TransportError("bing", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", api.TransportError("bing", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", api.StatusError("bing", resp.StatusCode, string(body))
	}

	var parsed struct {
		RecognitionStatus string `json:"RecognitionStatus"`
		DisplayText       string `json:"DisplayText"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("bing: malformed response: %w", err)
	}

	switch parsed.RecognitionStatus {
	case "Success":
		if parsed.DisplayText == "" {
			return "", recognition.ErrNoSpeech
		}
		return parsed.DisplayText, nil
	case "NoMatch", "InitialSilenceTimeout":
		return "", recognition.ErrNoSpeech
	default:
		return "", fmt.Errorf("bing recognition failed: %s", parsed.RecognitionStatus)
	}
}
