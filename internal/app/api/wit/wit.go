// Package wit implements the Wit.ai speech backend. Wit infers the
// language from the app the token belongs to, so the language code is not
// sent on the wire.
package wit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"voicescribe/internal/app/api"
	"voicescribe/internal/app/audio"
	"voicescribe/internal/app/recognition"
)

const (
	defaultEndpoint = "https://api.wit.ai/speech"
	apiVersion      = "20230215"
)

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
		ID:                 "wit",
		DisplayName:        "Wit.ai",
		RequiresCredential: true,
	}
}

func (p *provider) Recognize(ctx context.Context, buf *audio.Buffer, language, credential string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.endpoint+"?v="+apiVersion, bytes.NewReader(buf.WAV()))
	if err != nil {
		return "", fmt.Errorf("wit: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", api.TransportError("wit", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", api.TransportError("wit", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", api.StatusError("wit", resp.StatusCode, string(body))
	}

	return parseResponse(body)
}

// parseResponse walks the streamed sequence of JSON objects wit returns
// and keeps the last non-empty "text" field, which carries the final
// transcription.
func parseResponse(body []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	var text string
	for {
		var chunk struct {
			Text string `json:"text"`
		}
		if err := dec.Decode(&chunk); err != nil {
			if err == io.EOF {
				break
			}
			return "", fmt.Errorf("wit: malformed response: %w", err)
		}
		if chunk.Text != "" {
			text = chunk.Text
		}
	}
	if text == "" {
		return "", recognition.ErrNoSpeech
	}
	return text, nil
}
