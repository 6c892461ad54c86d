// Package azure implements the Microsoft Azure Speech backend via the
// short-audio REST endpoint.
package azure

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

const defaultRegion = "eastus"

type provider struct {
	endpoint string
	client   *http.Client
}

func newProvider(settings map[string]interface{}) (recognition.Provider, error) {
	region := api.StringSetting(settings, "region", defaultRegion)
	endpoint := api.StringSetting(settings, "endpoint",
		fmt.Sprintf("https://%s.stt.speech.microsoft.com/speech/recognition/conversation/cognitiveservices/v1", region))

	return &provider{
		endpoint: endpoint,
		client:   &http.Client{Timeout: api.TimeoutSetting(settings, 30*time.Second)},
	}, nil
}

func (p *provider) Info() recognition.ProviderInfo {
	return recognition.ProviderInfo{
		ID:                 "azure",
		DisplayName:        "Microsoft Azure Speech",
		RequiresCredential: true,
	}
}

type azureResponse struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
}

func (p *provider) Recognize(ctx context.Context, buf *audio.Buffer, language, credential string) (string, error) {
	q := url.Values{}
	q.Set("language", language)
	q.Set("format", "simple")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.endpoint+"?"+q.Encode(), bytes.NewReader(buf.WAV()))
	if err != nil {
		return "", fmt.Errorf("azure: build request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", credential)
	req.Header.Set("Content-Type",
		fmt.Sprintf("audio/wav; codecs=audio/pcm; samplerate=%d", buf.SampleRate))
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", api.TransportError("azure", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", api.TransportError("azure", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", api.StatusError("azure", resp.StatusCode, string(body))
	}

	var parsed azureResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("azure: malformed response: %w", err)
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
		return "", fmt.Errorf("azure recognition failed: %s", parsed.RecognitionStatus)
	}
}
