// Package googlecloud implements the Google Cloud Speech-to-Text backend
// using the v1 REST surface with API-key authentication.
package googlecloud

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"voicescribe/internal/app/api"
	"voicescribe/internal/app/audio"
	"voicescribe/internal/app/recognition"
)

const defaultEndpoint = "https://speech.googleapis.com/v1/speech:recognize"

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
		ID:                 "google_cloud",
		DisplayName:        "Google Cloud Speech",
		RequiresCredential: true,
	}
}

type recognizeRequest struct {
	Config struct {
		Encoding        string `json:"encoding"`
		SampleRateHertz int    `json:"sampleRateHertz"`
		LanguageCode    string `json:"languageCode"`
	} `json:"config"`
	Audio struct {
		Content string `json:"content"`
	} `json:"audio"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"results"`
}

func (p *provider) Recognize(ctx context.Context, buf *audio.Buffer, language, credential string) (string, error) {
	var reqBody recognizeRequest
	reqBody.Config.Encoding = "LINEAR16"
	reqBody.Config.SampleRateHertz = buf.SampleRate
	reqBody.Config.LanguageCode = language
	reqBody.Audio.Content = base64.StdEncoding.EncodeToString(buf.PCM)

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("google_cloud: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.endpoint+"?key="+credential, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("google_cloud: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", api.TransportError("google_cloud", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", api.TransportError("google_cloud", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", api.StatusError("google_cloud", resp.StatusCode, string(body))
	}

	var parsed recognizeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("google_cloud: malformed response: %w", err)
	}
	for _, r := range parsed.Results {
		if len(r.Alternatives) > 0 && r.Alternatives[0].Transcript != "" {
			return r.Alternatives[0].Transcript, nil
		}
	}
	return "", recognition.ErrNoSpeech
}
