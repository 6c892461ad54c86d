// Package gemini implements a transcription backend on the Gemini
// generateContent REST API: the utterance is sent as an inline audio part
// with a fixed transcription instruction.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"voicescribe/internal/app/api"
	"voicescribe/internal/app/audio"
	"voicescribe/internal/app/recognition"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash"
)

type provider struct {
	baseURL string
	model   string
	client  *http.Client
}

func newProvider(settings map[string]interface{}) (recognition.Provider, error) {
	return &provider{
		baseURL: api.StringSetting(settings, "base_url", defaultBaseURL),
		model:   api.StringSetting(settings, "model", defaultModel),
		client:  &http.Client{Timeout: api.TimeoutSetting(settings, 60*time.Second)},
	}, nil
}

func (p *provider) Info() recognition.ProviderInfo {
	return recognition.ProviderInfo{
		ID:                 "gemini",
		DisplayName:        "Google Gemini",
		RequiresCredential: true,
	}
}

type geminiPart struct {
	Text       string `json:"text,omitempty"`
	InlineData *struct {
		MimeType string `json:"mime_type"`
		Data     string `json:"data"`
	} `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (p *provider) Recognize(ctx context.Context, buf *audio.Buffer, language, credential string) (string, error) {
	audioPart := geminiPart{}
	audioPart.InlineData = &struct {
		MimeType string `json:"mime_type"`
		Data     string `json:"data"`
	}{
		MimeType: "audio/wav",
		Data:     base64.StdEncoding.EncodeToString(buf.WAV()),
	}

	instruction := fmt.Sprintf(
		"Transcribe this audio verbatim. The speech is in %s. "+
			"Reply with the transcription only; reply with an empty message if there is no speech.",
		recognition.LanguageName(language))

	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{audioPart, {Text: instruction}},
		}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, credential)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", api.TransportError("gemini", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", api.TransportError("gemini", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", api.StatusError("gemini", resp.StatusCode, string(body))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("gemini: malformed response: %w", err)
	}

	var text strings.Builder
	for _, c := range parsed.Candidates {
		for _, part := range c.Content.Parts {
			text.WriteString(part.Text)
		}
		break
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", recognition.ErrNoSpeech
	}
	return strings.TrimSpace(text.String()), nil
}
