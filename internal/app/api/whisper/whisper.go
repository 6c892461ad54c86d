// Package whisper implements the OpenAI Whisper API backend.
package whisper

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"voicescribe/internal/app/api"
	"voicescribe/internal/app/audio"
	"voicescribe/internal/app/recognition"
)

type provider struct {
	model   string
	baseURL string
}

func newProvider(settings map[string]interface{}) (recognition.Provider, error) {
	return &provider{
		model:   api.StringSetting(settings, "model", openai.Whisper1),
		baseURL: api.StringSetting(settings, "base_url", ""),
	}, nil
}

func (p *provider) Info() recognition.ProviderInfo {
	return recognition.ProviderInfo{
		ID:                 "openai",
		DisplayName:        "OpenAI Whisper API",
		RequiresCredential: true,
	}
}

func (p *provider) Recognize(ctx context.Context, buf *audio.Buffer, language, credential string) (string, error) {
	cfg := openai.DefaultConfig(credential)
	if p.baseURL != "" {
		cfg.BaseURL = p.baseURL
	}
	client := openai.NewClientWithConfig(cfg)

	req := openai.AudioRequest{
		Model:    p.model,
		Reader:   bytes.NewReader(buf.WAV()),
		FilePath: "utterance.wav",
		Language: baseLanguage(language),
	}
	resp, err := client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai createTranscription failed: %w", err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", recognition.ErrNoSpeech
	}
	return resp.Text, nil
}

// baseLanguage reduces a BCP-47 tag to the ISO-639-1 code Whisper expects.
func baseLanguage(code string) string {
	if i := strings.IndexByte(code, '-'); i > 0 {
		return strings.ToLower(code[:i])
	}
	return strings.ToLower(code)
}
