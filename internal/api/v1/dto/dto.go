// Package dto holds the request and response shapes of the v1 API.
package dto

import (
	"time"

	"voicescribe/internal/app/ledger"
	"voicescribe/internal/app/recognition"
)

// SettingsResponse reports the active provider and language plus which
// providers have credentials configured. Credentials themselves are
// never returned.
type SettingsResponse struct {
	ActiveProvider      string   `json:"active_provider"`
	ActiveLanguage      string   `json:"active_language"`
	ConfiguredProviders []string `json:"configured_providers"`
}

// UpdateSettingsRequest changes the active provider and/or language.
type UpdateSettingsRequest struct {
	Provider string `json:"provider" validate:"omitempty,min=1"`
	Language string `json:"language" validate:"omitempty,min=2"`
}

// CredentialRequest stores a credential for one provider.
type CredentialRequest struct {
	Credential string `json:"credential" validate:"required,min=1"`
}

// StartSessionRequest begins a listening session over a spool directory.
// Whether to archive is decided at stop time, not here.
type StartSessionRequest struct {
	SpoolDir string `json:"spool_dir" validate:"required,min=1"`
}

// SessionResponse reports the session id and lifecycle state.
type SessionResponse struct {
	SessionID string `json:"session_id,omitempty"`
	State     string `json:"state"`
}

// ProviderResponse is one catalog entry, annotated with whether a
// credential is on file.
type ProviderResponse struct {
	recognition.ProviderInfo
	Configured bool `json:"configured"`
}

// LanguageResponse is one entry of the language catalog.
type LanguageResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// RecognizeResponse is the classified result of a one-shot recognition.
type RecognizeResponse struct {
	Outcome  string `json:"outcome"`
	Text     string `json:"text,omitempty"`
	Failure  string `json:"failure,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Provider string `json:"provider"`
	Language string `json:"language"`
}

// NewRecognizeResponse flattens an outcome for the wire.
func NewRecognizeResponse(out recognition.Outcome) RecognizeResponse {
	resp := RecognizeResponse{
		Provider: out.Provider,
		Language: out.Language,
	}
	switch out.Kind {
	case recognition.OutcomeText:
		resp.Outcome = "text"
		resp.Text = out.Text
	case recognition.OutcomeNoSpeech:
		resp.Outcome = "no_speech"
	default:
		resp.Outcome = "failure"
		resp.Failure = string(out.Failure)
		resp.Detail = out.Detail
	}
	return resp
}

// TranscriptsResponse lists ledger entries with a count.
type TranscriptsResponse struct {
	Count   int            `json:"count"`
	Entries []ledger.Entry `json:"entries"`
}

// ArchivedSessionResponse is one archived session with its entries.
type ArchivedSessionResponse struct {
	SessionID string         `json:"session_id"`
	Entries   []ledger.Entry `json:"entries"`
}

// HealthResponse is the /health body.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// NewHealthResponse reports a healthy service at the current time.
func NewHealthResponse() HealthResponse {
	return HealthResponse{Status: "healthy", Timestamp: time.Now().Unix()}
}
