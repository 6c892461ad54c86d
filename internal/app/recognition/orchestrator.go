package recognition

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"voicescribe/internal/app/audio"
	"voicescribe/internal/app/settings"
)

// Orchestrator resolves the active provider from the settings store,
// invokes it, and classifies the result into an Outcome. It never touches
// the transcript ledger; callers decide whether to record what it returns.
type Orchestrator struct {
	registry *Registry
	settings *settings.Store
	logger   *zap.Logger
}

// NewOrchestrator creates an orchestrator over the given registry and
// settings store.
func NewOrchestrator(registry *Registry, store *settings.Store, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		registry: registry,
		settings: store,
		logger:   logger,
	}
}

// Recognize runs one recognition attempt against the active provider. The
// call is synchronous; per-call timeouts are the provider's concern.
func (o *Orchestrator) Recognize(ctx context.Context, buf *audio.Buffer) Outcome {
	providerID := o.settings.ActiveProvider()
	language := o.settings.ActiveLanguage()

	finish := func(out Outcome, seconds float64) Outcome {
		out.Provider = providerID
		out.Language = language
		observeOutcome(providerID, out, seconds)
		return out
	}

	p, err := o.registry.Resolve(providerID)
	if err != nil {
		return finish(failureOutcome(FailureUnknown, err.Error()), 0)
	}

	info := p.Info()
	credential, hasCredential := o.settings.Credential(providerID)
	if info.RequiresCredential && !hasCredential {
		o.logger.Warn("recognition skipped, credential not configured",
			zap.String("provider", providerID))
		return finish(failureOutcome(FailureMissingCredential,
			info.DisplayName+" requires an API key"), 0)
	}

	start := time.Now()
	text, err := p.Recognize(ctx, buf, language, credential)
	elapsed := time.Since(start)

	return finish(o.classify(providerID, text, err), elapsed.Seconds())
}

func (o *Orchestrator) classify(providerID, text string, err error) Outcome {
	if err != nil {
		if errors.Is(err, ErrNoSpeech) {
			o.logger.Warn("no speech detected", zap.String("provider", providerID))
			return noSpeechOutcome()
		}
		kind := classifyFailure(err)
		o.logger.Error("recognition failed",
			zap.String("provider", providerID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return failureOutcome(kind, err.Error())
	}

	text = strings.TrimSpace(text)
	if text == "" {
		o.logger.Warn("no speech detected", zap.String("provider", providerID))
		return noSpeechOutcome()
	}
	return textOutcome(text)
}
