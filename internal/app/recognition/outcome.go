package recognition

// OutcomeKind discriminates the result of a single recognition attempt.
type OutcomeKind int

const (
	// OutcomeText means recognition produced a transcription.
	OutcomeText OutcomeKind = iota
	// OutcomeNoSpeech means the provider found no intelligible speech.
	OutcomeNoSpeech
	// OutcomeFailure means the attempt failed; see Outcome.Failure.
	OutcomeFailure
)

// FailureKind categorizes a failed recognition attempt.
type FailureKind string

const (
	FailureMissingCredential FailureKind = "missing_credential"
	FailureRateLimited       FailureKind = "rate_limited"
	FailureAuthError         FailureKind = "auth_error"
	FailureNetworkError      FailureKind = "network_error"
	FailureUnknown           FailureKind = "unknown"
)

// Outcome is the classified result of one recognition attempt. The
// orchestrator produces exactly one per call and never retries on its own;
// retry policy belongs to the caller. Provider and Language record which
// backend and language code served the attempt so callers can stamp
// ledger entries without re-reading settings.
type Outcome struct {
	Kind     OutcomeKind
	Text     string
	Failure  FailureKind
	Detail   string
	Provider string
	Language string
}

func textOutcome(text string) Outcome {
	return Outcome{Kind: OutcomeText, Text: text}
}

func noSpeechOutcome() Outcome {
	return Outcome{Kind: OutcomeNoSpeech}
}

func failureOutcome(kind FailureKind, detail string) Outcome {
	return Outcome{Kind: OutcomeFailure, Failure: kind, Detail: detail}
}
