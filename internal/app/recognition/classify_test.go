package recognition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFailure(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected FailureKind
	}{
		{
			name:     "quota keyword",
			err:      errors.New("google quota exceeded (status 429)"),
			expected: FailureRateLimited,
		},
		{
			name:     "rate limit keyword",
			err:      errors.New("request hit the rate limit, try again later"),
			expected: FailureRateLimited,
		},
		{
			name:     "rejected key",
			err:      errors.New("wit rejected the API key (status 401)"),
			expected: FailureAuthError,
		},
		{
			name:     "unauthorized",
			err:      errors.New("unauthorized"),
			expected: FailureAuthError,
		},
		{
			name:     "network error",
			err:      errors.New("azure network error: dial tcp: connection refused"),
			expected: FailureNetworkError,
		},
		{
			name:     "timeout",
			err:      errors.New("context deadline exceeded: timeout"),
			expected: FailureNetworkError,
		},
		{
			name:     "tls failure mentioning certificate authority",
			err:      errors.New("gemini network error: x509: certificate signed by unknown authority"),
			expected: FailureNetworkError,
		},
		{
			name:     "quota wins over key",
			err:      errors.New("API key quota exhausted"),
			expected: FailureRateLimited,
		},
		{
			name:     "unmatched text",
			err:      errors.New("something odd happened"),
			expected: FailureUnknown,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classifyFailure(tc.err))
		})
	}
}
