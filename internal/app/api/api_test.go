package api

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusErrorKeywords(t *testing.T) {
	testCases := []struct {
		status   int
		contains string
	}{
		{status: http.StatusUnauthorized, contains: "rejected the API key"},
		{status: http.StatusForbidden, contains: "rejected the API key"},
		{status: http.StatusTooManyRequests, contains: "quota exceeded"},
		{status: http.StatusBadGateway, contains: "request failed"},
	}

	for _, tc := range testCases {
		err := StatusError("test", tc.status, "body")
		assert.Contains(t, err.Error(), tc.contains)
	}
}

func TestStatusErrorTruncatesBody(t *testing.T) {
	long := make([]byte, 1000)
	for i := range long {
		long[i] = 'x'
	}

	err := StatusError("test", http.StatusInternalServerError, string(long))
	assert.Less(t, len(err.Error()), 300)
}

func TestTransportErrorWraps(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := TransportError("test", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "network error")
}

func TestStringSetting(t *testing.T) {
	settings := map[string]interface{}{"endpoint": "http://localhost", "empty": ""}

	assert.Equal(t, "http://localhost", StringSetting(settings, "endpoint", "fallback"))
	assert.Equal(t, "fallback", StringSetting(settings, "empty", "fallback"))
	assert.Equal(t, "fallback", StringSetting(settings, "missing", "fallback"))
	assert.Equal(t, "fallback", StringSetting(nil, "endpoint", "fallback"))
}

func TestTimeoutSetting(t *testing.T) {
	// YAML decodes numbers as int, JSON as float64; both must work.
	assert.Equal(t, 45*time.Second, TimeoutSetting(map[string]interface{}{"timeout_sec": 45}, time.Second))
	assert.Equal(t, 45*time.Second, TimeoutSetting(map[string]interface{}{"timeout_sec": 45.0}, time.Second))
	assert.Equal(t, time.Second, TimeoutSetting(nil, time.Second))
	assert.Equal(t, time.Second, TimeoutSetting(map[string]interface{}{"timeout_sec": -3}, time.Second))
}
