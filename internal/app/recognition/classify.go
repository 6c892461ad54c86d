package recognition

import "strings"

// classifyFailure maps a provider error to a failure kind by inspecting
// the error text for keyword hints. Provider libraries do not expose
// structured error codes, so this is best-effort; Unknown is the
// catch-all.
func classifyFailure(err error) FailureKind {
	msg := strings.ToLower(err.Error())

	// Network before auth: TLS transport failures mention "certificate
	// authority" and would otherwise trip the "auth" substring.
	switch {
	case containsAny(msg, "quota", "rate limit", "too many requests", "429"):
		return FailureRateLimited
	case containsAny(msg, "network", "connection", "timeout", "dial", "unreachable", "dns"):
		return FailureNetworkError
	case containsAny(msg, "key", "auth", "unauthorized", "forbidden", "credential"):
		return FailureAuthError
	default:
		return FailureUnknown
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
