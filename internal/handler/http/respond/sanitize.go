package respond

import "textsum/pkg/security/redact"

// SanitizeError returns the error message with API keys, tokens and URL passwords masked.
func SanitizeError(err error) string {
	return redact.Error(err)
}
