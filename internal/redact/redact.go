// Package redact provides utilities for redacting sensitive information from
// strings before they are logged. The proxy handles two kinds of sensitive
// data: caller API keys (relayed upstream via the Authorization header) and
// subscriber email addresses.
package redact

import (
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactedKeyPlaceholder   = "[REDACTED_KEY]"
	RedactedEmailPlaceholder = "[REDACTED_EMAIL]"
)

// Precompiled regex patterns
var (
	// API keys and Basic credentials that may leak through wrapped errors
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|authorization|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/=]{8,}`,
	)
	basicAuthRegex = regexp.MustCompile(`(?i)basic\s+[A-Za-z0-9+/=]{8,}`)

	// Credentials embedded in URLs (https://key@host/...)
	urlCredRegex = regexp.MustCompile(`(https?://)[^/@\s]+@`)

	// Subscriber email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// String redacts sensitive data from the given string.
func String(s string) string {
	if s == "" {
		return s
	}
	s = apiKeyRegex.ReplaceAllString(s, "${1}${2}"+RedactedKeyPlaceholder)
	s = basicAuthRegex.ReplaceAllString(s, RedactedKeyPlaceholder)
	s = urlCredRegex.ReplaceAllString(s, "${1}"+RedactedKeyPlaceholder+"@")
	s = emailRegex.ReplaceAllString(s, RedactedEmailPlaceholder)
	return s
}

// Error redacts sensitive data from an error's message.
// Returns an empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
