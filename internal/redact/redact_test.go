package redact_test

import (
	"errors"
	"testing"

	"github.com/AutomatedMarketer/flodesk/internal/redact"
	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		mustNotHold []string
		mustHold    []string
	}{
		{
			name:        "api key assignment",
			input:       `request failed: api_key=sk_live_abcdef123456`,
			mustNotHold: []string{"sk_live_abcdef123456"},
			mustHold:    []string{redact.RedactedKeyPlaceholder},
		},
		{
			name:        "basic auth header value",
			input:       "upstream rejected Basic dXNlcjpwYXNzd29yZA==",
			mustNotHold: []string{"dXNlcjpwYXNzd29yZA=="},
			mustHold:    []string{redact.RedactedKeyPlaceholder},
		},
		{
			name:        "credential in url",
			input:       "dial https://mykey123@api.flodesk.com/v1: timeout",
			mustNotHold: []string{"mykey123@"},
			mustHold:    []string{redact.RedactedKeyPlaceholder},
		},
		{
			name:        "subscriber email",
			input:       "subscriber jane.doe@example.com not found",
			mustNotHold: []string{"jane.doe@example.com"},
			mustHold:    []string{redact.RedactedEmailPlaceholder},
		},
		{
			name:     "plain message unchanged",
			input:    "connection refused",
			mustHold: []string{"connection refused"},
		},
		{
			name:  "empty string",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := redact.String(tt.input)
			for _, s := range tt.mustNotHold {
				assert.NotContains(t, got, s)
			}
			for _, s := range tt.mustHold {
				assert.Contains(t, got, s)
			}
		})
	}
}

func TestError(t *testing.T) {
	assert.Equal(t, "", redact.Error(nil))

	err := errors.New("lookup failed for bob@example.com")
	assert.NotContains(t, redact.Error(err), "bob@example.com")
}
