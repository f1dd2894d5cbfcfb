package ai

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStructuredJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"plain object", `{"a":1}`, `{"a":1}`, nil},
		{"surrounding whitespace", "\n  {\"a\":1}  \n", `{"a":1}`, nil},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`, nil},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`, nil},
		{"prose around object", `Here you go: {"a":1} hope it helps`, `{"a":1}`, nil},
		{"empty", "", "", ErrEmptyResponse},
		{"not json", "no json here", "", ErrInvalidResponse},
		{"array", `[1,2]`, "", ErrInvalidResponse},
		{"truncated", `{"a":`, "", ErrInvalidResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseStructuredJSON(tt.in)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "hello", truncateString("hello", 10))
	assert.Equal(t, "hel", truncateString("hello", 3))

	// "é" is two bytes; cutting in the middle backs off to the rune start.
	s := strings.Repeat("é", 3)
	assert.Equal(t, "é", truncateString(s, 3))
}
