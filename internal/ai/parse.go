package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// parseStructuredJSON parses a JSON object from model output, tolerating
// markdown code fences and surrounding prose.
func parseStructuredJSON(content string) (json.RawMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyResponse
	}

	candidates := []string{content}
	if stripped := stripCodeFences(content); stripped != "" && stripped != content {
		candidates = append(candidates, stripped)
	}
	if extracted := extractObject(content); extracted != "" && extracted != content {
		candidates = append(candidates, extracted)
	}

	for _, candidate := range candidates {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
			return json.RawMessage(candidate), nil
		}
	}
	return nil, fmt.Errorf("%w: output is not a JSON object", ErrInvalidResponse)
}

func stripCodeFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return ""
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func extractObject(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return ""
	}
	return content[start : end+1]
}

// truncateString truncates s to maxBytes without splitting UTF-8 runes.
func truncateString(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}
