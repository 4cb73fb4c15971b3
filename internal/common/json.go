package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON unmarshals an LLM response into T, tolerating the usual quirks:
// markdown code fences around the payload and prose before or after the
// object.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	cleaned := stripFences(response)

	// Slice to the outermost object.
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return zero, fmt.Errorf("response contains no JSON object")
	}
	cleaned = cleaned[start : end+1]

	var result T
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return result, nil
}

func stripFences(s string) string {
	if i := strings.Index(s, "```json"); i != -1 {
		s = s[i+len("```json"):]
	} else if i := strings.Index(s, "```"); i != -1 {
		s = s[i+len("```"):]
	} else {
		return s
	}
	if i := strings.Index(s, "```"); i != -1 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
