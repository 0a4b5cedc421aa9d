package ai

import (
	"encoding/json"
	"strings"

	"github.com/dentassist/dentsync/pkg/errors"
)

// DecodeStructured parses a model reply that is expected to be JSON. Replies
// wrapped in markdown code fences are unwrapped first. A payload that still
// isn't valid JSON yields a malformed-response error value.
func DecodeStructured(raw string, out interface{}) error {
	payload := stripFences(raw)
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return errors.MalformedResponse(err)
	}
	return nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
