package plangen

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/sameer-hoda/mynextpr-sub001/pkg/errors"
)

// extractJSON recovers a JSON value from free-form model text. Models wrap
// valid JSON in prose or code fences, so two heuristics run in order: the
// first-to-last brace span, then the interior of a fenced block.
func extractJSON(raw string) (any, error) {
	if value, ok := parseBraceSpan(raw); ok {
		return value, nil
	}
	if value, ok := parseFencedBlock(raw); ok {
		return value, nil
	}
	return nil, apperrors.Wrap("extraction_error", "no parseable json in model output", fmt.Errorf("raw output: %s", raw))
}

func parseBraceSpan(raw string) (any, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || start >= end {
		return nil, false
	}
	var value any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &value); err != nil {
		return nil, false
	}
	return value, true
}

func parseFencedBlock(raw string) (any, bool) {
	const fence = "```"
	start := strings.Index(raw, fence)
	if start == -1 {
		return nil, false
	}
	body := raw[start+len(fence):]
	body = strings.TrimPrefix(body, "json")
	// A response truncated before the closing fence still counts as a block.
	if end := strings.Index(body, fence); end != -1 {
		body = body[:end]
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, false
	}
	var value any
	if err := json.Unmarshal([]byte(body), &value); err != nil {
		return nil, false
	}
	return value, true
}
