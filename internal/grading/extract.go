package grading

import (
	"encoding/json"
	"strings"
)

// extractJSON locates the grading JSON inside a raw collaborator
// response. It strips one surrounding markdown code fence if present,
// otherwise it scans for the first balanced top-level JSON object.
func extractJSON(raw string) (json.RawMessage, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, &ParseError{Msg: "empty response"}
	}

	if fenced, ok := stripCodeFence(text); ok {
		text = fenced
	}

	obj, ok := firstBalancedObject(text)
	if !ok {
		return nil, &ParseError{Msg: "no JSON object found in response"}
	}
	return json.RawMessage(obj), nil
}

// stripCodeFence removes a ```...``` wrapper, tolerating a language tag
// after the opening fence.
func stripCodeFence(text string) (string, bool) {
	if !strings.HasPrefix(text, "```") {
		return "", false
	}
	rest := text[3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		rest = rest[nl+1:]
	}
	end := strings.LastIndex(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// firstBalancedObject returns the first top-level {...} in text with
// balanced braces, accounting for strings and escapes.
func firstBalancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}
