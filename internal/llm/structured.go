package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// SnippetLimit bounds the raw-text prefix carried by a ParseError.
const SnippetLimit = 200

// Strategy names the decoding branch that recovered a JSON object.
type Strategy string

const (
	StrategyDirect Strategy = "direct"
	StrategyBraces Strategy = "braces"
)

// decodeStrategy proposes a JSON candidate from cleaned model text.
type decodeStrategy struct {
	name      Strategy
	candidate func(cleaned string) (string, bool)
}

// strategies run in order; the first candidate that decodes wins.
var strategies = []decodeStrategy{
	{name: StrategyDirect, candidate: directCandidate},
	{name: StrategyBraces, candidate: braceCandidate},
}

// Decode decodes a JSON object of type T from raw model output and reports
// which strategy recovered it. It tolerates surrounding whitespace, a
// markdown code fence and prose around the object, and nothing else.
func Decode[T any](raw string) (T, Strategy, error) {
	var zero T

	cleaned := stripCodeFence(strings.TrimSpace(raw))

	var lastErr error = errors.New("no JSON object found in response")
	for _, s := range strategies {
		candidate, ok := s.candidate(cleaned)
		if !ok {
			continue
		}
		var result T
		if err := json.Unmarshal([]byte(candidate), &result); err != nil {
			lastErr = err
			continue
		}
		return result, s.name, nil
	}

	return zero, "", &ParseError{Snippet: truncate(raw, SnippetLimit), Cause: lastErr}
}

// stripCodeFence removes a leading ``` or ```json fence line and a trailing
// ``` fence. Text that does not start with a fence is returned unchanged.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = s[4:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// directCandidate accepts the cleaned text as-is when it looks like an object.
func directCandidate(s string) (string, bool) {
	if !strings.HasPrefix(s, "{") {
		return "", false
	}
	return s, true
}

// braceCandidate takes everything from the first '{' to the last '}'.
func braceCandidate(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// truncate returns at most n runes of s.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
