package intelligence

import (
	"strings"

	"github.com/nocturne-journal/nocturne/internal/domain"
	"github.com/nocturne-journal/nocturne/internal/llm"
)

// ParseResult decodes raw model text into a GenerationResult using the
// layered fallback in llm.Decode. Content is not validated: a result with
// fewer goals or an unlisted mood is still accepted.
func ParseResult(raw string) (*domain.GenerationResult, llm.Strategy, error) {
	r, strategy, err := llm.Decode[domain.GenerationResult](raw)
	if err != nil {
		return nil, "", err
	}
	normalizeResult(&r)
	return &r, strategy, nil
}

// normalizeResult trims stray whitespace around model-written fields.
func normalizeResult(r *domain.GenerationResult) {
	r.Mood = strings.TrimSpace(r.Mood)
	r.Insight = strings.TrimSpace(r.Insight)
	for i := range r.Goals {
		r.Goals[i].Text = strings.TrimSpace(r.Goals[i].Text)
		r.Goals[i].Icon = strings.TrimSpace(r.Goals[i].Icon)
		r.Goals[i].Why = strings.TrimSpace(r.Goals[i].Why)
	}
}
