package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/nocturne-journal/nocturne/internal/domain"
)

// EntryOption customises an entry built by NewTestEntry.
type EntryOption func(*domain.Entry)

func WithDate(dateString string) EntryOption {
	return func(e *domain.Entry) {
		e.DateString = dateString
	}
}

func WithTimestamp(ts time.Time) EntryOption {
	return func(e *domain.Entry) {
		e.Timestamp = ts
	}
}

func WithMood(mood string) EntryOption {
	return func(e *domain.Entry) {
		e.Mood = mood
	}
}

func WithEntryID(id string) EntryOption {
	return func(e *domain.Entry) {
		e.ID = id
	}
}

// NewTestEntry builds an entry dated today unless overridden.
func NewTestEntry(userID string, typ domain.EntryType, text string, opts ...EntryOption) *domain.Entry {
	now := time.Now()
	e := &domain.Entry{
		ID:         uuid.New().String(),
		UserID:     userID,
		Type:       typ,
		Text:       text,
		DateString: domain.DateOf(now),
		Timestamp:  now.UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewTestResult returns a well-formed three-goal generation result.
func NewTestResult(mood string) *domain.GenerationResult {
	return &domain.GenerationResult{
		Goals: []domain.GoalSuggestion{
			{Text: "Take a walk outside", Icon: "🚶", Why: "Flying suggested a need for freedom"},
			{Text: "Sketch the glass city", Icon: "🎨", Why: "Capture the imagery while it is fresh"},
			{Text: "Call an old friend", Icon: "📞", Why: "Connection grounds you"},
		},
		Mood:    mood,
		Insight: "Your dreams keep returning to open spaces. Perhaps you are craving room to breathe.",
	}
}
