package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for dateString fields.
const DateLayout = "2006-01-02"

type EntryType string

const (
	EntryDream   EntryType = "dream"
	EntryJournal EntryType = "journal"
	EntryNote    EntryType = "note"
)

func (t EntryType) Valid() bool {
	switch t {
	case EntryDream, EntryJournal, EntryNote:
		return true
	}
	return false
}

// DefaultMood is stored on an entry when the model result carries no mood.
const DefaultMood = "peaceful"

// Entry is a single user-authored dream, journal or note record.
// Type never changes after creation.
type Entry struct {
	ID            string            `json:"id" firestore:"-"`
	UserID        string            `json:"userId" firestore:"userId"`
	Type          EntryType         `json:"type" firestore:"type"`
	Text          string            `json:"text" firestore:"text"`
	DateString    string            `json:"dateString" firestore:"dateString"`
	Timestamp     time.Time         `json:"timestamp" firestore:"timestamp"`
	Mood          string            `json:"mood,omitempty" firestore:"mood,omitempty"`
	AIResult      *GenerationResult `json:"aiResult,omitempty" firestore:"aiResult,omitempty"`
	AIProcessedAt *time.Time        `json:"aiProcessedAt,omitempty" firestore:"aiProcessedAt,omitempty"`
}

// MoodOr returns the entry mood, or fallback when none was recorded.
func (e *Entry) MoodOr(fallback string) string {
	if strings.TrimSpace(e.Mood) == "" {
		return fallback
	}
	return e.Mood
}

// ApplyResult attaches a parsed generation result to the entry.
func (e *Entry) ApplyResult(r *GenerationResult, now time.Time) {
	e.AIResult = r
	e.Mood = r.MoodOrDefault()
	processed := now
	e.AIProcessedAt = &processed
}

// DateOf formats t as a dateString in t's own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidDateString reports whether s is a YYYY-MM-DD calendar date.
func ValidDateString(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
