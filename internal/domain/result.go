package domain

import (
	"strings"
	"time"
)

// GoalSuggestion is one goal as emitted by the model, in presentation order.
type GoalSuggestion struct {
	Text string `json:"text" firestore:"text"`
	Icon string `json:"icon" firestore:"icon"`
	Why  string `json:"why" firestore:"why"`
}

// GenerationResult is the structured model output. It is not stored on its
// own; it is split into Entry.AIResult and a batch of Goal records.
type GenerationResult struct {
	Goals   []GoalSuggestion `json:"goals" firestore:"goals"`
	Mood    string           `json:"mood" firestore:"mood"`
	Insight string           `json:"insight" firestore:"insight"`
}

// MoodOrDefault returns the parsed mood, or DefaultMood if the model left it out.
func (r *GenerationResult) MoodOrDefault() string {
	if strings.TrimSpace(r.Mood) == "" {
		return DefaultMood
	}
	return r.Mood
}

// ToGoals expands the suggestions into AI goal records for userID on
// dateString. IDs are left empty for the repository to assign.
func (r *GenerationResult) ToGoals(userID, sourceEntryID, dateString string, now time.Time) []*Goal {
	var src *string
	if sourceEntryID != "" {
		id := sourceEntryID
		src = &id
	}

	goals := make([]*Goal, 0, len(r.Goals))
	for _, s := range r.Goals {
		icon := s.Icon
		if icon == "" {
			icon = DefaultGoalIcon
		}
		goals = append(goals, &Goal{
			UserID:        userID,
			Text:          s.Text,
			Icon:          icon,
			Why:           s.Why,
			Source:        GoalSourceAI,
			SourceEntryID: src,
			Completed:     false,
			DateString:    dateString,
			CreatedAt:     now,
		})
	}
	return goals
}
