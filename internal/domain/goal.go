package domain

import "time"

type GoalSource string

const (
	GoalSourceAI     GoalSource = "ai"
	GoalSourceManual GoalSource = "manual"
)

func (s GoalSource) Valid() bool {
	return s == GoalSourceAI || s == GoalSourceManual
}

// DefaultGoalIcon is used when a suggestion arrives without an icon.
const DefaultGoalIcon = "✨"

// Goal is an actionable suggestion, generated by the model or added by hand.
// AI goals for one user and date are replaced as a group, never edited.
type Goal struct {
	ID            string     `json:"id" firestore:"-"`
	UserID        string     `json:"userId" firestore:"userId"`
	Text          string     `json:"text" firestore:"text"`
	Icon          string     `json:"icon" firestore:"icon"`
	Why           string     `json:"why" firestore:"why"`
	Source        GoalSource `json:"source" firestore:"source"`
	SourceEntryID *string    `json:"sourceEntryId" firestore:"sourceEntryId"`
	Completed     bool       `json:"completed" firestore:"completed"`
	DateString    string     `json:"dateString" firestore:"dateString"`
	CreatedAt     time.Time  `json:"createdAt" firestore:"createdAt"`
}
