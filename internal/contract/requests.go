package contract

import (
	"strings"
	"time"

	"github.com/nocturne-journal/nocturne/internal/domain"
)

// ValidationError reports a request rejected before any I/O.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DreamRequest is the body of generate-goal-from-dream.
type DreamRequest struct {
	DreamText    string     `json:"dreamText"`
	UserID       string     `json:"userId"`
	EntryID      string     `json:"entryId,omitempty"`
	RefreshGoals bool       `json:"refreshGoals,omitempty"`
	QuickNotes   string     `json:"quickNotes,omitempty"`
	Now          *time.Time `json:"-"`
}

func (r DreamRequest) Validate() error {
	if blank(r.DreamText) || blank(r.UserID) {
		return &ValidationError{Message: "dreamText and userId are required"}
	}
	return nil
}

// JournalRequest is the body of process-journal-entry. DateString defaults
// to the server-local date when empty.
type JournalRequest struct {
	JournalText string     `json:"journalText"`
	UserID      string     `json:"userId"`
	EntryID     string     `json:"entryId,omitempty"`
	DateString  string     `json:"dateString,omitempty"`
	Now         *time.Time `json:"-"`
}

func (r JournalRequest) Validate() error {
	if blank(r.JournalText) || blank(r.UserID) {
		return &ValidationError{Message: "journalText and userId are required"}
	}
	if r.DateString != "" && !domain.ValidDateString(r.DateString) {
		return &ValidationError{Message: "dateString must be YYYY-MM-DD"}
	}
	return nil
}

// CreateEntryRequest is the body of POST /entries.
type CreateEntryRequest struct {
	UserID     string `json:"userId"`
	Type       string `json:"type"`
	Text       string `json:"text"`
	DateString string `json:"dateString,omitempty"`
}

func (r CreateEntryRequest) Validate() error {
	if blank(r.Text) || blank(r.UserID) || blank(r.Type) {
		return &ValidationError{Message: "type, text and userId are required"}
	}
	if !domain.EntryType(r.Type).Valid() {
		return &ValidationError{Message: "type must be one of dream, journal, note"}
	}
	if r.DateString != "" && !domain.ValidDateString(r.DateString) {
		return &ValidationError{Message: "dateString must be YYYY-MM-DD"}
	}
	return nil
}

// ListEntriesRequest filters GET /entries.
type ListEntriesRequest struct {
	UserID     string
	Type       string
	DateString string
	Limit      int
}

const MaxListLimit = 100

func (r ListEntriesRequest) Validate() error {
	if blank(r.UserID) {
		return &ValidationError{Message: "userId is required"}
	}
	if r.Type != "" && !domain.EntryType(r.Type).Valid() {
		return &ValidationError{Message: "type must be one of dream, journal, note"}
	}
	if r.DateString != "" && !domain.ValidDateString(r.DateString) {
		return &ValidationError{Message: "dateString must be YYYY-MM-DD"}
	}
	if r.Limit < 0 || r.Limit > MaxListLimit {
		return &ValidationError{Message: "limit must be between 0 and 100"}
	}
	return nil
}

// CreateGoalRequest is the body of POST /goals for user-authored goals.
type CreateGoalRequest struct {
	UserID     string `json:"userId"`
	Text       string `json:"text"`
	Icon       string `json:"icon,omitempty"`
	Why        string `json:"why,omitempty"`
	DateString string `json:"dateString,omitempty"`
}

func (r CreateGoalRequest) Validate() error {
	if blank(r.Text) || blank(r.UserID) {
		return &ValidationError{Message: "text and userId are required"}
	}
	if r.DateString != "" && !domain.ValidDateString(r.DateString) {
		return &ValidationError{Message: "dateString must be YYYY-MM-DD"}
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
