package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nocturne-journal/nocturne/internal/domain"
)

// ImportSchema is the top-level JSON structure of a journal backup file.
type ImportSchema struct {
	Entries []EntryImport `json:"entries"`
	Goals   []GoalImport  `json:"goals,omitempty"`
}

// EntryImport is one dream, journal or note in the backup file. Ref is a
// file-local handle goals use to point at their source entry.
type EntryImport struct {
	Ref        string                   `json:"ref,omitempty"`
	Type       string                   `json:"type"`
	Text       string                   `json:"text"`
	DateString string                   `json:"date_string"`
	Timestamp  *string                  `json:"timestamp,omitempty"`
	Mood       string                   `json:"mood,omitempty"`
	AIResult   *domain.GenerationResult `json:"ai_result,omitempty"`
}

// GoalImport is one goal in the backup file.
type GoalImport struct {
	Text       string  `json:"text"`
	Icon       string  `json:"icon,omitempty"`
	Why        string  `json:"why,omitempty"`
	Source     string  `json:"source,omitempty"`
	EntryRef   *string `json:"entry_ref,omitempty"`
	Completed  bool    `json:"completed,omitempty"`
	DateString string  `json:"date_string"`
}

// LoadImportSchema reads and parses a journal backup JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
