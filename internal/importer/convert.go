package importer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nocturne-journal/nocturne/internal/domain"
)

// Backup is a converted import file, ready for persistence.
type Backup struct {
	Entries []*domain.Entry
	Goals   []*domain.Goal
}

// Convert turns a validated ImportSchema into domain objects owned by
// userID. Call ValidateImportSchema first; Convert assumes the schema is
// valid. Entries without a timestamp are placed at noon UTC on their date.
func Convert(schema *ImportSchema, userID string, now time.Time) *Backup {
	refMap := make(map[string]string) // ref -> ID

	entries := make([]*domain.Entry, 0, len(schema.Entries))
	for _, e := range schema.Entries {
		id := uuid.New().String()
		if e.Ref != "" {
			refMap[e.Ref] = id
		}

		entry := &domain.Entry{
			ID:         id,
			UserID:     userID,
			Type:       domain.EntryType(e.Type),
			Text:       strings.TrimSpace(e.Text),
			DateString: e.DateString,
			Timestamp:  entryTimestamp(e),
			Mood:       e.Mood,
		}
		if e.AIResult != nil {
			entry.ApplyResult(e.AIResult, now)
			if e.Mood != "" {
				entry.Mood = e.Mood
			}
		}
		entries = append(entries, entry)
	}

	goals := make([]*domain.Goal, 0, len(schema.Goals))
	for _, g := range schema.Goals {
		source := domain.GoalSource(g.Source)
		if source == "" {
			source = domain.GoalSourceManual
		}
		icon := g.Icon
		if icon == "" {
			icon = domain.DefaultGoalIcon
		}

		var sourceEntryID *string
		if g.EntryRef != nil {
			if id, ok := refMap[*g.EntryRef]; ok {
				sourceEntryID = &id
			}
		}

		goals = append(goals, &domain.Goal{
			ID:            uuid.New().String(),
			UserID:        userID,
			Text:          strings.TrimSpace(g.Text),
			Icon:          icon,
			Why:           g.Why,
			Source:        source,
			SourceEntryID: sourceEntryID,
			Completed:     g.Completed,
			DateString:    g.DateString,
			CreatedAt:     now,
		})
	}

	return &Backup{Entries: entries, Goals: goals}
}

func entryTimestamp(e EntryImport) time.Time {
	if e.Timestamp != nil {
		if t, err := time.Parse(time.RFC3339, *e.Timestamp); err == nil {
			return t.UTC()
		}
	}
	d, _ := time.Parse(domain.DateLayout, e.DateString)
	return d.Add(12 * time.Hour)
}
