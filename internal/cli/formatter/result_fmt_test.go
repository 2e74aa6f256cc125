package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nocturne-journal/nocturne/internal/domain"
)

func TestFormatResult(t *testing.T) {
	r := &domain.GenerationResult{
		Goals: []domain.GoalSuggestion{
			{Text: "Take a walk outside", Icon: "🚶", Why: "Flying suggested a need for freedom"},
			{Text: "Rest"},
		},
		Mood:    "curious",
		Insight: "Open spaces keep returning.",
	}

	out := FormatResult("Dream", r)
	assert.Contains(t, out, "DREAM")
	assert.Contains(t, out, "curious")
	assert.Contains(t, out, "Open spaces keep returning.")
	assert.Contains(t, out, "Take a walk outside")
	assert.Contains(t, out, "Flying suggested a need for freedom")
	assert.Contains(t, out, domain.DefaultGoalIcon)
	assert.Less(t, strings.Index(out, "Take a walk"), strings.Index(out, "Rest"))
}

func TestMoodBadge(t *testing.T) {
	assert.Contains(t, MoodBadge("peaceful"), "peaceful")
	assert.Contains(t, MoodBadge("wistful"), "wistful")
	assert.Contains(t, MoodBadge(""), "unspecified")
}

func TestFormatGoals(t *testing.T) {
	assert.Contains(t, FormatGoals("2026-10-19", nil), "No goals for 2026-10-19")

	goals := []*domain.Goal{
		{ID: "0123456789", Text: "Sketch", Icon: "🎨", Source: domain.GoalSourceAI},
		{ID: "abcdefghij", Text: "Water", Icon: "💧", Source: domain.GoalSourceManual, Completed: true},
	}
	out := FormatGoals("2026-10-19", goals)
	assert.Contains(t, out, "Sketch")
	assert.Contains(t, out, "manual")
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789")
}

func TestFormatEntries(t *testing.T) {
	assert.Contains(t, FormatEntries(nil), "No entries found.")

	out := FormatEntries([]*domain.Entry{
		{ID: "e1", Type: domain.EntryNote, DateString: "2026-10-19", Text: "coffee\nwith Sam"},
	})
	assert.Contains(t, out, "coffee with Sam")
	assert.Contains(t, out, "note")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short", 10))
	assert.Equal(t, "a b c", Preview("a\n b\t c", 10))
	assert.Equal(t, "abcd…", Preview("abcdefgh", 5))
	assert.Equal(t, "夢夢…", Preview("夢夢夢夢", 3))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{{"long cell", "x"}, {"s", "y"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3)
}
