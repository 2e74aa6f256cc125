package intelligence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDreamPrompt_Deterministic(t *testing.T) {
	in := DreamPromptInput{
		DreamText:      "I was flying over a city made of glass",
		JournalHistory: "Date: 2026-10-18\nEntry: long day\nMood: tired",
		QuickNotes:     "- call mum",
	}
	assert.Equal(t, BuildDreamPrompt(in), BuildDreamPrompt(in))
}

func TestBuildJournalPrompt_Deterministic(t *testing.T) {
	in := JournalPromptInput{
		JournalText:    "Quiet evening, finished the book.",
		TodayDream:     "A lighthouse in fog",
		RecentJournals: "Date: 2026-10-18\nEntry: long day",
		QuickNotes:     "- buy bread",
	}
	assert.Equal(t, BuildJournalPrompt(in), BuildJournalPrompt(in))
}

func TestBuildDreamPrompt_Placeholders(t *testing.T) {
	p := BuildDreamPrompt(DreamPromptInput{DreamText: "I was flying over a city made of glass"})

	assert.Contains(t, p, "RECENT JOURNAL ENTRIES (last 7 evenings):\n"+NoHistoryPlaceholder+"\n")
	assert.Contains(t, p, "TODAY'S QUICK NOTES:\n"+NoNotesPlaceholder+"\n")
	assert.Contains(t, p, "TODAY'S DREAM:\nI was flying over a city made of glass\n")
	assert.NotContains(t, p, ":\n\n\n", "no section may render empty")
}

func TestBuildJournalPrompt_Placeholders(t *testing.T) {
	p := BuildJournalPrompt(JournalPromptInput{JournalText: "Long day at work."})

	assert.Contains(t, p, "TODAY'S DREAM (recorded this morning):\n"+NoDreamPlaceholder+"\n")
	assert.Contains(t, p, "TODAY'S QUICK NOTES:\n"+NoNotesPlaceholder+"\n")
	assert.Contains(t, p, "RECENT PAST JOURNAL ENTRIES:\n"+NoHistoryPlaceholder+"\n")
	assert.Contains(t, p, "TODAY'S EVENING JOURNAL:\nLong day at work.\n")
}

func TestBuildPrompts_WhitespaceContextUsesPlaceholder(t *testing.T) {
	p := BuildJournalPrompt(JournalPromptInput{
		JournalText:    "x",
		TodayDream:     "   \n",
		RecentJournals: "\t",
		QuickNotes:     " ",
	})
	assert.Contains(t, p, NoDreamPlaceholder)
	assert.Contains(t, p, NoHistoryPlaceholder)
	assert.Contains(t, p, "TODAY'S QUICK NOTES:\nNone\n")
}

func TestBuildPrompts_ContextIncluded(t *testing.T) {
	p := BuildJournalPrompt(JournalPromptInput{
		JournalText:    "Finished the book.",
		TodayDream:     "A lighthouse in fog",
		RecentJournals: "Date: 2026-10-18\nEntry: long day",
		QuickNotes:     "- buy bread",
	})
	assert.Contains(t, p, "A lighthouse in fog")
	assert.Contains(t, p, "Date: 2026-10-18\nEntry: long day")
	assert.Contains(t, p, "- buy bread")
	assert.NotContains(t, p, NoDreamPlaceholder)
	assert.NotContains(t, p, NoHistoryPlaceholder)
}

func TestBuildPrompts_ShareOutputContract(t *testing.T) {
	prompts := map[string]string{
		"dream":   BuildDreamPrompt(DreamPromptInput{DreamText: "x"}),
		"journal": BuildJournalPrompt(JournalPromptInput{JournalText: "x"}),
	}
	for name, p := range prompts {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, p, `"goals": [`)
			assert.Contains(t, p, `"mood": "`)
			assert.Contains(t, p, `"insight": "`)
			assert.Contains(t, p, "(15 words or fewer)")
			assert.Contains(t, p, "(20 words or fewer)")
			assert.Contains(t, p, "Generate exactly 3 goals.")
			assert.Contains(t, p, "Return ONLY valid JSON — no markdown")
			assert.Contains(t, p, strings.Join(MoodVocabulary, ", "))
			assert.NotContains(t, p, "%!", "format verbs must all be consumed")
		})
	}
}

func TestBuildPrompts_DifferByKind(t *testing.T) {
	dream := BuildDreamPrompt(DreamPromptInput{DreamText: "same"})
	journal := BuildJournalPrompt(JournalPromptInput{JournalText: "same"})
	assert.NotEqual(t, dream, journal)
	assert.Contains(t, dream, "morning dream")
	assert.Contains(t, journal, "evening journal")
}
