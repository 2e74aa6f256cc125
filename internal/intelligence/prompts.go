package intelligence

import (
	"fmt"
	"strings"
)

// Placeholders substituted for missing optional context. An empty section
// reads ambiguously to the model, so absence is always spelled out.
const (
	NoHistoryPlaceholder = "No previous entries yet — this is the first entry."
	NoDreamPlaceholder   = "No dream recorded today."
	NoNotesPlaceholder   = "None"
)

// MoodVocabulary is offered to the model as examples. Moods outside it are
// accepted as long as they are a single word.
var MoodVocabulary = []string{
	"peaceful", "curious", "anxious", "nostalgic", "energetic", "grateful",
	"creative", "calm", "inspired", "cozy", "reflective",
}

const persona = `You are Nocturne, a compassionate and insightful journal companion. Your tone is warm, curious, and never prescriptive.`

const jsonOnly = `Return ONLY valid JSON — no markdown, no explanation outside the JSON.`

// outputContract is the JSON shape both flows must return. The goal, mood
// and insight descriptions are filled per flow.
const outputContract = `{
  "goals": [
    {
      "text": "%s (15 words or fewer)",
      "icon": "A single relevant emoji",
      "why": "%s (20 words or fewer)"
    }
  ],
  "mood": "%s (e.g. %s)",
  "insight": "%s"
}`

const dreamTemplate = persona + ` You help people discover patterns in their inner life.

The user has just recorded their morning dream. You also have access to their recent evening journal entries and today's quick notes for context.

RECENT JOURNAL ENTRIES (last 7 evenings):
%s

TODAY'S QUICK NOTES:
%s

TODAY'S DREAM:
%s

Based on the dream and their journaling history, return a JSON object. ` + jsonOnly + `

%s

Generate exactly 3 goals. Make them specific to THIS person's content, not generic advice.`

const journalTemplate = persona + `

The user has just written their evening journal entry. You have their dream from this morning, today's quick notes and recent past journal entries as context.

TODAY'S DREAM (recorded this morning):
%s

TODAY'S QUICK NOTES:
%s

RECENT PAST JOURNAL ENTRIES:
%s

TODAY'S EVENING JOURNAL:
%s

Return a JSON object. ` + jsonOnly + `

%s

Generate exactly 3 goals. Tailor them to this person's specific words and themes today.`

// DreamPromptInput is the rendered context for a morning dream submission.
type DreamPromptInput struct {
	DreamText      string
	JournalHistory string
	QuickNotes     string
}

// JournalPromptInput is the rendered context for an evening journal submission.
type JournalPromptInput struct {
	JournalText    string
	TodayDream     string
	RecentJournals string
	QuickNotes     string
}

// BuildDreamPrompt renders the dream instruction. Equal inputs always
// produce byte-identical prompts.
func BuildDreamPrompt(in DreamPromptInput) string {
	contract := fmt.Sprintf(outputContract,
		"A specific, gentle action this person could take today",
		"A brief personal explanation connecting this goal to their dream or patterns",
		"One word capturing the emotional tone of this dream",
		strings.Join(MoodVocabulary, ", "),
		"A 2-3 sentence reflection noticing a pattern or theme across the dream and recent entries. Be specific, warm, and observational — never prescriptive.",
	)
	return fmt.Sprintf(dreamTemplate,
		orPlaceholder(in.JournalHistory, NoHistoryPlaceholder),
		orPlaceholder(in.QuickNotes, NoNotesPlaceholder),
		strings.TrimSpace(in.DreamText),
		contract,
	)
}

// BuildJournalPrompt renders the evening journal instruction. Equal inputs
// always produce byte-identical prompts.
func BuildJournalPrompt(in JournalPromptInput) string {
	contract := fmt.Sprintf(outputContract,
		"A specific, gentle intention for tomorrow",
		"A brief personal explanation connecting this to what they wrote today",
		"One word capturing the overall emotional tone of today's entry",
		strings.Join(MoodVocabulary, ", "),
		"A 2-3 sentence reflection on what stands out from today — connecting their dream, if any, to how their day unfolded. Be specific and warm.",
	)
	return fmt.Sprintf(journalTemplate,
		orPlaceholder(in.TodayDream, NoDreamPlaceholder),
		orPlaceholder(in.QuickNotes, NoNotesPlaceholder),
		orPlaceholder(in.RecentJournals, NoHistoryPlaceholder),
		strings.TrimSpace(in.JournalText),
		contract,
	)
}

func orPlaceholder(s, placeholder string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return placeholder
	}
	return s
}
