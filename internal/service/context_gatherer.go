package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nocturne-journal/nocturne/internal/domain"
	"github.com/nocturne-journal/nocturne/internal/repository"
)

const (
	// DreamHistoryLimit is how many recent journals a dream prompt sees.
	DreamHistoryLimit = 7
	// JournalHistoryLimit is how many earlier journals a journal prompt sees.
	JournalHistoryLimit = 3

	historySeparator = "\n\n---\n\n"
	unspecifiedMood  = "unspecified"
)

// DreamContext is the rendered context for a dream prompt. Empty strings
// mean nothing was found.
type DreamContext struct {
	JournalHistory string
	QuickNotes     string
	HistoryCount   int
	NoteCount      int
}

// JournalContext is the rendered context for a journal prompt.
type JournalContext struct {
	TodayDream     string
	RecentJournals string
	QuickNotes     string
	HistoryCount   int
	NoteCount      int
}

// ContextGatherer reads a user's recent entries for prompt context. Every
// query is scoped to one user.
type ContextGatherer struct {
	entries repository.EntryRepo
}

func NewContextGatherer(entries repository.EntryRepo) *ContextGatherer {
	return &ContextGatherer{entries: entries}
}

// Dream loads the most recent journals and, unless inlineNotes is set,
// the notes recorded on dateString.
func (g *ContextGatherer) Dream(ctx context.Context, userID, dateString, inlineNotes string) (*DreamContext, error) {
	journals, err := g.entries.Query(ctx, repository.EntryQuery{
		UserID: userID,
		Type:   domain.EntryJournal,
		Order:  repository.OrderTimestampDesc,
		Limit:  DreamHistoryLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("loading journal history: %w", err)
	}

	dc := &DreamContext{
		JournalHistory: formatHistory(journals, true),
		HistoryCount:   len(journals),
	}

	if strings.TrimSpace(inlineNotes) != "" {
		dc.QuickNotes = inlineNotes
		return dc, nil
	}
	notes, err := g.notesFor(ctx, userID, dateString)
	if err != nil {
		return nil, err
	}
	dc.QuickNotes = formatNotes(notes)
	dc.NoteCount = len(notes)
	return dc, nil
}

// Journal loads the morning dream for dateString, the journals written
// before it and the day's notes.
func (g *ContextGatherer) Journal(ctx context.Context, userID, dateString string) (*JournalContext, error) {
	dreams, err := g.entries.Query(ctx, repository.EntryQuery{
		UserID:     userID,
		Type:       domain.EntryDream,
		DateString: dateString,
		Order:      repository.OrderTimestampAsc,
		Limit:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("loading today's dream: %w", err)
	}

	journals, err := g.entries.Query(ctx, repository.EntryQuery{
		UserID:     userID,
		Type:       domain.EntryJournal,
		BeforeDate: dateString,
		Order:      repository.OrderDateDesc,
		Limit:      JournalHistoryLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("loading recent journals: %w", err)
	}

	notes, err := g.notesFor(ctx, userID, dateString)
	if err != nil {
		return nil, err
	}

	jc := &JournalContext{
		RecentJournals: formatHistory(journals, false),
		QuickNotes:     formatNotes(notes),
		HistoryCount:   len(journals),
		NoteCount:      len(notes),
	}
	if len(dreams) > 0 {
		jc.TodayDream = dreams[0].Text
	}
	return jc, nil
}

func (g *ContextGatherer) notesFor(ctx context.Context, userID, dateString string) ([]*domain.Entry, error) {
	notes, err := g.entries.Query(ctx, repository.EntryQuery{
		UserID:     userID,
		Type:       domain.EntryNote,
		DateString: dateString,
		Order:      repository.OrderTimestampAsc,
	})
	if err != nil {
		return nil, fmt.Errorf("loading quick notes: %w", err)
	}
	return notes, nil
}

func formatHistory(entries []*domain.Entry, withMood bool) string {
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		block := fmt.Sprintf("Date: %s\nEntry: %s", e.DateString, e.Text)
		if withMood {
			block += "\nMood: " + e.MoodOr(unspecifiedMood)
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, historySeparator)
}

func formatNotes(notes []*domain.Entry) string {
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		lines = append(lines, "- "+n.Text)
	}
	return strings.Join(lines, "\n")
}
