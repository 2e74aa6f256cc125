package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nocturne-journal/nocturne/internal/contract"
	"github.com/nocturne-journal/nocturne/internal/domain"
	"github.com/nocturne-journal/nocturne/internal/intelligence"
	"github.com/nocturne-journal/nocturne/internal/llm"
	"github.com/nocturne-journal/nocturne/internal/repository"
)

type journalService struct {
	gatherer  *ContextGatherer
	persister *Persister
	client    llm.LLMClient
	clock     Clock
	observer  UseCaseObserver
}

func NewJournalService(
	entries repository.EntryRepo,
	goals repository.GoalRepo,
	client llm.LLMClient,
	clock Clock,
	observers ...UseCaseObserver,
) JournalService {
	return &journalService{
		gatherer:  NewContextGatherer(entries),
		persister: NewPersister(entries, goals),
		client:    client,
		clock:     clockOrDefault(clock),
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *journalService) Process(ctx context.Context, req contract.JournalRequest) (out *GenerationOutcome, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.clock()
	if req.Now != nil {
		now = *req.Now
	}
	dateString := req.DateString
	if dateString == "" {
		dateString = domain.DateOf(now)
	}

	startedAt := time.Now()
	fields := map[string]any{
		"user_id": req.UserID,
		"date":    dateString,
	}
	var warnings []error
	defer observe(ctx, s.observer, "journal.process", startedAt, fields, &err, &warnings)

	jc, err := s.gatherer.Journal(ctx, req.UserID, dateString)
	if err != nil {
		return nil, err
	}
	fields["history_count"] = jc.HistoryCount
	fields["has_dream"] = jc.TodayDream != ""

	prompt := intelligence.BuildJournalPrompt(intelligence.JournalPromptInput{
		JournalText:    req.JournalText,
		TodayDream:     jc.TodayDream,
		RecentJournals: jc.RecentJournals,
		QuickNotes:     jc.QuickNotes,
	})

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:       llm.TaskJournal,
		UserPrompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("generating journal reflection: %w", err)
	}

	result, strategy, err := intelligence.ParseResult(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("parsing journal result: %w", err)
	}
	fields["parse_strategy"] = string(strategy)

	// Goals land on today's list even when the journal is for an earlier date.
	report := s.persister.Persist(ctx, req.UserID, req.EntryID, result, now)
	warnings = report.Errs
	fields["goals_created"] = report.GoalsCreated

	return &GenerationOutcome{
		Result:       result,
		Strategy:     strategy,
		DateString:   dateString,
		EntryUpdated: report.EntryUpdated,
		GoalsCreated: report.GoalsCreated,
		PersistErrs:  report.Errs,
	}, nil
}
