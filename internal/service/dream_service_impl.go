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

type dreamService struct {
	goals     repository.GoalRepo
	gatherer  *ContextGatherer
	persister *Persister
	client    llm.LLMClient
	clock     Clock
	observer  UseCaseObserver
}

func NewDreamService(
	entries repository.EntryRepo,
	goals repository.GoalRepo,
	client llm.LLMClient,
	clock Clock,
	observers ...UseCaseObserver,
) DreamService {
	return &dreamService{
		goals:     goals,
		gatherer:  NewContextGatherer(entries),
		persister: NewPersister(entries, goals),
		client:    client,
		clock:     clockOrDefault(clock),
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *dreamService) Generate(ctx context.Context, req contract.DreamRequest) (out *GenerationOutcome, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.clock()
	if req.Now != nil {
		now = *req.Now
	}
	today := domain.DateOf(now)

	startedAt := time.Now()
	fields := map[string]any{
		"user_id":       req.UserID,
		"date":          today,
		"refresh_goals": req.RefreshGoals,
	}
	var warnings []error
	defer observe(ctx, s.observer, "dream.generate", startedAt, fields, &err, &warnings)

	removed := 0
	if req.RefreshGoals {
		removed, err = s.goals.DeleteBySource(ctx, req.UserID, today, domain.GoalSourceAI)
		if err != nil {
			return nil, fmt.Errorf("clearing today's ai goals: %w", err)
		}
		fields["goals_removed"] = removed
	}

	dc, err := s.gatherer.Dream(ctx, req.UserID, today, req.QuickNotes)
	if err != nil {
		return nil, err
	}
	fields["history_count"] = dc.HistoryCount

	prompt := intelligence.BuildDreamPrompt(intelligence.DreamPromptInput{
		DreamText:      req.DreamText,
		JournalHistory: dc.JournalHistory,
		QuickNotes:     dc.QuickNotes,
	})

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:       llm.TaskDream,
		UserPrompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("generating dream goals: %w", err)
	}

	result, strategy, err := intelligence.ParseResult(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("parsing dream result: %w", err)
	}
	fields["parse_strategy"] = string(strategy)

	report := s.persister.Persist(ctx, req.UserID, req.EntryID, result, now)
	warnings = report.Errs
	fields["goals_created"] = report.GoalsCreated

	return &GenerationOutcome{
		Result:       result,
		Strategy:     strategy,
		DateString:   today,
		EntryUpdated: report.EntryUpdated,
		GoalsCreated: report.GoalsCreated,
		GoalsRemoved: removed,
		PersistErrs:  report.Errs,
	}, nil
}
