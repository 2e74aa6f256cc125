package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nocturne-journal/nocturne/internal/domain"
	"github.com/nocturne-journal/nocturne/internal/repository"
)

// PersistReport records what a best-effort persist managed to write.
type PersistReport struct {
	EntryUpdated bool
	GoalsCreated int
	Errs         []error
}

// Persister writes a parsed result back to the store: the derived fields
// on the source entry and one batch of AI goals. Failures are reported,
// never returned, so the caller can still answer with the result.
type Persister struct {
	entries repository.EntryRepo
	goals   repository.GoalRepo
}

func NewPersister(entries repository.EntryRepo, goals repository.GoalRepo) *Persister {
	return &Persister{entries: entries, goals: goals}
}

// Persist updates entryID (when set) and creates the result's goals for
// today, the server-local date of now.
func (p *Persister) Persist(ctx context.Context, userID, entryID string, result *domain.GenerationResult, now time.Time) PersistReport {
	var report PersistReport

	if entryID != "" {
		err := p.entries.UpdateAIResult(ctx, userID, entryID, result, result.MoodOrDefault(), now)
		if err != nil {
			report.Errs = append(report.Errs, fmt.Errorf("updating entry %s: %w", entryID, err))
		} else {
			report.EntryUpdated = true
		}
	}

	if len(result.Goals) > 0 {
		goals := result.ToGoals(userID, entryID, domain.DateOf(now), now)
		if err := p.goals.CreateBatch(ctx, goals); err != nil {
			report.Errs = append(report.Errs, fmt.Errorf("creating goal batch: %w", err))
		} else {
			report.GoalsCreated = len(goals)
		}
	}

	return report
}
