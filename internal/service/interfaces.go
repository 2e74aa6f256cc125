package service

import (
	"context"
	"time"

	"github.com/nocturne-journal/nocturne/internal/contract"
	"github.com/nocturne-journal/nocturne/internal/domain"
	"github.com/nocturne-journal/nocturne/internal/llm"
)

// GenerationOutcome is what a dream or journal submission produced. Result
// is returned to the caller even when persistence partly failed.
type GenerationOutcome struct {
	Result       *domain.GenerationResult
	Strategy     llm.Strategy
	DateString   string
	EntryUpdated bool
	GoalsCreated int
	GoalsRemoved int
	PersistErrs  []error
}

type DreamService interface {
	// Generate turns a morning dream into goals, a mood and an insight.
	Generate(ctx context.Context, req contract.DreamRequest) (*GenerationOutcome, error)
}

type JournalService interface {
	// Process reflects on an evening journal entry.
	Process(ctx context.Context, req contract.JournalRequest) (*GenerationOutcome, error)
}

type EntryService interface {
	Create(ctx context.Context, req contract.CreateEntryRequest) (*domain.Entry, error)
	List(ctx context.Context, req contract.ListEntriesRequest) ([]*domain.Entry, error)
}

type GoalService interface {
	AddManual(ctx context.Context, req contract.CreateGoalRequest) (*domain.Goal, error)
	ListByDate(ctx context.Context, userID, dateString string) ([]*domain.Goal, error)
}

// Clock returns the current server time. Tests substitute a fixed clock.
type Clock func() time.Time

func clockOrDefault(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}
