package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nocturne-journal/nocturne/internal/contract"
	"github.com/nocturne-journal/nocturne/internal/domain"
	"github.com/nocturne-journal/nocturne/internal/repository"
)

type entryService struct {
	entries  repository.EntryRepo
	clock    Clock
	observer UseCaseObserver
}

func NewEntryService(entries repository.EntryRepo, clock Clock, observers ...UseCaseObserver) EntryService {
	return &entryService{
		entries:  entries,
		clock:    clockOrDefault(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *entryService) Create(ctx context.Context, req contract.CreateEntryRequest) (e *domain.Entry, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	startedAt := time.Now()
	fields := map[string]any{"user_id": req.UserID, "type": req.Type}
	defer observe(ctx, s.observer, "entry.create", startedAt, fields, &err, nil)

	now := s.clock()
	e = &domain.Entry{
		UserID:     req.UserID,
		Type:       domain.EntryType(req.Type),
		Text:       strings.TrimSpace(req.Text),
		DateString: req.DateString,
		Timestamp:  now,
	}
	if e.DateString == "" {
		e.DateString = domain.DateOf(now)
	}
	if err = s.entries.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("creating entry: %w", err)
	}
	fields["entry_id"] = e.ID
	return e, nil
}

func (s *entryService) List(ctx context.Context, req contract.ListEntriesRequest) ([]*domain.Entry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	entries, err := s.entries.Query(ctx, repository.EntryQuery{
		UserID:     req.UserID,
		Type:       domain.EntryType(req.Type),
		DateString: req.DateString,
		Order:      repository.OrderTimestampDesc,
		Limit:      req.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}

type goalService struct {
	goals repository.GoalRepo
	clock Clock
}

func NewGoalService(goals repository.GoalRepo, clock Clock) GoalService {
	return &goalService{goals: goals, clock: clockOrDefault(clock)}
}

func (s *goalService) AddManual(ctx context.Context, req contract.CreateGoalRequest) (*domain.Goal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	now := s.clock()
	g := &domain.Goal{
		UserID:     req.UserID,
		Text:       strings.TrimSpace(req.Text),
		Icon:       req.Icon,
		Why:        req.Why,
		Source:     domain.GoalSourceManual,
		DateString: req.DateString,
		CreatedAt:  now,
	}
	if g.Icon == "" {
		g.Icon = domain.DefaultGoalIcon
	}
	if g.DateString == "" {
		g.DateString = domain.DateOf(now)
	}
	if err := s.goals.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("creating goal: %w", err)
	}
	return g, nil
}

func (s *goalService) ListByDate(ctx context.Context, userID, dateString string) ([]*domain.Goal, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, &contract.ValidationError{Message: "userId is required"}
	}
	if dateString == "" {
		dateString = domain.DateOf(s.clock())
	} else if !domain.ValidDateString(dateString) {
		return nil, &contract.ValidationError{Message: "dateString must be YYYY-MM-DD"}
	}
	goals, err := s.goals.ListByDate(ctx, userID, dateString)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	return goals, nil
}
