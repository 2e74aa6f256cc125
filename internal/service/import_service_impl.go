package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nocturne-journal/nocturne/internal/contract"
	"github.com/nocturne-journal/nocturne/internal/importer"
	"github.com/nocturne-journal/nocturne/internal/repository"
)

// ImportResult summarises a backup import.
type ImportResult struct {
	EntriesCreated int
	GoalsCreated   int
}

type ImportService interface {
	// ImportFile loads a journal backup and writes it for userID.
	ImportFile(ctx context.Context, userID, path string) (*ImportResult, error)
}

type importService struct {
	entries  repository.EntryRepo
	goals    repository.GoalRepo
	clock    Clock
	observer UseCaseObserver
}

func NewImportService(entries repository.EntryRepo, goals repository.GoalRepo, clock Clock, observers ...UseCaseObserver) ImportService {
	return &importService{
		entries:  entries,
		goals:    goals,
		clock:    clockOrDefault(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, userID, path string) (res *ImportResult, err error) {
	if strings.TrimSpace(userID) == "" {
		return nil, &contract.ValidationError{Message: "userId is required"}
	}
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID, "path": path}
	defer observe(ctx, s.observer, "backup.import", startedAt, fields, &err, nil)

	schema, err := importer.LoadImportSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading backup: %w", err)
	}
	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, &contract.ValidationError{Message: errors.Join(errs...).Error()}
	}

	backup := importer.Convert(schema, userID, s.clock())
	res = &ImportResult{}
	for _, e := range backup.Entries {
		if err = s.entries.Create(ctx, e); err != nil {
			return res, fmt.Errorf("importing entry %d of %d: %w", res.EntriesCreated+1, len(backup.Entries), err)
		}
		res.EntriesCreated++
	}
	if len(backup.Goals) > 0 {
		if err = s.goals.CreateBatch(ctx, backup.Goals); err != nil {
			return res, fmt.Errorf("importing goals: %w", err)
		}
		res.GoalsCreated = len(backup.Goals)
	}

	fields["entries"] = res.EntriesCreated
	fields["goals"] = res.GoalsCreated
	return res, nil
}
