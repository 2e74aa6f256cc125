package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/nocturne-journal/nocturne/internal/db"
	"github.com/nocturne-journal/nocturne/internal/domain"
)

// SQLiteGoalRepo implements GoalRepo using a SQLite database. Batch writes
// go through the UnitOfWork so they commit all-or-nothing.
type SQLiteGoalRepo struct {
	db  db.DBTX
	uow db.UnitOfWork
}

// NewSQLiteGoalRepo creates a new SQLiteGoalRepo.
func NewSQLiteGoalRepo(conn db.DBTX, uow db.UnitOfWork) *SQLiteGoalRepo {
	return &SQLiteGoalRepo{db: conn, uow: uow}
}

const goalColumns = `id, user_id, text, icon, why, source, source_entry_id, completed, date_string, created_at`

func (r *SQLiteGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	return insertGoal(ctx, r.db, g)
}

func (r *SQLiteGoalRepo) CreateBatch(ctx context.Context, goals []*domain.Goal) error {
	if len(goals) == 0 {
		return nil
	}
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		for _, g := range goals {
			if err := insertGoal(ctx, tx, g); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteGoalRepo) DeleteBySource(ctx context.Context, userID, dateString string, source domain.GoalSource) (int, error) {
	var removed int64
	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM goals WHERE user_id = ? AND date_string = ? AND source = ?`,
			userID, dateString, string(source))
		if err != nil {
			return fmt.Errorf("deleting goals: %w", err)
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return int(removed), nil
}

func (r *SQLiteGoalRepo) ListByDate(ctx context.Context, userID, dateString string) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = ? AND date_string = ? ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, userID, dateString)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func insertGoal(ctx context.Context, conn db.DBTX, g *domain.Goal) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.Icon == "" {
		g.Icon = domain.DefaultGoalIcon
	}
	query := `INSERT INTO goals (` + goalColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := conn.ExecContext(ctx, query,
		g.ID,
		g.UserID,
		g.Text,
		g.Icon,
		g.Why,
		string(g.Source),
		nullableString(g.SourceEntryID),
		boolToInt(g.Completed),
		g.DateString,
		formatTimestamp(g.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

func scanGoal(s rowScanner) (*domain.Goal, error) {
	var g domain.Goal
	var source, createdAt string
	var sourceEntryID sql.NullString
	var completed int

	if err := s.Scan(&g.ID, &g.UserID, &g.Text, &g.Icon, &g.Why, &source, &sourceEntryID, &completed, &g.DateString, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning goal: %w", err)
	}
	g.Source = domain.GoalSource(source)
	g.SourceEntryID = stringPtr(sourceEntryID)
	g.Completed = intToBool(completed)
	t, err := parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing goal created_at %q: %w", createdAt, err)
	}
	g.CreatedAt = t
	return &g, nil
}
