package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nocturne-journal/nocturne/internal/db"
	"github.com/nocturne-journal/nocturne/internal/domain"
)

// SQLiteEntryRepo implements EntryRepo using a SQLite database.
type SQLiteEntryRepo struct {
	db db.DBTX
}

// NewSQLiteEntryRepo creates a new SQLiteEntryRepo.
func NewSQLiteEntryRepo(conn db.DBTX) *SQLiteEntryRepo {
	return &SQLiteEntryRepo{db: conn}
}

const entryColumns = `id, user_id, type, text, date_string, timestamp, mood, ai_result, ai_processed_at`

func (r *SQLiteEntryRepo) Create(ctx context.Context, e *domain.Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	aiResult, err := marshalResult(e.AIResult)
	if err != nil {
		return err
	}

	query := `INSERT INTO entries (` + entryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		string(e.Type),
		e.Text,
		e.DateString,
		formatTimestamp(e.Timestamp),
		e.Mood,
		aiResult,
		nullableTimestamp(e.AIProcessedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) GetByID(ctx context.Context, userID, id string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE user_id = ? AND id = ?`
	row := r.db.QueryRowContext(ctx, query, userID, id)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning entry: %w", err)
	}
	return e, nil
}

func (r *SQLiteEntryRepo) Query(ctx context.Context, q EntryQuery) ([]*domain.Entry, error) {
	if q.UserID == "" {
		return nil, fmt.Errorf("querying entries: user id is required")
	}

	conds := []string{"user_id = ?"}
	args := []any{q.UserID}
	if q.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, string(q.Type))
	}
	if q.DateString != "" {
		conds = append(conds, "date_string = ?")
		args = append(args, q.DateString)
	}
	if q.BeforeDate != "" {
		conds = append(conds, "date_string < ?")
		args = append(args, q.BeforeDate)
	}

	var order string
	switch q.Order {
	case OrderTimestampDesc:
		order = "timestamp DESC, id DESC"
	case OrderDateDesc:
		order = "date_string DESC, timestamp DESC"
	default:
		order = "timestamp ASC, id ASC"
	}

	query := `SELECT ` + entryColumns + ` FROM entries WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY ` + order
	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SQLiteEntryRepo) UpdateAIResult(ctx context.Context, userID, id string, result *domain.GenerationResult, mood string, processedAt time.Time) error {
	aiResult, err := marshalResult(result)
	if err != nil {
		return err
	}
	query := `UPDATE entries SET ai_result = ?, mood = ?, ai_processed_at = ? WHERE user_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query, aiResult, mood, formatTimestamp(processedAt), userID, id)
	if err != nil {
		return fmt.Errorf("updating entry ai result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating entry ai result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(s rowScanner) (*domain.Entry, error) {
	var e domain.Entry
	var entryType, ts string
	var aiResult, processedAt sql.NullString

	if err := s.Scan(&e.ID, &e.UserID, &entryType, &e.Text, &e.DateString, &ts, &e.Mood, &aiResult, &processedAt); err != nil {
		return nil, err
	}

	e.Type = domain.EntryType(entryType)
	t, err := parseTimestamp(ts)
	if err != nil {
		return nil, fmt.Errorf("parsing entry timestamp %q: %w", ts, err)
	}
	e.Timestamp = t
	e.AIProcessedAt = parseNullableTimestamp(processedAt)

	if aiResult.Valid && aiResult.String != "" {
		var r domain.GenerationResult
		if err := json.Unmarshal([]byte(aiResult.String), &r); err != nil {
			return nil, fmt.Errorf("decoding entry ai result: %w", err)
		}
		e.AIResult = &r
	}
	return &e, nil
}

func marshalResult(r *domain.GenerationResult) (interface{}, error) {
	if r == nil {
		return nil, nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding ai result: %w", err)
	}
	return string(data), nil
}

func nullableTimestamp(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTimestamp(*t)
}
