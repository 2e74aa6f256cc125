package repository

import (
	"context"
	"errors"
	"time"

	"github.com/nocturne-journal/nocturne/internal/domain"
)

// ErrNotFound is returned when a document lookup or update matches nothing.
var ErrNotFound = errors.New("not found")

// EntryOrder selects the sort applied to an entry query.
type EntryOrder int

const (
	// OrderTimestampAsc returns entries in creation order.
	OrderTimestampAsc EntryOrder = iota
	OrderTimestampDesc
	OrderDateDesc
)

// EntryQuery is a filtered, ordered, limited lookup over one user's entries.
// Empty fields do not filter. Limit <= 0 means no limit.
type EntryQuery struct {
	UserID     string
	Type       domain.EntryType
	DateString string // dateString == value
	BeforeDate string // dateString < value
	Order      EntryOrder
	Limit      int
}

type EntryRepo interface {
	Create(ctx context.Context, e *domain.Entry) error
	GetByID(ctx context.Context, userID, id string) (*domain.Entry, error)
	Query(ctx context.Context, q EntryQuery) ([]*domain.Entry, error)
	// UpdateAIResult is a single-document update of the derived fields.
	UpdateAIResult(ctx context.Context, userID, id string, result *domain.GenerationResult, mood string, processedAt time.Time) error
}

type GoalRepo interface {
	Create(ctx context.Context, g *domain.Goal) error
	// CreateBatch writes all goals atomically: either every goal is
	// visible afterwards or none is.
	CreateBatch(ctx context.Context, goals []*domain.Goal) error
	// DeleteBySource removes, in one atomic batch, every goal of userID on
	// dateString with the given source. It returns the number removed.
	DeleteBySource(ctx context.Context, userID, dateString string, source domain.GoalSource) (int, error)
	ListByDate(ctx context.Context, userID, dateString string) ([]*domain.Goal, error)
}

// Pinger reports whether the backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}
