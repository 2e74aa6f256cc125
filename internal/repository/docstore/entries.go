package docstore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/nocturne-journal/nocturne/internal/domain"
	"github.com/nocturne-journal/nocturne/internal/repository"
)

// EntryRepo implements repository.EntryRepo on users/{uid}/entries.
type EntryRepo struct {
	client *firestore.Client
}

var _ repository.EntryRepo = (*EntryRepo)(nil)

func (r *EntryRepo) Create(ctx context.Context, e *domain.Entry) error {
	coll := userCollection(r.client, e.UserID, entriesCollection)
	ref := coll.NewDoc()
	if e.ID != "" {
		ref = coll.Doc(e.ID)
	}
	if _, err := ref.Create(ctx, e); err != nil {
		return fmt.Errorf("creating entry: %w", err)
	}
	e.ID = ref.ID
	return nil
}

func (r *EntryRepo) GetByID(ctx context.Context, userID, id string) (*domain.Entry, error) {
	snap, err := userCollection(r.client, userID, entriesCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr(err, "entry "+id)
	}
	return entryFromSnapshot(snap)
}

func (r *EntryRepo) Query(ctx context.Context, q repository.EntryQuery) ([]*domain.Entry, error) {
	if q.UserID == "" {
		return nil, fmt.Errorf("querying entries: user id is required")
	}

	query := userCollection(r.client, q.UserID, entriesCollection).Query
	if q.Type != "" {
		query = query.Where("type", "==", string(q.Type))
	}
	if q.DateString != "" {
		query = query.Where("dateString", "==", q.DateString)
	}
	if q.BeforeDate != "" {
		query = query.Where("dateString", "<", q.BeforeDate)
	}

	switch q.Order {
	case repository.OrderTimestampDesc:
		query = query.OrderBy("timestamp", firestore.Desc)
	case repository.OrderDateDesc:
		query = query.OrderBy("dateString", firestore.Desc).OrderBy("timestamp", firestore.Desc)
	default:
		query = query.OrderBy("timestamp", firestore.Asc)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	entries := make([]*domain.Entry, 0, len(snaps))
	for _, snap := range snaps {
		e, err := entryFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// UpdateAIResult touches only the derived fields; Update fails with
// NotFound when the document does not exist.
func (r *EntryRepo) UpdateAIResult(ctx context.Context, userID, id string, result *domain.GenerationResult, mood string, processedAt time.Time) error {
	ref := userCollection(r.client, userID, entriesCollection).Doc(id)
	_, err := ref.Update(ctx, []firestore.Update{
		{Path: "aiResult", Value: result},
		{Path: "mood", Value: mood},
		{Path: "aiProcessedAt", Value: processedAt},
	})
	return mapErr(err, "entry "+id)
}

func entryFromSnapshot(snap *firestore.DocumentSnapshot) (*domain.Entry, error) {
	var e domain.Entry
	if err := snap.DataTo(&e); err != nil {
		return nil, fmt.Errorf("decoding entry %s: %w", snap.Ref.ID, err)
	}
	e.ID = snap.Ref.ID
	return &e, nil
}
