package docstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/nocturne-journal/nocturne/internal/domain"
	"github.com/nocturne-journal/nocturne/internal/repository"
)

// GoalRepo implements repository.GoalRepo on users/{uid}/goals. Batch
// writes run in a Firestore transaction.
type GoalRepo struct {
	client *firestore.Client
}

var _ repository.GoalRepo = (*GoalRepo)(nil)

func (r *GoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	ref := r.newRef(g)
	if _, err := ref.Create(ctx, g); err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}
	g.ID = ref.ID
	return nil
}

func (r *GoalRepo) CreateBatch(ctx context.Context, goals []*domain.Goal) error {
	if len(goals) == 0 {
		return nil
	}
	refs := make([]*firestore.DocumentRef, len(goals))
	for i, g := range goals {
		if g.Icon == "" {
			g.Icon = domain.DefaultGoalIcon
		}
		refs[i] = r.newRef(g)
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for i, g := range goals {
			if err := tx.Create(refs[i], g); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("creating goal batch: %w", err)
	}
	for i, g := range goals {
		g.ID = refs[i].ID
	}
	return nil
}

func (r *GoalRepo) DeleteBySource(ctx context.Context, userID, dateString string, source domain.GoalSource) (int, error) {
	query := userCollection(r.client, userID, goalsCollection).
		Where("dateString", "==", dateString).
		Where("source", "==", string(source))

	var deleted int
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		deleted = 0
		snaps, err := tx.Documents(query).GetAll()
		if err != nil {
			return err
		}
		for _, snap := range snaps {
			if err := tx.Delete(snap.Ref); err != nil {
				return err
			}
		}
		deleted = len(snaps)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("deleting %s goals: %w", source, err)
	}
	return deleted, nil
}

func (r *GoalRepo) ListByDate(ctx context.Context, userID, dateString string) ([]*domain.Goal, error) {
	snaps, err := userCollection(r.client, userID, goalsCollection).
		Where("dateString", "==", dateString).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	goals := make([]*domain.Goal, 0, len(snaps))
	for _, snap := range snaps {
		var g domain.Goal
		if err := snap.DataTo(&g); err != nil {
			return nil, fmt.Errorf("decoding goal %s: %w", snap.Ref.ID, err)
		}
		g.ID = snap.Ref.ID
		goals = append(goals, &g)
	}
	return goals, nil
}

func (r *GoalRepo) newRef(g *domain.Goal) *firestore.DocumentRef {
	coll := userCollection(r.client, g.UserID, goalsCollection)
	if g.ID != "" {
		return coll.Doc(g.ID)
	}
	return coll.NewDoc()
}
