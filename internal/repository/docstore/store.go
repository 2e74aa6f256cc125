// Package docstore implements the entry and goal repositories on Cloud
// Firestore, using the per-user layout users/{uid}/entries and
// users/{uid}/goals.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nocturne-journal/nocturne/internal/repository"
)

const (
	usersCollection   = "users"
	entriesCollection = "entries"
	goalsCollection   = "goals"
)

// Store owns the Firestore client shared by both repositories.
type Store struct {
	client *firestore.Client
}

// Open connects to projectID. When FIRESTORE_EMULATOR_HOST is set the
// client talks to the emulator instead.
func Open(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("opening firestore: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Entries() *EntryRepo {
	return &EntryRepo{client: s.client}
}

func (s *Store) Goals() *GoalRepo {
	return &GoalRepo{client: s.client}
}

// PingContext reads at most one user document to prove the backend answers.
func (s *Store) PingContext(ctx context.Context) error {
	it := s.client.Collection(usersCollection).Limit(1).Documents(ctx)
	defer it.Stop()
	_, err := it.Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("pinging firestore: %w", err)
	}
	return nil
}

func userCollection(client *firestore.Client, userID, name string) *firestore.CollectionRef {
	return client.Collection(usersCollection).Doc(userID).Collection(name)
}

// mapErr converts a gRPC NotFound into repository.ErrNotFound.
func mapErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s: %w", what, repository.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}
