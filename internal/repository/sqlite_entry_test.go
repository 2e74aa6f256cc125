package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/nocturne-journal/nocturne/internal/domain"
	"github.com/nocturne-journal/nocturne/internal/repository"
	"github.com/nocturne-journal/nocturne/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryRepo_CreateAndGetByID(t *testing.T) {
	_, entries, _ := testutil.NewTestRepos(t)
	ctx := context.Background()

	e := testutil.NewTestEntry("u1", domain.EntryDream, "I was flying", testutil.WithDate("2026-10-19"))
	require.NoError(t, entries.Create(ctx, e))

	got, err := entries.GetByID(ctx, "u1", e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, domain.EntryDream, got.Type)
	assert.Equal(t, "I was flying", got.Text)
	assert.Equal(t, "2026-10-19", got.DateString)
	assert.True(t, e.Timestamp.Equal(got.Timestamp))
	assert.Nil(t, got.AIResult)
	assert.Nil(t, got.AIProcessedAt)
}

func TestEntryRepo_Create_AssignsID(t *testing.T) {
	_, entries, _ := testutil.NewTestRepos(t)
	e := testutil.NewTestEntry("u1", domain.EntryNote, "buy milk", testutil.WithEntryID(""))
	require.NoError(t, entries.Create(context.Background(), e))
	assert.NotEmpty(t, e.ID)
}

func TestEntryRepo_GetByID_ScopedByUser(t *testing.T) {
	_, entries, _ := testutil.NewTestRepos(t)
	ctx := context.Background()

	e := testutil.NewTestEntry("u1", domain.EntryJournal, "private")
	require.NoError(t, entries.Create(ctx, e))

	_, err := entries.GetByID(ctx, "u2", e.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEntryRepo_Query_RecentJournalsDesc(t *testing.T) {
	_, entries, _ := testutil.NewTestRepos(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 21, 0, 0, 0, time.UTC)

	for i := 0; i < 9; i++ {
		ts := base.AddDate(0, 0, i)
		e := testutil.NewTestEntry("u1", domain.EntryJournal, "day", testutil.WithTimestamp(ts), testutil.WithDate(domain.DateOf(ts)))
		require.NoError(t, entries.Create(ctx, e))
	}
	require.NoError(t, entries.Create(ctx, testutil.NewTestEntry("u1", domain.EntryDream, "dream")))
	require.NoError(t, entries.Create(ctx, testutil.NewTestEntry("u2", domain.EntryJournal, "other user")))

	got, err := entries.Query(ctx, repository.EntryQuery{
		UserID: "u1",
		Type:   domain.EntryJournal,
		Order:  repository.OrderTimestampDesc,
		Limit:  7,
	})
	require.NoError(t, err)
	require.Len(t, got, 7)
	assert.Equal(t, "2026-10-09", got[0].DateString)
	assert.Equal(t, "2026-10-03", got[6].DateString)
	for _, e := range got {
		assert.Equal(t, "u1", e.UserID)
		assert.Equal(t, domain.EntryJournal, e.Type)
	}
}

func TestEntryRepo_Query_BeforeDate(t *testing.T) {
	_, entries, _ := testutil.NewTestRepos(t)
	ctx := context.Background()

	for _, d := range []string{"2026-10-15", "2026-10-16", "2026-10-17", "2026-10-18", "2026-10-19"} {
		require.NoError(t, entries.Create(ctx, testutil.NewTestEntry("u1", domain.EntryJournal, d, testutil.WithDate(d))))
	}

	got, err := entries.Query(ctx, repository.EntryQuery{
		UserID:     "u1",
		Type:       domain.EntryJournal,
		BeforeDate: "2026-10-19",
		Order:      repository.OrderDateDesc,
		Limit:      3,
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"2026-10-18", "2026-10-17", "2026-10-16"},
		[]string{got[0].DateString, got[1].DateString, got[2].DateString})
}

func TestEntryRepo_Query_RequiresUser(t *testing.T) {
	_, entries, _ := testutil.NewTestRepos(t)
	_, err := entries.Query(context.Background(), repository.EntryQuery{Type: domain.EntryJournal})
	assert.Error(t, err)
}

func TestEntryRepo_UpdateAIResult(t *testing.T) {
	_, entries, _ := testutil.NewTestRepos(t)
	ctx := context.Background()

	e := testutil.NewTestEntry("u1", domain.EntryDream, "glass city")
	require.NoError(t, entries.Create(ctx, e))

	result := testutil.NewTestResult("curious")
	processed := time.Date(2026, 10, 19, 7, 30, 0, 0, time.UTC)
	require.NoError(t, entries.UpdateAIResult(ctx, "u1", e.ID, result, "curious", processed))

	got, err := entries.GetByID(ctx, "u1", e.ID)
	require.NoError(t, err)
	assert.Equal(t, "curious", got.Mood)
	require.NotNil(t, got.AIResult)
	assert.Equal(t, *result, *got.AIResult)
	require.NotNil(t, got.AIProcessedAt)
	assert.True(t, processed.Equal(*got.AIProcessedAt))
	assert.Equal(t, domain.EntryDream, got.Type)
}

func TestEntryRepo_UpdateAIResult_NotFound(t *testing.T) {
	_, entries, _ := testutil.NewTestRepos(t)
	err := entries.UpdateAIResult(context.Background(), "u1", "missing", testutil.NewTestResult("calm"), "calm", time.Now())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
