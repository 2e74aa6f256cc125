package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocturne-journal/nocturne/internal/contract"
	"github.com/nocturne-journal/nocturne/internal/repository"
	"github.com/nocturne-journal/nocturne/internal/testutil"
)

func writeBackup(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestImportService_ImportFile(t *testing.T) {
	_, entries, goals := testutil.NewTestRepos(t)
	ctx := context.Background()
	svc := NewImportService(entries, goals, fixedClock)

	path := writeBackup(t, `{
		"entries": [
			{"ref": "d1", "type": "dream", "text": "Glass city", "date_string": "2026-10-18", "mood": "curious"},
			{"type": "journal", "text": "Long day", "date_string": "2026-10-18", "timestamp": "2026-10-18T21:00:00Z"}
		],
		"goals": [
			{"text": "Walk", "icon": "🚶", "source": "ai", "entry_ref": "d1", "date_string": "2026-10-18"},
			{"text": "Stretch", "date_string": "2026-10-18", "completed": true}
		]
	}`)

	res, err := svc.ImportFile(ctx, "u1", path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.EntriesCreated)
	assert.Equal(t, 2, res.GoalsCreated)

	stored, err := entries.Query(ctx, repository.EntryQuery{UserID: "u1", DateString: "2026-10-18"})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Glass city", stored[0].Text)

	listed, err := goals.ListByDate(ctx, "u1", "2026-10-18")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.NotNil(t, listed[0].SourceEntryID)
	assert.Equal(t, stored[0].ID, *listed[0].SourceEntryID)
	assert.True(t, listed[1].Completed)
}

func TestImportService_InvalidFileWritesNothing(t *testing.T) {
	_, entries, goals := testutil.NewTestRepos(t)
	ctx := context.Background()
	svc := NewImportService(entries, goals, fixedClock)

	path := writeBackup(t, `{"entries":[{"type":"note","text":"ok","date_string":"2026-10-18"},{"type":"memo","text":"x","date_string":"2026-10-18"}]}`)
	_, err := svc.ImportFile(ctx, "u1", path)
	var verr *contract.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, `entries[1].type`)

	stored, err := entries.Query(ctx, repository.EntryQuery{UserID: "u1"})
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestImportService_MissingFile(t *testing.T) {
	_, entries, goals := testutil.NewTestRepos(t)
	svc := NewImportService(entries, goals, fixedClock)
	_, err := svc.ImportFile(context.Background(), "u1", filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
