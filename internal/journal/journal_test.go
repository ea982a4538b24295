package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wizzomafizzo/datasink/internal/testutil"
	"github.com/wizzomafizzo/datasink/internal/transfer"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")

	j, err := Open(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := j.Close(); err != nil {
			t.Logf("Failed to close journal: %v", err)
		}
	})
	return j
}

func TestRecordAndRecent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	j := openTestJournal(t)

	rec := transfer.Record{
		Time:        time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		Source:      "/home/user/docs",
		Destination: "/home/user/backup",
		Operation:   transfer.OpCopy,
		Success:     true,
		Message:     "Successfully copied directory '/home/user/docs' to '/home/user/backup/docs'.",
	}
	require.NoError(t, j.Record(ctx, rec))

	records, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, rec.Source, got.Source)
	assert.Equal(t, rec.Destination, got.Destination)
	assert.Equal(t, transfer.OpCopy, got.Operation)
	assert.True(t, got.Success)
	assert.Equal(t, rec.Message, got.Message)
	assert.True(t, got.Time.Equal(rec.Time), "got %v want %v", got.Time, rec.Time)
}

func TestRecentReturnsNewestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	j := openTestJournal(t)

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, msg := range []string{"first", "second", "third"} {
		require.NoError(t, j.Record(ctx, transfer.Record{
			Time:      base.Add(time.Duration(i) * time.Minute),
			Source:    "/src",
			Operation: transfer.OpMove,
			Message:   msg,
		}))
	}

	records, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "third", records[0].Message)
	assert.Equal(t, "second", records[1].Message)
}

func TestRecordsFailedOutcomes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	j := openTestJournal(t)

	require.NoError(t, j.Record(ctx, transfer.Record{
		Time:      time.Now(),
		Source:    "/no/such/file",
		Operation: transfer.OpCopy,
		Success:   false,
		Message:   "Error: Source path '/no/such/file' does not exist.",
	}))

	records, err := j.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Success)
}

func TestRecentOnEmptyJournal(t *testing.T) {
	t.Parallel()
	j := openTestJournal(t)

	records, err := j.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestJournalClosesCleanly(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	ctx := context.Background()

	j, err := Open(ctx, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, transfer.Record{
		Time: time.Now(), Source: "/a", Operation: transfer.OpCopy,
		Success: true, Message: "done",
	}))
	require.NoError(t, j.Close())
}

func TestOpenPersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "history.db")

	j, err := Open(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, transfer.Record{
		Time: time.Now(), Source: "/a", Operation: transfer.OpCopy,
		Success: true, Message: "done",
	}))
	require.NoError(t, j.Close())

	j, err = Open(ctx, dbPath)
	require.NoError(t, err)
	defer func() { _ = j.Close() }()

	records, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
