package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "optionfield/internal/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAssignsIDAndTimestamp(t *testing.T) {
	s := openTestStore(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	ev, err := s.Record(context.Background(), Event{Field: "database_name", Value: "prod"})
	require.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	assert.True(t, ev.CreatedAt.Equal(fixed))

	other, err := s.Record(context.Background(), Event{Field: "database_name", Value: "staging"})
	require.NoError(t, err)
	assert.NotEqual(t, ev.ID, other.ID)
}

func TestRecentExcludesSilentClears(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	events := []Event{
		{Field: "db", Value: "prod", CreatedAt: base},
		{Field: "db", Value: "", Silent: true, CreatedAt: base.Add(time.Minute)},
		{Field: "db", Value: "Multiply", Custom: true, CreatedAt: base.Add(2 * time.Minute)},
		{Field: "region", Value: "eu-west1", CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, ev := range events {
		_, err := s.Record(ctx, ev)
		require.NoError(t, err)
	}

	recent, err := s.Recent(ctx, "db", 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Multiply", recent[0].Value)
	assert.True(t, recent[0].Custom)
	assert.Equal(t, "prod", recent[1].Value)
	for _, ev := range recent {
		assert.False(t, ev.Silent)
	}

	limited, err := s.Recent(ctx, "db", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "Multiply", limited[0].Value)

	n, err := s.Count(ctx, "db", false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.Count(ctx, "db", true)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRecentOrdersWithinOneSecond(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 5, 0, time.UTC)

	for _, ev := range []Event{
		{Field: "db", Value: "older", CreatedAt: base},
		{Field: "db", Value: "newer", CreatedAt: base.Add(500 * time.Millisecond)},
		{Field: "db", Value: "newest", CreatedAt: base.Add(520 * time.Millisecond)},
	} {
		_, err := s.Record(ctx, ev)
		require.NoError(t, err)
	}

	recent, err := s.Recent(ctx, "db", 0)
	require.NoError(t, err)
	values := make([]string, 0, len(recent))
	for _, ev := range recent {
		values = append(values, ev.Value)
	}
	assert.Equal(t, []string{"newest", "newer", "older"}, values)
	assert.True(t, recent[0].CreatedAt.Equal(base.Add(520*time.Millisecond)))
	assert.True(t, recent[2].CreatedAt.Equal(base))
}

func TestRecentUnknownFieldIsEmpty(t *testing.T) {
	s := openTestStore(t)
	recent, err := s.Recent(context.Background(), "missing", 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestReopenKeepsSelections(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = s.Record(ctx, Event{Field: "db", Value: "prod"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Count(ctx, "db", true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Record(ctx, Event{Field: "db", Value: "prod"})
	require.NoError(t, err)
	n, err := s.Count(ctx, "db", false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStoreErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, "  ")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeStorageFailed))

	s := openTestStore(t)
	_, err = s.Record(ctx, Event{Value: "prod"})
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeStorageFailed))

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.Record(ctx, Event{Field: "db", Value: "prod"})
	assert.True(t, appErrors.IsCode(err, appErrors.CodeStorageFailed))
	_, err = s.Recent(ctx, "db", 1)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeStorageFailed))
	_, err = s.Count(ctx, "db", true)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeStorageFailed))
}
