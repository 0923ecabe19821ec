package records

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_BestSteps(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)

	_, ok, err := store.BestSteps(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	for _, steps := range []int{42, 17, 30} {
		require.NoError(t, store.RecordCompletion(ctx, 1, steps))
	}
	require.NoError(t, store.RecordCompletion(ctx, 2, 5))

	best, ok, err := store.BestSteps(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 17, best)

	best, ok, err = store.BestSteps(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5, best)
}

func TestStore_RecordCompletionRejectsBadInput(t *testing.T) {
	store := createTestStore(t)

	assert.ErrorIs(t, store.RecordCompletion(context.Background(), 0, 3), ErrInvalidRecord)
	assert.ErrorIs(t, store.RecordCompletion(context.Background(), 1, -1), ErrInvalidRecord)
}

func TestStore_Completions(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)

	for _, steps := range []int{10, 11, 12} {
		require.NoError(t, store.RecordCompletion(ctx, 3, steps))
	}

	recs, err := store.Completions(ctx, 3, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 12, recs[0].Steps)
	assert.Equal(t, 11, recs[1].Steps)
	for _, rec := range recs {
		assert.Equal(t, store.RunID(), rec.RunID)
		assert.Equal(t, 3, rec.Level)
		assert.False(t, rec.CompletedAt.IsZero())
	}
}

func TestStore_RunIDsPersistAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "records.db")

	first, err := NewStore(path)
	require.NoError(t, err)
	_, err = uuid.Parse(first.RunID())
	require.NoError(t, err)
	require.NoError(t, first.RecordCompletion(ctx, 1, 9))
	require.NoError(t, first.Close())

	second, err := NewStore(path)
	require.NoError(t, err)
	defer second.Close()
	assert.NotEqual(t, first.RunID(), second.RunID())

	best, ok, err := second.BestSteps(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 9, best)
}
