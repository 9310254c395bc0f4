// internal/store/samplestore/sqlite_test.go
package samplestore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLatest_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, 100, time.Unix(1000, 0)))
	require.NoError(t, s.Insert(ctx, 110, time.Unix(2000, 0)))
	require.NoError(t, s.Insert(ctx, 120, time.Unix(3000, 0)))

	got, err := s.Latest(ctx, 10, time.Unix(0, 0))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, 120.0, got[0].Value)
	assert.Equal(t, 3000.0, got[0].Timestamp)
	assert.Equal(t, 110.0, got[1].Value)
	assert.Equal(t, 100.0, got[2].Value)
}

func TestLatest_RespectsLimitAndWindow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, s.Insert(ctx, float64(i), time.Unix(int64(i*1000), 0)))
	}

	got, err := s.Latest(ctx, 2, time.Unix(0, 0))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 5.0, got[0].Value)
	assert.Equal(t, 4.0, got[1].Value)

	// Window cuts off the oldest samples regardless of limit.
	got, err = s.Latest(ctx, 10, time.Unix(3000, 0))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 3.0, got[2].Value)
}

func TestLatest_EmptyStore(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Latest(context.Background(), 10, time.Unix(0, 0))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, 1, time.Unix(1000, 0)))
	require.NoError(t, s.Insert(ctx, 2, time.Unix(2000, 0)))
	require.NoError(t, s.Insert(ctx, 3, time.Unix(3000, 0)))

	n, err := s.Prune(ctx, time.Unix(2500, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := s.Latest(ctx, 10, time.Unix(0, 0))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3.0, got[0].Value)
}
