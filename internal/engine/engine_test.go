package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, threshold int64) *KvStore {
	t.Helper()
	store, err := Open(t.TempDir(), Config{CompactionThreshold: threshold})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSetGetRemove(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, 1<<20)

	require.NoError(t, store.Set(ctx, "a", "1"))

	value, found, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "1", value)

	_, found, err = store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Remove(ctx, "a"))
	_, found, err = store.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, found)

	err = store.Remove(ctx, "a")
	require.Error(t, err)
}

func TestOverwriteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	store, err := Open(root, Config{CompactionThreshold: 1 << 20})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "a", "2"))
	require.NoError(t, store.Close())

	reopened, err := Open(root, Config{CompactionThreshold: 1 << 20})
	require.NoError(t, err)
	defer reopened.Close()

	value, found, err := reopened.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "2", value)
}

func TestCompactionPreservesLiveKeys(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, 256)

	for i := 0; i < 200; i++ {
		key := fmt.Sprintf("key-%d", i%10)
		require.NoError(t, store.Set(ctx, key, fmt.Sprintf("value-%d", i)))
	}

	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("key-%d", i)
		value, found, err := store.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, found)
		require.Contains(t, value, "value-")
	}
}

func TestConcurrentSetGet(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, 1<<20)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			key := fmt.Sprintf("k%d", i)
			for j := 0; j < 20; j++ {
				require.NoError(t, store.Set(ctx, key, fmt.Sprintf("%d", j)))
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	for i := 0; i < 8; i++ {
		key := fmt.Sprintf("k%d", i)
		value, found, err := store.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "19", value)
	}
}
