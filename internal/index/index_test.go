package index

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ignitekv/kvs/internal/record"
	"github.com/ignitekv/kvs/internal/segment"
)

func TestPutGetDelete(t *testing.T) {
	idx := New()

	_, ok := idx.Get("a")
	require.False(t, ok)

	displaced, had := idx.Put("a", Locator{Gen: 0, Offset: 0, Length: 10})
	require.False(t, had)
	require.Zero(t, displaced)

	loc, ok := idx.Get("a")
	require.True(t, ok)
	require.Equal(t, Locator{Gen: 0, Offset: 0, Length: 10}, loc)

	displaced, had = idx.Put("a", Locator{Gen: 1, Offset: 5, Length: 20})
	require.True(t, had)
	require.Equal(t, int64(10), displaced)

	displaced, had = idx.Delete("a")
	require.True(t, had)
	require.Equal(t, int64(20), displaced)

	_, had = idx.Delete("a")
	require.False(t, had)
}

func writeSegment(t *testing.T, root string, gen uint64, records []record.Record) {
	t.Helper()
	w, err := segment.NewWriter(segment.LogPath(root, gen))
	require.NoError(t, err)
	for _, r := range records {
		require.NoError(t, record.Encode(w, r))
	}
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())
}

func TestRebuildLastWriteWins(t *testing.T) {
	root := t.TempDir()
	writeSegment(t, root, 0, []record.Record{
		record.NewSet("a", "1"),
		record.NewSet("b", "2"),
	})
	writeSegment(t, root, 1, []record.Record{
		record.NewSet("a", "10"),
		record.NewRemove("b"),
	})

	idx, uncompacted, err := Rebuild(root)
	require.NoError(t, err)

	loc, ok := idx.Get("a")
	require.True(t, ok)
	require.Equal(t, uint64(1), loc.Gen)

	_, ok = idx.Get("b")
	require.False(t, ok)

	require.Greater(t, uncompacted, int64(0))
}

func TestRebuildEmptyDirectory(t *testing.T) {
	root := t.TempDir()
	idx, uncompacted, err := Rebuild(root)
	require.NoError(t, err)
	require.Zero(t, idx.Len())
	require.Zero(t, uncompacted)
}

// TestRebuildLocatorsReadBack writes several records to one segment and
// checks that every recovered locator's Offset/Length actually resolves
// back to that record's bytes, not to the following record's.
func TestRebuildLocatorsReadBack(t *testing.T) {
	root := t.TempDir()
	writeSegment(t, root, 0, []record.Record{
		record.NewSet("a", "1"),
		record.NewSet("a", "2"),
		record.NewSet("b", "hello"),
	})

	idx, _, err := Rebuild(root)
	require.NoError(t, err)

	r, err := segment.NewReader(segment.LogPath(root, 0))
	require.NoError(t, err)
	defer r.Close()

	locA, ok := idx.Get("a")
	require.True(t, ok)
	dataA, err := r.ReadAt(locA.Offset, locA.Length)
	require.NoError(t, err)
	recA, err := record.Decode(bytes.NewReader(dataA))
	require.NoError(t, err)
	require.Equal(t, "2", recA.Value)

	locB, ok := idx.Get("b")
	require.True(t, ok)
	dataB, err := r.ReadAt(locB.Offset, locB.Length)
	require.NoError(t, err)
	recB, err := record.Decode(bytes.NewReader(dataB))
	require.NoError(t, err)
	require.Equal(t, "hello", recB.Value)
}
