package segment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortedGenerationsIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2.log", "0.log", "10.log", "metadata", "0.log.tmp"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	gens, err := SortedGenerations(dir)
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 2, 10}, gens)
}

func TestRenameIntoPlace(t *testing.T) {
	dir := t.TempDir()
	tmp := TempLogPath(dir, 1)
	require.NoError(t, os.WriteFile(tmp, []byte("data"), 0644))

	final := LogPath(dir, 1)
	require.NoError(t, RenameIntoPlace(tmp, final))

	_, err := os.Stat(tmp)
	require.True(t, os.IsNotExist(err))

	contents, err := os.ReadFile(final)
	require.NoError(t, err)
	require.Equal(t, "data", string(contents))
}
