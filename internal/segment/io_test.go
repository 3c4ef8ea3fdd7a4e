package segment

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterTracksPosition(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "0.log")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.Equal(t, int64(0), w.Position())

	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, int64(5), w.Position())

	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())
}

func TestReaderReadAtResolvesLocator(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "0.log")

	w, err := NewWriter(path)
	require.NoError(t, err)
	begin := w.Position()
	_, err = w.Write([]byte("hello world"))
	require.NoError(t, err)
	end := w.Position()
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	data, err := r.ReadAt(begin+6, end-(begin+6))
	require.NoError(t, err)
	require.Equal(t, "world", string(data))
}

func TestWriterReopensAtEndOfFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "0.log")

	w1, err := NewWriter(path)
	require.NoError(t, err)
	_, err = w1.Write([]byte("abc"))
	require.NoError(t, err)
	require.NoError(t, w1.Flush())
	require.NoError(t, w1.Close())

	w2, err := NewWriter(path)
	require.NoError(t, err)
	defer w2.Close()
	require.Equal(t, int64(3), w2.Position())
}
