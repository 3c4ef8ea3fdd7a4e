// Package segment owns the on-disk representation of a store: positioned
// readers and writers over a single segment file, and the directory
// operations that enumerate, name, create, and delete the numbered
// `<gen>.log` files that make up a store's generations.
//
// Only the writer half of the engine ever creates, appends to, or deletes
// segments (spec §3's invariant); readers only open and read them. This
// package makes no attempt to coordinate across operating-system processes
// sharing a directory — concurrent processes opening the same root is
// undefined behavior, left unguarded on purpose (spec §9).
package segment

import (
	"bufio"
	"io"
	"os"

	kvserrors "github.com/ignitekv/kvs/pkg/errors"
)

// Reader wraps a buffered file reader and tracks the absolute byte offset
// of the next read. Locators are resolved by seeking to an offset captured
// earlier by a Writer, so Reader restores position explicitly on every
// Seek rather than trusting the OS file cursor across buffered reads.
type Reader struct {
	file     *os.File
	buf      *bufio.Reader
	position int64
}

// NewReader opens path read-only and wraps it for positioned access.
func NewReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, kvserrors.ClassifyFileOpenError(err, path, path)
	}
	return &Reader{file: f, buf: bufio.NewReader(f)}, nil
}

// Read implements io.Reader, advancing position by the bytes actually read.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.buf.Read(p)
	r.position += int64(n)
	return n, err
}

// Seek moves to an absolute offset from the start of the file and resets
// the buffered reader so subsequent reads start exactly there.
func (r *Reader) Seek(offset int64) error {
	if _, err := r.file.Seek(offset, io.SeekStart); err != nil {
		return kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "Failed to seek segment reader")
	}
	r.buf.Reset(r.file)
	r.position = offset
	return nil
}

// ReadAt reads exactly length bytes starting at offset, leaving position
// set to offset+length. It is the one operation readers need: resolve a
// locator to its bytes.
func (r *Reader) ReadAt(offset, length int64) ([]byte, error) {
	if err := r.Seek(offset); err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "Failed to read segment record").WithOffset(int(offset))
	}
	return buf, nil
}

// Position returns the current byte offset from the start of the file.
func (r *Reader) Position() int64 {
	return r.position
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.file.Close()
}

// Writer wraps a buffered file writer and tracks the absolute byte offset
// of the next write. Locators are computed by sampling Position before and
// after a record is written and flushed.
type Writer struct {
	file     *os.File
	buf      *bufio.Writer
	position int64
}

// NewWriter opens path for read-write, positions at its current end, and
// wraps it for positioned appends. The file is created if absent.
func NewWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, kvserrors.ClassifyFileOpenError(err, path, path)
	}
	pos, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()
		return nil, kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "Failed to seek to end of segment")
	}
	return &Writer{file: f, buf: bufio.NewWriter(f), position: pos}, nil
}

// Write implements io.Writer, advancing position by the bytes buffered.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.buf.Write(p)
	w.position += int64(n)
	return n, err
}

// Flush forces buffered bytes to the underlying file. Every append flushes
// before its locator is published to the index (spec §3's durability
// invariant), so the store never indexes an offset past the durably
// written tail.
func (w *Writer) Flush() error {
	if err := w.buf.Flush(); err != nil {
		return kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "Failed to flush segment writer")
	}
	return nil
}

// Position returns the current byte offset from the start of the file.
func (w *Writer) Position() int64 {
	return w.position
}

// Close releases the underlying file handle.
func (w *Writer) Close() error {
	return w.file.Close()
}
