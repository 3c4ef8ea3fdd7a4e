package engine

import (
	"bytes"
	"sync/atomic"

	"github.com/ignitekv/kvs/internal/index"
	"github.com/ignitekv/kvs/internal/record"
	"github.com/ignitekv/kvs/internal/segment"
)

// readerHalf resolves locators to values. Its handle cache is never shared:
// Clone returns a fresh readerHalf with an empty cache, mirroring
// KvStoreReadHalf::clone in the Rust source — each goroutine that reads
// opens its own file handles, so no synchronization is needed around the
// cache itself.
type readerHalf struct {
	root     string
	idx      *index.Index
	staleGen *atomic.Uint64
	handles  map[uint64]*segment.Reader
}

func newReaderHalf(root string, idx *index.Index, staleGen *atomic.Uint64) *readerHalf {
	return &readerHalf{
		root:     root,
		idx:      idx,
		staleGen: staleGen,
		handles:  make(map[uint64]*segment.Reader),
	}
}

// Clone returns a readerHalf sharing the index and watermark but starting
// with an empty handle cache.
func (r *readerHalf) Clone() *readerHalf {
	return newReaderHalf(r.root, r.idx, r.staleGen)
}

// Get resolves key through the index and, if present, reads and decodes its
// record (spec §4.6).
func (r *readerHalf) Get(key string) (string, bool, error) {
	loc, ok := r.idx.Get(key)
	if !ok {
		return "", false, nil
	}

	r.evictStale()

	h, err := r.handleFor(loc.Gen)
	if err != nil {
		return "", false, err
	}

	data, err := h.ReadAt(loc.Offset, loc.Length)
	if err != nil {
		return "", false, err
	}

	rec, err := record.Decode(bytes.NewReader(data))
	if err != nil {
		return "", false, err
	}
	if rec.Kind != record.KindSet {
		return "", false, unexpectedCommandType(key)
	}
	return rec.Value, true, nil
}

// evictStale drops every cached handle at or below the stale-generation
// watermark, which only moves forward after compaction has already
// retargeted every locator that pointed into those generations.
func (r *readerHalf) evictStale() {
	watermark := r.staleGen.Load()
	for gen, h := range r.handles {
		if gen <= watermark {
			h.Close()
			delete(r.handles, gen)
		}
	}
}

func (r *readerHalf) handleFor(gen uint64) (*segment.Reader, error) {
	if h, ok := r.handles[gen]; ok {
		return h, nil
	}
	h, err := segment.NewReader(segment.LogPath(r.root, gen))
	if err != nil {
		return nil, err
	}
	r.handles[gen] = h
	return h, nil
}

// Close releases every cached file handle.
func (r *readerHalf) Close() {
	for gen, h := range r.handles {
		h.Close()
		delete(r.handles, gen)
	}
}
