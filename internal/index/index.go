// Package index is the in-memory key -> locator map and the recovery
// routine that rebuilds it by replaying every segment in a store's
// directory. The index is the source of truth for which keys are live
// (spec §3); only Set locators are ever indexed, and recovery's
// last-write-wins replay is what keeps it consistent with the log after a
// crash.
package index

import (
	"io"
	"sync"

	"github.com/ignitekv/kvs/internal/record"
	"github.com/ignitekv/kvs/internal/segment"
)

// Locator identifies one Set record on disk: its generation, the byte
// offset it starts at, and its length in bytes.
type Locator struct {
	Gen    uint64
	Offset int64
	Length int64
}

// Index maps keys to the locator of their most recent Set record. Callers
// outside this package must hold Mu while touching Entries directly (the
// writer half does, to keep locator retargeting and index mutation under
// one critical section during compaction); Get/Put/Delete take the lock
// internally for the common case.
type Index struct {
	Mu      sync.RWMutex
	Entries map[string]Locator
}

// New returns an empty index.
func New() *Index {
	return &Index{Entries: make(map[string]Locator)}
}

// Get returns the locator for key, if indexed.
func (idx *Index) Get(key string) (Locator, bool) {
	idx.Mu.RLock()
	defer idx.Mu.RUnlock()
	loc, ok := idx.Entries[key]
	return loc, ok
}

// Put inserts or replaces the locator for key and reports the length of
// the displaced locator, if any — the caller adds it to the uncompacted
// byte count.
func (idx *Index) Put(key string, loc Locator) (displaced int64, hadPrevious bool) {
	idx.Mu.Lock()
	defer idx.Mu.Unlock()
	old, ok := idx.Entries[key]
	idx.Entries[key] = loc
	if ok {
		return old.Length, true
	}
	return 0, false
}

// Delete removes key from the index and reports the length of the
// displaced locator, if any.
func (idx *Index) Delete(key string) (displaced int64, hadPrevious bool) {
	idx.Mu.Lock()
	defer idx.Mu.Unlock()
	old, ok := idx.Entries[key]
	if !ok {
		return 0, false
	}
	delete(idx.Entries, key)
	return old.Length, true
}

// Len returns the number of live keys.
func (idx *Index) Len() int {
	idx.Mu.RLock()
	defer idx.Mu.RUnlock()
	return len(idx.Entries)
}

// Rebuild replays every generation under root in ascending order and
// returns the index it reconstructs along with the number of uncompacted
// bytes observed (spec §4.4): bytes occupied by Set/Remove records that
// have since been superseded or invalidated, including the tombstones
// themselves once consumed.
func Rebuild(root string) (*Index, int64, error) {
	idx := New()
	var uncompacted int64

	gens, err := segment.SortedGenerations(root)
	if err != nil {
		return nil, 0, err
	}

	for _, gen := range gens {
		n, err := replaySegment(idx, root, gen)
		if err != nil {
			return nil, 0, err
		}
		uncompacted += n
	}

	return idx, uncompacted, nil
}

func replaySegment(idx *Index, root string, gen uint64) (int64, error) {
	path := segment.LogPath(root, gen)
	r, err := segment.NewReader(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	var uncompacted int64
	dec := record.NewStreamDecoder(r)
	var begin int64
	for {
		rec, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		start := begin
		end := dec.Offset()
		length := end - start
		begin = end

		switch rec.Kind {
		case record.KindSet:
			if displaced, had := idx.Put(rec.Key, Locator{Gen: gen, Offset: start, Length: length}); had {
				uncompacted += displaced
			}
		case record.KindRemove:
			if displaced, had := idx.Delete(rec.Key); had {
				uncompacted += displaced
			}
			// The tombstone itself is stale once recovery has consumed it.
			uncompacted += length
		}
	}

	return uncompacted, nil
}
