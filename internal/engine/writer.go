package engine

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ignitekv/kvs/internal/index"
	"github.com/ignitekv/kvs/internal/record"
	"github.com/ignitekv/kvs/internal/segment"
)

// writerHalf is the single appender for a store's log: every Set and Remove
// goes through it, serialized by the mutex its owner (KvStore) holds around
// every call. It owns the current generation's writer, the shared index,
// the running uncompacted-byte count, and the stale-generation watermark
// readers reconcile their handle caches against.
type writerHalf struct {
	root     string
	curGen   uint64
	writer   *segment.Writer
	idx      *index.Index
	staleGen *atomic.Uint64

	uncompacted int64
	threshold   int64

	log *zap.SugaredLogger
}

func newWriterHalf(root string, curGen uint64, w *segment.Writer, idx *index.Index, staleGen *atomic.Uint64, uncompacted, threshold int64, log *zap.SugaredLogger) *writerHalf {
	return &writerHalf{
		root:        root,
		curGen:      curGen,
		writer:      w,
		idx:         idx,
		staleGen:    staleGen,
		uncompacted: uncompacted,
		threshold:   threshold,
		log:         log,
	}
}

// Set appends a Set record, installs its locator, and compacts if the
// uncompacted count has crossed the configured threshold (spec §4.5).
func (w *writerHalf) Set(key, value string) error {
	loc, err := w.append(record.NewSet(key, value))
	if err != nil {
		return err
	}

	if displaced, had := w.idx.Put(key, loc); had {
		w.uncompacted += displaced
	}

	if w.uncompacted > w.threshold {
		return w.compact()
	}
	return nil
}

// Remove deletes key from the index, then appends the tombstone. Recovery
// replays in order and honors the tombstone regardless of whether it trails
// the in-memory removal, so this ordering is safe (spec §4.5).
func (w *writerHalf) Remove(key string) error {
	displaced, had := w.idx.Delete(key)
	if !had {
		return notFound(key)
	}
	w.uncompacted += displaced

	if _, err := w.append(record.NewRemove(key)); err != nil {
		return err
	}

	if w.uncompacted > w.threshold {
		return w.compact()
	}
	return nil
}

func (w *writerHalf) append(rec record.Record) (index.Locator, error) {
	begin := w.writer.Position()
	if err := record.Encode(w.writer, rec); err != nil {
		return index.Locator{}, err
	}
	if err := w.writer.Flush(); err != nil {
		return index.Locator{}, err
	}
	end := w.writer.Position()
	return index.Locator{Gen: w.curGen, Offset: begin, Length: end - begin}, nil
}

// compact rewrites every live key into a fresh generation and discards
// everything older. The step ordering is the correctness-critical part of
// the whole engine (spec §4.5):
//
//  1. open a new writer one generation ahead — the compaction generation.
//  2. under the index lock, copy every live locator's bytes verbatim and
//     retarget the locator to its new position.
//  3. flush and release the lock.
//  4. publish the stale-generation watermark (compaction generation - 1)
//     so readers know which cached handles are no longer valid.
//  5. delete every generation strictly below the compaction generation.
//  6. swap in the new writer and reset the uncompacted counter.
//
// Readers that still hold a handle to an older segment either read bytes
// that still match the locator they captured before the lock was released,
// or observe the retargeted locator and follow it — never both wrong at
// once, because locators move before segments disappear.
func (w *writerHalf) compact() error {
	w.curGen++
	compactionGen := w.curGen

	tmpPath := segment.TempLogPath(w.root, compactionGen)
	compactionWriter, err := segment.NewWriter(tmpPath)
	if err != nil {
		return err
	}

	readers := make(map[uint64]*segment.Reader)
	closeReaders := func() {
		for _, r := range readers {
			r.Close()
		}
	}

	w.idx.Mu.Lock()
	for key, loc := range w.idx.Entries {
		src, ok := readers[loc.Gen]
		if !ok {
			src, err = segment.NewReader(segment.LogPath(w.root, loc.Gen))
			if err != nil {
				w.idx.Mu.Unlock()
				closeReaders()
				return err
			}
			readers[loc.Gen] = src
		}

		data, err := src.ReadAt(loc.Offset, loc.Length)
		if err != nil {
			w.idx.Mu.Unlock()
			closeReaders()
			return err
		}

		newOffset := compactionWriter.Position()
		if _, err := compactionWriter.Write(data); err != nil {
			w.idx.Mu.Unlock()
			closeReaders()
			return err
		}
		w.idx.Entries[key] = index.Locator{Gen: compactionGen, Offset: newOffset, Length: loc.Length}
	}
	closeReaders()

	if err := compactionWriter.Flush(); err != nil {
		w.idx.Mu.Unlock()
		return err
	}
	w.idx.Mu.Unlock()

	finalPath := segment.LogPath(w.root, compactionGen)
	if err := segment.RenameIntoPlace(tmpPath, finalPath); err != nil {
		return err
	}

	w.staleGen.Store(compactionGen - 1)

	for gen := uint64(0); gen < compactionGen; gen++ {
		_ = segment.Delete(w.root, gen)
	}

	newWriter, err := segment.NewWriter(finalPath)
	if err != nil {
		return err
	}
	w.writer.Close()
	w.writer = newWriter
	w.uncompacted = 0

	if w.log != nil {
		w.log.Infow("compaction finished", "generation", compactionGen, "liveKeys", w.idx.Len())
	}
	return nil
}
