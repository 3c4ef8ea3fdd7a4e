// Package engine implements the storage engine: the log-structured KvStore
// built from internal/record, internal/segment, and internal/index, and a
// second bbolt-backed engine kept behind the same interface purely to
// exercise the polymorphism boundary.
package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ignitekv/kvs/internal/index"
	"github.com/ignitekv/kvs/internal/pool"
	"github.com/ignitekv/kvs/internal/segment"
	kvserrors "github.com/ignitekv/kvs/pkg/errors"
	"github.com/ignitekv/kvs/pkg/filesys"
	"github.com/ignitekv/kvs/pkg/options"
)

// Engine is the storage backend boundary the server drives. Go expresses
// the Rust KvsEngine trait's "Clone + Send + 'static" bound with the
// interface alone plus a documented convention: every implementation must
// be safe to call concurrently from multiple goroutines once constructed.
type Engine interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Config holds the dependencies KvStore needs beyond a root directory.
type Config struct {
	CompactionThreshold int64
	Pool                pool.Pool
	Logger              *zap.SugaredLogger
}

// KvStore is the primary Engine: a single mutex-guarded writer half and a
// readerHalf cloned per call, both reached through Config.Pool so a caller
// never blocks the dispatching goroutine on disk I/O (spec §4.7). When
// Config.Pool is nil, each operation runs inline on the caller's goroutine.
type KvStore struct {
	root string

	mu     sync.Mutex
	writer *writerHalf
	reader *readerHalf

	pool pool.Pool
	log  *zap.SugaredLogger
}

// Open recovers root's index (spec §4.4), opens a fresh writable generation
// one past the highest recovered, and returns a ready KvStore (spec's
// lifecycle: "opened... recovery scans segments, builds the index, opens a
// fresh writable generation one higher than the maximum existing").
func Open(root string, cfg Config) (*KvStore, error) {
	if err := ensureDir(root); err != nil {
		return nil, err
	}

	idx, uncompacted, err := index.Rebuild(root)
	if err != nil {
		return nil, err
	}

	gens, err := segment.SortedGenerations(root)
	if err != nil {
		return nil, err
	}
	var maxGen uint64
	for _, g := range gens {
		if g > maxGen {
			maxGen = g
		}
	}
	curGen := maxGen + 1

	w, err := segment.NewWriter(segment.LogPath(root, curGen))
	if err != nil {
		return nil, err
	}

	var staleGen atomic.Uint64

	threshold := cfg.CompactionThreshold
	if threshold <= 0 {
		threshold = options.DefaultCompactionThreshold
	}

	store := &KvStore{
		root:   root,
		writer: newWriterHalf(root, curGen, w, idx, &staleGen, uncompacted, threshold, cfg.Logger),
		reader: newReaderHalf(root, idx, &staleGen),
		pool:   cfg.Pool,
		log:    cfg.Logger,
	}
	return store, nil
}

// Get dispatches through the pool so it never blocks the caller's goroutine
// on disk I/O when KvStore is driven off the server's accept loop; the
// result is delivered on a single-buffered channel, the Go shape of the
// Rust oneshot-channel-plus-await pattern.
func (s *KvStore) Get(ctx context.Context, key string) (string, bool, error) {
	type result struct {
		value string
		found bool
		err   error
	}
	done := make(chan result, 1)

	reader := s.reader.Clone()
	s.submit(func() {
		defer reader.Close()
		value, found, err := reader.Get(key)
		done <- result{value, found, err}
	})

	select {
	case r := <-done:
		return r.value, r.found, r.err
	case <-ctx.Done():
		return "", false, kvserrors.NewSyncFailureError()
	}
}

// Set dispatches a Set to the single writer half, serialized by mu.
func (s *KvStore) Set(ctx context.Context, key, value string) error {
	done := make(chan error, 1)
	s.submit(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		done <- s.writer.Set(key, value)
	})

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return kvserrors.NewSyncFailureError()
	}
}

// Remove dispatches a Remove to the single writer half.
func (s *KvStore) Remove(ctx context.Context, key string) error {
	done := make(chan error, 1)
	s.submit(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		done <- s.writer.Remove(key)
	})

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return kvserrors.NewSyncFailureError()
	}
}

func (s *KvStore) submit(task func()) {
	if s.pool == nil {
		task()
		return
	}
	s.pool.Submit(task)
}

// Close releases the writer's and the base reader's file descriptors; the
// per-call reader clones Get makes close their own handles when each Get
// finishes. There is no explicit shutdown record; dropping the last handle
// is all Close does, per spec's lifecycle note.
func (s *KvStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reader.Close()
	return s.writer.writer.Close()
}

func ensureDir(root string) error {
	if err := filesys.CreateDir(root, 0755, true); err != nil {
		return kvserrors.ClassifyDirectoryCreationError(err, root)
	}
	return nil
}
