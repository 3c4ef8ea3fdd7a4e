package pool

import (
	"go.uber.org/zap"

	"github.com/panjf2000/ants/v2"
	kvserrors "github.com/ignitekv/kvs/pkg/errors"
)

// WorkStealingPool delegates scheduling to github.com/panjf2000/ants/v2, the
// Go ecosystem's pooled-goroutine scheduler — the role thread_pool/rayon_pool.rs
// fills by delegating to the external rayon crate.
type WorkStealingPool struct {
	pool *ants.Pool
}

// NewWorkStealingPool builds a pool of the given worker capacity. ants
// recovers panics inside submitted tasks itself via its PanicHandler option,
// which this wires to the same logger the other pool kinds use.
func NewWorkStealingPool(capacity int, log *zap.SugaredLogger) (*WorkStealingPool, error) {
	p, err := ants.NewPool(capacity, ants.WithPanicHandler(func(r any) {
		if log != nil {
			log.Errorw("worker task panicked", "recovered", r)
		}
	}))
	if err != nil {
		return nil, kvserrors.NewPoolError(err, kvserrors.ErrorCodePoolPanic, "Failed to start work-stealing pool")
	}
	return &WorkStealingPool{pool: p}, nil
}

func (p *WorkStealingPool) Submit(task func()) {
	// ants.Pool.Submit only errors when the pool is closed or over a
	// non-blocking capacity limit; a submit after Shutdown is a caller bug,
	// so the error is intentionally dropped here rather than plumbed
	// through Pool's fire-and-forget Submit signature.
	_ = p.pool.Submit(task)
}

// Shutdown releases every goroutine ants is holding.
func (p *WorkStealingPool) Shutdown() {
	p.pool.Release()
}
