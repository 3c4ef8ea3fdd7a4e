package pool

import (
	"sync"

	"go.uber.org/zap"
)

// SharedQueuePool runs tasks on a fixed number of goroutines reading off one
// shared channel. Grounded on thread_pool/shared_queue.rs's SharedQueueThreadPool:
// the Rust worker catches a panicking task with catch_unwind so the worker
// thread survives to pick up the next message; Go goroutines have no
// supervisor-and-respawn primitive to imitate directly, but recovering the
// panic inside the task wrapper gives the same guarantee — a panicking task
// never shrinks the pool's effective capacity — without needing one.
type SharedQueuePool struct {
	tasks chan func()
	wg    sync.WaitGroup
	log   *zap.SugaredLogger
}

// NewSharedQueuePool starts capacity worker goroutines draining a shared,
// unbuffered task channel.
func NewSharedQueuePool(capacity int, log *zap.SugaredLogger) *SharedQueuePool {
	p := &SharedQueuePool{
		tasks: make(chan func()),
		log:   log,
	}
	p.wg.Add(capacity)
	for id := 0; id < capacity; id++ {
		go p.worker(id)
	}
	return p
}

func (p *SharedQueuePool) worker(id int) {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(id, task)
	}
}

func (p *SharedQueuePool) run(id int, task func()) {
	defer func() {
		if r := recover(); r != nil && p.log != nil {
			p.log.Errorw("worker task panicked", "worker", id, "recovered", r)
		}
	}()
	task()
}

// Submit hands task to whichever worker is next free.
func (p *SharedQueuePool) Submit(task func()) {
	p.tasks <- task
}

// Shutdown closes the task channel and waits for every worker to drain it.
func (p *SharedQueuePool) Shutdown() {
	close(p.tasks)
	p.wg.Wait()
}
