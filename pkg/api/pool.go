package api

import (
	"context"
	"sync/atomic"
	"time"
)

// WorkerPool bounds the number of engine queries running at once.
type WorkerPool struct {
	sem    chan struct{}
	queued atomic.Int64 // Requests waiting for a slot
	active atomic.Int64 // Requests holding a slot
	total  atomic.Int64 // Requests completed
}

// PoolConfig configures the worker pool.
type PoolConfig struct {
	MaxWorkers int // Max concurrent queries (default: 100)
}

// DefaultPoolConfig returns a PoolConfig with sensible defaults.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{MaxWorkers: 100}
}

// NewWorkerPool creates a new worker pool with the given configuration.
func NewWorkerPool(config PoolConfig) *WorkerPool {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = DefaultPoolConfig().MaxWorkers
	}
	return &WorkerPool{
		sem: make(chan struct{}, config.MaxWorkers),
	}
}

// Acquire acquires a slot.
// Returns an error if the context is cancelled while waiting.
func (p *WorkerPool) Acquire(ctx context.Context) error {
	p.queued.Add(1)
	defer p.queued.Add(-1)

	select {
	case p.sem <- struct{}{}:
		p.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AcquireWithTimeout tries to acquire a slot, giving up after timeout.
func (p *WorkerPool) AcquireWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return p.Acquire(ctx)
}

// Release releases a slot.
func (p *WorkerPool) Release() {
	p.active.Add(-1)
	p.total.Add(1)
	<-p.sem
}

// PoolStats is a snapshot of pool counters.
type PoolStats struct {
	Active int64 `json:"active"`
	Queued int64 `json:"queued"`
	Total  int64 `json:"total"`
	Max    int   `json:"max"`
}

// Stats returns current pool statistics.
func (p *WorkerPool) Stats() PoolStats {
	return PoolStats{
		Active: p.active.Load(),
		Queued: p.queued.Load(),
		Total:  p.total.Load(),
		Max:    cap(p.sem),
	}
}
