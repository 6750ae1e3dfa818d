package store

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	dErrors "github.com/batoulgheleb/crisiszone/pkg/domain-errors"
	"github.com/batoulgheleb/crisiszone/pkg/platform/tx"
)

var (
	txLockWaitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "eportfolio_tx_lock_wait_seconds",
		Help:    "Time spent waiting to acquire the in-memory transaction lock",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})
	txRollbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eportfolio_tx_rollbacks_total",
		Help: "Total number of in-memory transactions rolled back",
	})
)

// defaultTxTimeout bounds a transaction when the caller's context has no deadline.
const defaultTxTimeout = 5 * time.Second

// Coordinator gives the in-memory repository all-or-nothing semantics by
// snapshotting every collection on Begin and restoring it on Rollback.
//
// Begin/Commit/Rollback share a single snapshot slot: a second Begin before
// Commit or Rollback silently replaces the first snapshot, and there is no
// nesting. Reads between Begin and Commit see live, uncommitted state.
// RunInTx and View layer a reader/writer lock on top so that concurrent
// callers never share the slot and readers only observe committed state.
type Coordinator struct {
	repo    *InMemory
	timeout time.Duration

	// txMu serialises RunInTx callers; View holds it shared.
	txMu sync.RWMutex

	snapMu   sync.Mutex
	snapshot *state
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithTxTimeout overrides the default transaction timeout when greater than zero.
func WithTxTimeout(d time.Duration) CoordinatorOption {
	return func(c *Coordinator) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewCoordinator binds a coordinator to repo.
func NewCoordinator(repo *InMemory, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{repo: repo, timeout: defaultTxTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Begin captures a deep copy of every mutable collection.
func (c *Coordinator) Begin() {
	c.repo.mu.RLock()
	snap := c.repo.state.clone()
	c.repo.mu.RUnlock()

	c.snapMu.Lock()
	c.snapshot = snap
	c.snapMu.Unlock()
}

// Commit discards the pending snapshot.
func (c *Coordinator) Commit() {
	c.snapMu.Lock()
	c.snapshot = nil
	c.snapMu.Unlock()
}

// Rollback restores the repository to the pending snapshot. Without one it is a no-op.
func (c *Coordinator) Rollback() {
	c.snapMu.Lock()
	snap := c.snapshot
	c.snapshot = nil
	c.snapMu.Unlock()
	if snap == nil {
		return
	}

	c.repo.mu.Lock()
	c.repo.state = snap
	c.repo.mu.Unlock()
	txRollbacks.Inc()
}

// InTransaction reports whether a snapshot is pending.
func (c *Coordinator) InTransaction() bool {
	c.snapMu.Lock()
	defer c.snapMu.Unlock()
	return c.snapshot != nil
}

// RunInTx runs fn between Begin and Commit, rolling back when fn returns an
// error or panics. A panic is re-raised after the repository is restored.
// Callbacks queued with tx.AfterCommit run after Commit and before the next
// writer or reader is admitted.
func (c *Coordinator) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	parent := ctx
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	lockStart := time.Now()
	c.txMu.Lock()
	txLockWaitDuration.Observe(time.Since(lockStart).Seconds())
	defer c.txMu.Unlock()

	// Check again after acquiring lock
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	ctx, runHooks := tx.WithAfterCommit(ctx)
	c.Begin()
	defer func() {
		if p := recover(); p != nil {
			c.Rollback()
			panic(p)
		}
		if err != nil {
			c.Rollback()
			return
		}
		c.Commit()
		runHooks(parent)
	}()

	return fn(ctx)
}

// View runs fn while no transaction is in flight, so every read inside fn
// sees the same committed state.
func (c *Coordinator) View(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "read aborted: context cancelled")
	}
	c.txMu.RLock()
	defer c.txMu.RUnlock()
	return fn(ctx)
}
