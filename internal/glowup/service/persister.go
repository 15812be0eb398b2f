package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/glowup/internal/glowup/state"
	"github.com/aussiebroadwan/glowup/internal/glowup/store"
)

// DefaultWriteTimeout bounds a single snapshot write.
const DefaultWriteTimeout = 5 * time.Second

// Persister mirrors state snapshots into the store from a background worker.
// Saves are coalesced: only the newest pending snapshot is written, and at most
// one write is in flight. Failures are logged and never reach the caller.
type Persister struct {
	Store        store.Store
	Logger       *slog.Logger
	WriteTimeout time.Duration

	mu      sync.Mutex
	pending *state.Snapshot
	queued  uint64        // snapshots accepted by Save
	written uint64        // snapshots settled (written, failed or discarded)
	settled chan struct{} // closed and replaced whenever written advances
	started bool
	stopped bool

	// writeMu is held for the whole of a store write so Clear never
	// interleaves with one.
	writeMu sync.Mutex

	wake   chan struct{}
	stopCh chan struct{}
	doneCh chan struct{}
}

func NewPersister(st store.Store, logger *slog.Logger, writeTimeout time.Duration) *Persister {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}

	return &Persister{
		Store:        st,
		Logger:       logger,
		WriteTimeout: writeTimeout,
		settled:      make(chan struct{}),
		wake:         make(chan struct{}, 1),
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// Start begins the background writer. Call Stop to drain and shut it down.
func (p *Persister) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.stopped {
		return
	}
	p.started = true

	go p.run()
	p.Logger.Info("persister started", "write_timeout", p.WriteTimeout)
}

// Stop writes whatever is still pending and waits for the worker to exit. A
// persister that was never started drains on the calling goroutine.
func (p *Persister) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	started := p.started
	p.mu.Unlock()

	if started {
		close(p.stopCh)
		<-p.doneCh
	} else {
		p.drain()
	}
	p.Logger.Info("persister stopped")
}

// Running reports whether the background writer is accepting snapshots.
func (p *Persister) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started && !p.stopped
}

// Save queues s, replacing any snapshot that has not been written yet.
func (p *Persister) Save(s state.Snapshot) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		p.Logger.Warn("persister stopped, snapshot dropped")
		return
	}
	p.pending = &s
	p.queued++
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
		// worker already signalled
	}
}

// Flush blocks until every snapshot saved before the call has settled.
func (p *Persister) Flush(ctx context.Context) error {
	p.mu.Lock()
	target := p.queued
	for p.written < target {
		ch := p.settled
		p.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}

		p.mu.Lock()
	}
	p.mu.Unlock()
	return nil
}

// Clear discards the pending snapshot and removes every persisted key. It
// waits for an in-flight write so the removal is never overwritten by it.
func (p *Persister) Clear(ctx context.Context) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	p.pending = nil
	p.settle(p.queued)
	p.mu.Unlock()

	return p.Store.RemoveAll(ctx, store.SnapshotKeys...)
}

func (p *Persister) run() {
	defer close(p.doneCh)

	for {
		select {
		case <-p.wake:
			p.drain()
		case <-p.stopCh:
			p.drain()
			return
		}
	}
}

// drain writes pending snapshots until none is left.
func (p *Persister) drain() {
	for p.writeNext() {
	}
}

func (p *Persister) writeNext() bool {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	snap, seq := p.pending, p.queued
	p.pending = nil
	p.mu.Unlock()

	if snap == nil {
		return false
	}

	p.write(*snap)

	p.mu.Lock()
	p.settle(seq)
	p.mu.Unlock()
	return true
}

func (p *Persister) write(s state.Snapshot) {
	batch, err := s.Batch()
	if err != nil {
		p.Logger.Error("encoding snapshot failed", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.WriteTimeout)
	defer cancel()

	if err := p.Store.WriteBatch(ctx, batch); err != nil {
		p.Logger.Error("persisting snapshot failed", "error", err)
		return
	}

	p.Logger.Debug("snapshot persisted",
		"authenticated", s.User != nil,
		"onboarding_complete", s.OnboardingComplete,
	)
}

// settle advances written to seq and wakes Flush callers. p.mu must be held.
func (p *Persister) settle(seq uint64) {
	if seq <= p.written {
		return
	}
	p.written = seq
	close(p.settled)
	p.settled = make(chan struct{})
}
