// Package backend keeps the library listing fresh. A single poller
// hits the list endpoint at a fixed interval and publishes the result
// as events; consumers can kick an immediate refresh after a mutation
// instead of waiting for the next tick.
package backend

import (
	"context"
	"sync"
	"time"

	"github.com/teskalabs/asab-console/internal/library"
)

// Lister fetches the recursive library listing. Satisfied by
// api.Client; tests substitute a fake.
type Lister interface {
	List(ctx context.Context) ([]library.Record, error)
}

// Event conveys a fresh listing or an error from a backend poll.
type Event struct {
	Records []library.Record
	Err     error
}

// Watcher polls the library service at a fixed interval and publishes
// events.
type Watcher struct {
	lister   Lister
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	kick   chan struct{}
	wg     sync.WaitGroup
}

// NewWatcher creates a backend watcher that refreshes the listing
// every interval.
func NewWatcher(lister Lister, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		lister:   lister,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
		kick:     make(chan struct{}, 1),
	}

	w.wg.Add(1)
	go w.poll()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Refresh requests an immediate poll, ahead of the next tick. Multiple
// requests before the poller wakes coalesce into one.
func (w *Watcher) Refresh() {
	select {
	case w.kick <- struct{}{}:
	default:
	}
}

// Stop cancels the watcher. The poller exits after its current fetch
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller goroutine has exited and the events
// channel is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll() {
	defer w.wg.Done()

	throttle := newThrottle(250 * time.Millisecond)

	emit := func() bool {
		throttle.wait()
		records, err := w.lister.List(w.ctx)
		evt := Event{Records: records, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.kick:
			if !emit() {
				return
			}
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
