package backend

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/teskalabs/asab-console/internal/library"
)

type fakeLister struct {
	calls   atomic.Int64
	records []library.Record
	err     error
}

func (f *fakeLister) List(ctx context.Context) ([]library.Record, error) {
	f.calls.Add(1)
	return f.records, f.err
}

func receiveEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case evt, ok := <-events:
		if !ok {
			t.Fatalf("events channel closed unexpectedly")
		}
		return evt
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for backend event")
	}
	return Event{}
}

func TestWatcherEmitsInitialListing(t *testing.T) {
	lister := &fakeLister{records: []library.Record{{Path: "/a.yaml", Type: "item"}}}
	w := NewWatcher(lister, time.Hour)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	evt := receiveEvent(t, w.Events())
	if evt.Err != nil {
		t.Fatalf("unexpected error: %v", evt.Err)
	}
	if len(evt.Records) != 1 || evt.Records[0].Path != "/a.yaml" {
		t.Fatalf("unexpected records: %#v", evt.Records)
	}
}

func TestWatcherEmitsErrors(t *testing.T) {
	lister := &fakeLister{err: errors.New("boom")}
	w := NewWatcher(lister, time.Hour)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	evt := receiveEvent(t, w.Events())
	if evt.Err == nil {
		t.Fatalf("expected error event")
	}
}

func TestWatcherRefreshKicksPoll(t *testing.T) {
	lister := &fakeLister{}
	w := NewWatcher(lister, time.Hour)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	receiveEvent(t, w.Events())
	w.Refresh()
	receiveEvent(t, w.Events())
	if got := lister.calls.Load(); got < 2 {
		t.Fatalf("expected at least 2 polls, got %d", got)
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	lister := &fakeLister{}
	w := NewWatcher(lister, time.Hour)

	receiveEvent(t, w.Events())
	w.Stop()
	w.Wait()

	for {
		select {
		case _, ok := <-w.Events():
			if !ok {
				return
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("events channel did not close after Stop")
		}
	}
}
