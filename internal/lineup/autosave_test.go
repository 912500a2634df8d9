package lineup

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// countingPersist records save calls and can block to simulate a slow write.
type countingPersist struct {
	mu        sync.Mutex
	calls     int32
	inFlight  int32
	maxFlight int32
	block     chan struct{} // if non-nil, persist waits on it
	err       error
}

func (p *countingPersist) persist() error {
	cur := atomic.AddInt32(&p.inFlight, 1)
	for {
		max := atomic.LoadInt32(&p.maxFlight)
		if cur <= max || atomic.CompareAndSwapInt32(&p.maxFlight, max, cur) {
			break
		}
	}
	if p.block != nil {
		<-p.block
	}
	atomic.AddInt32(&p.inFlight, -1)
	atomic.AddInt32(&p.calls, 1)
	p.mu.Lock()
	err := p.err
	p.mu.Unlock()
	return err
}

func (p *countingPersist) count() int32 { return atomic.LoadInt32(&p.calls) }

func newTestScheduler(p *countingPersist, onErr func(error)) *Scheduler {
	s := NewScheduler(p.persist, onErr)
	s.SetIntervals(20*time.Millisecond, 30*time.Millisecond)
	s.MarkLoaded()
	return s
}

func waitFor(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not reached within %v", d)
}

func TestScheduler_DebounceCollapsesBurst(t *testing.T) {
	p := &countingPersist{}
	s := newTestScheduler(p, nil)

	for i := 0; i < 10; i++ {
		s.Notify()
		time.Sleep(2 * time.Millisecond)
	}
	waitFor(t, time.Second, func() bool { return p.count() == 1 })
	// Quiet period: no further saves.
	time.Sleep(100 * time.Millisecond)
	if p.count() != 1 {
		t.Errorf("saves = %d, want 1 for a single burst", p.count())
	}
}

func TestScheduler_NoSaveBeforeLoaded(t *testing.T) {
	p := &countingPersist{}
	s := NewScheduler(p.persist, nil)
	s.SetIntervals(10*time.Millisecond, 10*time.Millisecond)

	s.Notify() // load-time population, gate closed
	time.Sleep(80 * time.Millisecond)
	if p.count() != 0 {
		t.Fatalf("save fired before MarkLoaded")
	}

	s.MarkLoaded()
	s.Notify()
	waitFor(t, time.Second, func() bool { return p.count() == 1 })
}

func TestScheduler_SingleFlightWithRerun(t *testing.T) {
	p := &countingPersist{block: make(chan struct{})}
	s := newTestScheduler(p, nil)

	s.Notify()
	// Wait until the save is in flight.
	waitFor(t, time.Second, func() bool { return atomic.LoadInt32(&p.inFlight) == 1 })

	// Mutation during the in-flight save must not start a second write and
	// must not be lost.
	s.Notify()
	time.Sleep(30 * time.Millisecond)
	if got := atomic.LoadInt32(&p.maxFlight); got != 1 {
		t.Fatalf("overlapping persists: max in flight = %d", got)
	}

	close(p.block)
	waitFor(t, time.Second, func() bool { return p.count() == 2 })
	if got := atomic.LoadInt32(&p.maxFlight); got != 1 {
		t.Errorf("overlapping persists after rerun: %d", got)
	}
}

func TestScheduler_StatusLifecycle(t *testing.T) {
	p := &countingPersist{block: make(chan struct{})}
	s := newTestScheduler(p, nil)

	if s.Status() != StatusIdle {
		t.Fatalf("initial status = %q", s.Status())
	}
	s.Notify()
	waitFor(t, time.Second, func() bool { return s.Status() == StatusSaving })
	close(p.block)
	waitFor(t, time.Second, func() bool { return s.Status() == StatusSaved })
	// Display window elapses, status reverts.
	waitFor(t, time.Second, func() bool { return s.Status() == StatusIdle })
}

func TestScheduler_ErrorReportedNoRollback(t *testing.T) {
	p := &countingPersist{}
	p.err = errors.New("disk on fire")
	var got atomic.Value
	s := newTestScheduler(p, func(err error) { got.Store(err) })

	s.Notify()
	waitFor(t, time.Second, func() bool { return got.Load() != nil })
	if s.Status() != StatusIdle {
		t.Errorf("status after failed save = %q, want idle", s.Status())
	}

	// Next mutation retries.
	p.mu.Lock()
	p.err = nil
	p.mu.Unlock()
	s.Notify()
	waitFor(t, time.Second, func() bool { return p.count() == 2 })
}

func TestScheduler_FlushSavesImmediately(t *testing.T) {
	p := &countingPersist{}
	s := NewScheduler(p.persist, nil)
	s.SetIntervals(10*time.Second, 10*time.Millisecond) // debounce far away
	s.MarkLoaded()

	s.Notify()
	s.Flush()
	if p.count() != 1 {
		t.Fatalf("flush did not save: %d", p.count())
	}

	// Flush with nothing scheduled is a no-op.
	s.Flush()
	if p.count() != 1 {
		t.Errorf("idle flush saved: %d", p.count())
	}
}
