package lineup

import (
	"sync"
	"time"
)

// saveState is the scheduler's internal position. The explicit machine
// replaces the single "is a save in flight" boolean: a mutation arriving
// mid-save lands in stateSavingPending and triggers a follow-up save instead
// of being lost.
type saveState int

const (
	stateIdle saveState = iota
	stateScheduled
	stateSaving
	stateSavingPending
)

// Status is the UI-facing tri-state.
type Status string

const (
	StatusIdle   Status = "idle"
	StatusSaving Status = "saving"
	StatusSaved  Status = "saved" // reverts to idle after the display window
)

const (
	defaultDebounce     = 1500 * time.Millisecond
	defaultSavedDisplay = 2 * time.Second
)

// Scheduler debounces mutations into full-replace persists with a
// single-flight guarantee: persisted writes for one game never overlap. It
// does not fire for the initial load — MarkLoaded gates it.
type Scheduler struct {
	mu      sync.Mutex
	state   saveState
	status  Status
	loaded  bool
	timer   *time.Timer
	gen     int // invalidates stale timer/display callbacks

	debounce     time.Duration
	savedDisplay time.Duration

	persist func() error
	onError func(error)
}

func NewScheduler(persist func() error, onError func(error)) *Scheduler {
	if onError == nil {
		onError = func(error) {}
	}
	return &Scheduler{
		status:       StatusIdle,
		debounce:     defaultDebounce,
		savedDisplay: defaultSavedDisplay,
		persist:      persist,
		onError:      onError,
	}
}

// SetIntervals overrides the debounce and saved-display windows (tests).
func (s *Scheduler) SetIntervals(debounce, savedDisplay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debounce = debounce
	s.savedDisplay = savedDisplay
}

// MarkLoaded opens the gate: mutations before this point (the initial load
// populating the engine) must not schedule a save.
func (s *Scheduler) MarkLoaded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
}

// Notify records that a mutation happened. Transitions:
//
//	Idle          → Scheduled (start timer)
//	Scheduled     → Scheduled (reset timer)
//	Saving        → SavingPending
//	SavingPending → SavingPending
func (s *Scheduler) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	switch s.state {
	case stateIdle, stateScheduled:
		s.state = stateScheduled
		s.armTimerLocked(s.debounce)
	case stateSaving:
		s.state = stateSavingPending
	case stateSavingPending:
	}
}

// Flush cancels any pending debounce and saves immediately, unless a save is
// already in flight (then the pending-rerun path covers it). Used by manual
// save and session close.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	switch s.state {
	case stateIdle:
		s.mu.Unlock()
		return
	case stateScheduled:
		if s.timer != nil {
			s.timer.Stop()
		}
		s.mu.Unlock()
		s.runSave()
		return
	case stateSaving:
		s.state = stateSavingPending
	case stateSavingPending:
	}
	s.mu.Unlock()
}

// Status returns the UI tri-state.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Scheduler) armTimerLocked(d time.Duration) {
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		stale := gen != s.gen || s.state != stateScheduled
		s.mu.Unlock()
		if stale {
			return
		}
		s.runSave()
	})
}

func (s *Scheduler) runSave() {
	s.mu.Lock()
	if s.state == stateSaving || s.state == stateSavingPending {
		s.mu.Unlock()
		return
	}
	s.state = stateSaving
	s.status = StatusSaving
	s.mu.Unlock()

	err := s.persist()

	s.mu.Lock()
	rerun := s.state == stateSavingPending
	if rerun {
		// A mutation landed while the write was in flight; debounce again.
		s.state = stateScheduled
		s.armTimerLocked(s.debounce)
		s.status = StatusIdle
		s.mu.Unlock()
		if err != nil {
			s.onError(err)
		}
		return
	}
	s.state = stateIdle
	if err != nil {
		s.status = StatusIdle
		s.mu.Unlock()
		// In-memory state is not rolled back; the next mutation retries.
		s.onError(err)
		return
	}
	s.status = StatusSaved
	s.gen++
	gen := s.gen
	display := s.savedDisplay
	s.mu.Unlock()

	time.AfterFunc(display, func() {
		s.mu.Lock()
		if gen == s.gen && s.status == StatusSaved {
			s.status = StatusIdle
		}
		s.mu.Unlock()
	})
}
