package lineup

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Session is one open lineup editor for one game: engine + scheduler + the
// persist closure binding them to the repository. Engine access is
// serialized through the session mutex; the scheduler's persist callback
// snapshots under the same lock, so a save never observes a half-applied
// mutation.
type Session struct {
	ID     string
	GameID uint

	mu      sync.Mutex
	engine  *Engine
	sched   *Scheduler
	lastErr error
}

// Open loads the persisted lineup for a game and returns an editor session.
// Loading does not count as a change: the scheduler is gated until the rows
// are in memory.
func Open(ctx context.Context, repo *Repo, gameID uint) (*Session, error) {
	s := &Session{ID: uuid.NewString(), GameID: gameID, engine: NewEngine()}
	s.sched = NewScheduler(
		func() error {
			s.mu.Lock()
			rows := s.engine.Snapshot(gameID)
			s.mu.Unlock()
			return repo.Replace(context.Background(), gameID, rows)
		},
		func(err error) {
			log.Printf("lineup autosave game %d: %v", gameID, err)
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
		},
	)

	rows, err := repo.Load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	s.engine.Load(rows)
	s.sched.MarkLoaded()
	return s, nil
}

func (s *Session) mutate(fn func(*Engine)) {
	s.mu.Lock()
	fn(s.engine)
	s.lastErr = nil
	s.mu.Unlock()
	s.sched.Notify()
}

func (s *Session) Assign(k SlotKey, playerID uint) {
	s.mutate(func(e *Engine) { e.Assign(k, playerID) })
}

func (s *Session) Swap(a, b SlotKey) { s.mutate(func(e *Engine) { e.Swap(a, b) }) }

func (s *Session) Clear(k SlotKey) { s.mutate(func(e *Engine) { e.Clear(k) }) }

func (s *Session) CycleDesignation(k SlotKey) {
	s.mutate(func(e *Engine) { e.CycleDesignation(k) })
}

func (s *Session) AddLine() { s.mutate(func(e *Engine) { e.AddLine() }) }

func (s *Session) RemoveLine(idx int) { s.mutate(func(e *Engine) { e.RemoveLine(idx) }) }

// Reset empties the in-memory engine after an external clear of the
// persisted rows. Not a mutation: there is nothing left to save.
func (s *Session) Reset() {
	s.mu.Lock()
	s.engine = NewEngine()
	s.lastErr = nil
	s.mu.Unlock()
}

// View returns the current in-memory rows plus the placed-player set,
// regardless of what has reached storage yet.
func (s *Session) View() ([]Row, []uint, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot(s.GameID), s.engine.AssignedPlayerIDs(), s.engine.Lines()
}

// Status reports the scheduler tri-state and the last persist error, if any.
func (s *Session) Status() (Status, error) {
	s.mu.Lock()
	err := s.lastErr
	s.mu.Unlock()
	return s.sched.Status(), err
}

// Flush forces an immediate save (manual save button, session close).
func (s *Session) Flush() { s.sched.Flush() }

// Sessions is the registry of open editors, one per game. In practice a
// single admin edits a game at a time; a second Open for the same game joins
// the existing session instead of forking state (last-write-wins across
// separate processes remains accepted behavior).
type Sessions struct {
	mu     sync.Mutex
	repo   *Repo
	byGame map[uint]*Session
}

func NewSessions(repo *Repo) *Sessions {
	return &Sessions{repo: repo, byGame: map[uint]*Session{}}
}

func (r *Sessions) Open(ctx context.Context, gameID uint) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byGame[gameID]; ok {
		return s, nil
	}
	s, err := Open(ctx, r.repo, gameID)
	if err != nil {
		return nil, err
	}
	r.byGame[gameID] = s
	return s, nil
}

func (r *Sessions) Get(gameID uint) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byGame[gameID]
	return s, ok
}

// Close flushes and drops a game's session.
func (r *Sessions) Close(gameID uint) {
	r.mu.Lock()
	s, ok := r.byGame[gameID]
	delete(r.byGame, gameID)
	r.mu.Unlock()
	if ok {
		s.Flush()
	}
}
