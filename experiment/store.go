package experiment

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/arloliu/chemlab/notify"
)

// Store is an in-memory collection of runs with a change signal.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	runs    []*Run
	changed notify.Notifier
}

// NewStore returns a store holding runs, in order.
func NewStore(runs ...*Run) *Store {
	s := &Store{}
	s.add(runs)

	return s
}

// Add appends runs, assigning a UUID to any run without an id, and
// publishes one change notification. Nil runs are ignored.
func (s *Store) Add(runs ...*Run) {
	if s.add(runs) > 0 {
		s.changed.Publish()
	}
}

func (s *Store) add(runs []*Run) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range runs {
		if r == nil {
			continue
		}
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		s.runs = append(s.runs, r)
		n++
	}

	return n
}

// Delete removes the run with the given id and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	before := len(s.runs)
	s.runs = slices.DeleteFunc(s.runs, func(r *Run) bool { return r.ID == id })
	removed := len(s.runs) != before
	s.mu.Unlock()

	if removed {
		s.changed.Publish()
	}

	return removed
}

// Runs returns a snapshot of the stored runs of the given kinds, or of all
// runs when no kind is given.
func (s *Store) Runs(kinds ...Kind) []*Run {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Run, 0, len(s.runs))
	for _, r := range s.runs {
		if len(kinds) == 0 || slices.Contains(kinds, r.Kind) {
			out = append(out, r)
		}
	}

	return out
}

// Len returns the number of stored runs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.runs)
}

// OnChange registers fn to be called after every mutation. Only one
// callback is active at a time; the returned function unregisters it.
func (s *Store) OnChange(fn func()) (cancel func()) {
	return s.changed.Subscribe(fn)
}
