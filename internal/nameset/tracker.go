// Package nameset tracks names (DOE factors, dataset fields) by their xxHash64
// identifier and reports duplicates and hash collisions.
package nameset

import (
	"errors"
	"strings"

	"github.com/arloliu/chemlab/internal/hash"
)

var (
	// ErrEmptyName is returned when a blank name is tracked.
	ErrEmptyName = errors.New("name is empty")
	// ErrDuplicateName is returned when the same name is tracked twice.
	ErrDuplicateName = errors.New("duplicate name")
)

// Tracker records names in insertion order.
//
// Two different names sharing one hash are not an error: the collision flag is
// set and both names are kept, so callers that key by ID know to fall back to
// the full name.
type Tracker struct {
	ids          map[uint64]string // hash -> first name seen
	names        []string
	hasCollision bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		ids:   make(map[uint64]string),
		names: make([]string, 0),
	}
}

// Track adds name to the set.
//
// Leading and trailing whitespace is ignored when checking for blank names but
// the name is stored as given.
//
// Returns:
//   - uint64: The xxHash64 ID of name
//   - error: ErrEmptyName or ErrDuplicateName
func (t *Tracker) Track(name string) (uint64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, ErrEmptyName
	}

	id := hash.ID(name)
	if existing, exists := t.ids[id]; exists {
		if existing == name || t.scan(name) {
			return id, ErrDuplicateName
		}
		t.hasCollision = true
	} else {
		t.ids[id] = name
	}
	t.names = append(t.names, name)

	return id, nil
}

// Contains reports whether name has been tracked.
func (t *Tracker) Contains(name string) bool {
	existing, ok := t.ids[hash.ID(name)]
	if !ok {
		return false
	}
	if existing == name {
		return true
	}

	// collided slot
	return t.scan(name)
}

func (t *Tracker) scan(name string) bool {
	for _, n := range t.names {
		if n == name {
			return true
		}
	}

	return false
}

// HasCollision reports whether two distinct names shared an ID.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in insertion order.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears the tracker for reuse.
func (t *Tracker) Reset() {
	clear(t.ids)
	t.names = t.names[:0]
	t.hasCollision = false
}
