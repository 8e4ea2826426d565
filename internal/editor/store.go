package editor

import (
	"errors"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// ErrDraftNotFound is returned for unknown or evicted drafts.
var ErrDraftNotFound = errors.New("draft not found")

type entry struct {
	draft     *Draft
	touchedAt time.Time
}

// Store keeps open drafts in memory, bounded by an LRU. All reads and writes go
// through the store lock so edits to one draft apply in request order.
type Store struct {
	mu    sync.Mutex
	cache *lru.Cache
	now   func() time.Time
}

// NewStore creates a store holding at most capacity drafts.
func NewStore(capacity int) (*Store, error) {
	cache, err := lru.New(capacity)
	if err != nil {
		return nil, fmt.Errorf("create draft cache: %w", err)
	}
	return &Store{cache: cache, now: time.Now}, nil
}

// Put saves d under a fresh id and returns that id.
func (s *Store) Put(d *Draft) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	d = d.Clone()
	d.ID = newKey()
	s.cache.Add(d.ID, &entry{draft: d, touchedAt: s.now()})
	return d.ID
}

// Get returns a copy of the draft.
func (s *Store) Get(id string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(id)
	if !ok {
		return nil, ErrDraftNotFound
	}
	e.touchedAt = s.now()
	return e.draft.Clone(), nil
}

// Update applies fn to the stored draft. When fn fails the draft is left as it
// was before the call.
func (s *Store) Update(id string, fn func(*Draft) error) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(id)
	if !ok {
		return nil, ErrDraftNotFound
	}
	work := e.draft.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	work.ID = id
	e.draft = work
	e.touchedAt = s.now()
	return work.Clone(), nil
}

// Delete discards a draft.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Remove(id)
}

// Len returns the number of open drafts.
func (s *Store) Len() int {
	return s.cache.Len()
}

// Sweep removes drafts untouched for longer than maxIdle and returns how many
// were removed.
func (s *Store) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for _, k := range s.cache.Keys() {
		v, ok := s.cache.Peek(k)
		if !ok {
			continue
		}
		if v.(*entry).touchedAt.Before(cutoff) {
			s.cache.Remove(k)
			removed++
		}
	}
	return removed
}

func (s *Store) lookup(id string) (*entry, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*entry), true
}
