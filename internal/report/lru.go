package report

import (
	"slices"
	"sync"
)

// LRUStore is an in-memory LRU cache in front of a backing Store.
// Saves are written through; Loads hit the cache first and promote
// misses. Recency is tracked with an order slice rather than a linked
// list: the cache is small and build results are written far more
// often than evicted, so the occasional O(n) promotion is irrelevant.
type LRUStore struct {
	mu   sync.Mutex
	cap  int
	back Store

	order []string // least recent first
	items map[string]*BuildResult
}

// NewLRUStore creates an LRU cache with the given capacity delegating
// to back. Capacity must be >= 1.
func NewLRUStore(cap int, back Store) *LRUStore {
	if cap < 1 {
		cap = 1
	}
	return &LRUStore{
		cap:   cap,
		back:  back,
		items: make(map[string]*BuildResult, cap),
	}
}

// Save caches the result and writes it through to the backing store.
func (s *LRUStore) Save(result *BuildResult) error {
	s.mu.Lock()
	s.put(result.ID, result)
	s.mu.Unlock()
	return s.back.Save(result)
}

// Load returns the cached result, falling back to the backing store
// and promoting what it finds.
func (s *LRUStore) Load(id string) (*BuildResult, error) {
	s.mu.Lock()
	if r, ok := s.items[id]; ok {
		s.touch(id)
		s.mu.Unlock()
		return r, nil
	}
	s.mu.Unlock()

	r, err := s.back.Load(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.put(id, r)
	s.mu.Unlock()
	return r, nil
}

// List always consults the backing store: the cache only holds the
// most recent slice of it.
func (s *LRUStore) List() ([]string, error) {
	return s.back.List()
}

// put inserts or refreshes id under the lock.
func (s *LRUStore) put(id string, r *BuildResult) {
	if _, ok := s.items[id]; ok {
		s.items[id] = r
		s.touch(id)
		return
	}
	s.items[id] = r
	s.order = append(s.order, id)
	if len(s.order) > s.cap {
		delete(s.items, s.order[0])
		s.order = slices.Delete(s.order, 0, 1)
	}
}

// touch moves id to the most-recent end under the lock.
func (s *LRUStore) touch(id string) {
	i := slices.Index(s.order, id)
	if i < 0 || i == len(s.order)-1 {
		return
	}
	s.order = append(slices.Delete(s.order, i, i+1), id)
}
