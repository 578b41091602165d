// Package cache implements the query cache that sits between the workflow
// services and the remote API.
//
// Entries are keyed by (resource kind, parameter) and carry a freshness flag
// plus an invalidation generation. The rules:
//
//   - A fresh entry is served without a network call.
//   - Concurrent reads of the same key within one generation attach to a
//     single in-flight fetch instead of duplicating it.
//   - Invalidate marks the entry stale without refetching; the next read
//     fetches anew.
//   - Last invalidation wins: a fetch that began before an invalidation may
//     still hand its result to its callers, but it never marks the entry
//     fresh again.
//   - A read whose precondition is not met (enabled=false) returns the zero
//     value without touching the network.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Key identifies one cached collection: a resource kind plus its
// disambiguating parameter. Keys compare structurally.
type Key struct {
	Kind  string
	Param string
}

func (k Key) String() string {
	if k.Param == "" {
		return k.Kind
	}
	return k.Kind + "/" + k.Param
}

// TestsKey is the key for the global test list.
func TestsKey() Key {
	return Key{Kind: "tests"}
}

// QuestionsKey is the key for the question list of one test.
func QuestionsKey(testID int64) Key {
	return Key{Kind: "questions", Param: strconv.FormatInt(testID, 10)}
}

type entry struct {
	value any
	fresh bool
	gen   uint64
}

// Store holds cache entries. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries map[Key]*entry
	group   singleflight.Group
}

func NewStore() *Store {
	return &Store{entries: make(map[Key]*entry)}
}

// Invalidate marks the key stale. It takes effect even while a fetch for the
// key is in flight: that fetch's result will not be marked fresh.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	e.fresh = false
	e.gen++
}

// Read returns the cached value for key, fetching when the entry is stale or
// absent. When enabled is false no fetch happens and the zero value is
// returned.
func Read[T any](ctx context.Context, s *Store, key Key, enabled bool, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if !enabled {
		return zero, nil
	}

	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	if e.fresh {
		v := e.value.(T)
		s.mu.Unlock()
		return v, nil
	}
	start := e.gen
	s.mu.Unlock()

	// The generation is part of the flight key, so readers that arrive after
	// an invalidation never attach to a superseded fetch.
	flightKey := fmt.Sprintf("%s#%d", key, start)
	v, err, _ := s.group.Do(flightKey, func() (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}

	s.mu.Lock()
	if e.gen == start {
		e.value = v
		e.fresh = true
	}
	s.mu.Unlock()

	return v.(T), nil
}
