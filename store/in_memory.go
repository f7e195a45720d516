package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vcon-dev/fake-vcons/vcon"
)

// InMemoryStore is a process-local Store implementation useful for tests,
// examples and single-process tooling. Containers are deep-copied on save
// and retrieval to avoid accidental external mutation of stored state.
//
// This implementation is intentionally minimal; it does not enforce
// retention limits or size quotas. For anything that must survive a process
// restart, use the sqlite sub-package.
type InMemoryStore struct {
	mu    sync.RWMutex
	vcons map[string]*vcon.Vcon
}

// NewInMemoryStore returns an empty in-memory container store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{vcons: make(map[string]*vcon.Vcon)}
}

// Save stores a deep copy of the container under its UUID.
func (s *InMemoryStore) Save(_ context.Context, v *vcon.Vcon) error {
	if v == nil || v.UUID == "" {
		return fmt.Errorf("vcon uuid is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vcons[v.UUID] = v.Clone()
	return nil
}

// Get returns a deep copy of the stored container or ErrNotFound.
func (s *InMemoryStore) Get(_ context.Context, uuid string) (*vcon.Vcon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vcons[uuid]
	if !ok {
		return nil, ErrNotFound
	}
	return v.Clone(), nil
}

// List returns stored UUIDs ordered by creation timestamp, then UUID for
// stability when timestamps collide.
func (s *InMemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type entry struct{ uuid, created string }
	entries := make([]entry, 0, len(s.vcons))
	for id, v := range s.vcons {
		entries = append(entries, entry{uuid: id, created: v.CreatedAt})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].created != entries[j].created {
			return entries[i].created < entries[j].created
		}
		return entries[i].uuid < entries[j].uuid
	})
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.uuid
	}
	return ids, nil
}

// Search returns copies of containers whose subject contains the substring.
func (s *InMemoryStore) Search(_ context.Context, subject string) ([]*vcon.Vcon, error) {
	needle := strings.ToLower(subject)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var hits []*vcon.Vcon
	for _, v := range s.vcons {
		if strings.Contains(strings.ToLower(v.Subject), needle) {
			hits = append(hits, v.Clone())
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].CreatedAt != hits[j].CreatedAt {
			return hits[i].CreatedAt < hits[j].CreatedAt
		}
		return hits[i].UUID < hits[j].UUID
	})
	return hits, nil
}

// Delete removes the container if present or returns ErrNotFound.
func (s *InMemoryStore) Delete(_ context.Context, uuid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vcons[uuid]; !ok {
		return ErrNotFound
	}
	delete(s.vcons, uuid)
	return nil
}
