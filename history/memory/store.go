// Package memory implements notify.Recorder fully in memory.
// Safe for concurrent access. Intended for unit testing and development.
package memory

import (
	"context"
	"sync"

	"github.com/raquelt/notify"
	"github.com/raquelt/notify/id"
)

// Compile-time interface check.
var _ notify.Recorder = (*Store)(nil)

// Store keeps history records in insertion order, guarded by a RW mutex.
type Store struct {
	mu      sync.RWMutex
	records []*notify.Record
}

// New returns a new empty Store.
func New() *Store {
	return &Store{}
}

// Record implements notify.Recorder. The record is copied so later caller
// mutations cannot corrupt history.
func (s *Store) Record(_ context.Context, rec *notify.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	s.records = append(s.records, &cp)
	return nil
}

// List returns a snapshot of all records in insertion order.
func (s *Store) List(_ context.Context) ([]*notify.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*notify.Record, 0, len(s.records))
	for _, r := range s.records {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

// Get returns one record by id, or notify.ErrRecordNotFound.
func (s *Store) Get(_ context.Context, recordID id.ID) (*notify.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.ID.String() == recordID.String() {
			cp := *r
			return &cp, nil
		}
	}
	return nil, notify.ErrRecordNotFound
}

// ListByIncidence returns a snapshot of the records for one incidence, in
// insertion order.
func (s *Store) ListByIncidence(_ context.Context, incidenceID string) ([]*notify.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*notify.Record
	for _, r := range s.records {
		if r.IncidenceID == incidenceID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
