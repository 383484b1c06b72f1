// Package store provides the persistence backends for company
// records: SQLite, Postgres, and an ephemeral in-memory store.
package store

import (
	"context"
	"strings"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/sniftern/internguard/internal/company"
)

// MemStore is an in-memory company.Store. It keeps insertion order
// and hands out deep copies, so it honors the same snapshot contract
// as the durable backends. Useful for tests and throwaway runs.
type MemStore struct {
	mu      sync.RWMutex
	records []*company.CompanyRecord
}

// NewMem creates an empty in-memory store.
func NewMem() *MemStore {
	return &MemStore{}
}

func (s *MemStore) FindByNameExact(_ context.Context, name string) (*company.CompanyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if strings.EqualFold(r.CompanyName, name) {
			return r.Clone(), nil
		}
	}
	return nil, nil
}

func (s *MemStore) FindByName(_ context.Context, name string) (*company.CompanyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.CompanyName == name {
			return r.Clone(), nil
		}
	}
	return nil, nil
}

func (s *MemStore) ListNames(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.records))
	for _, r := range s.records {
		names = append(names, r.CompanyName)
	}
	return names, nil
}

func (s *MemStore) Insert(_ context.Context, rec *company.CompanyRecord) error {
	if rec.ID == "" {
		return eris.New("memstore: insert: record id is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == rec.ID {
			return eris.Errorf("memstore: insert: duplicate id %s", rec.ID)
		}
	}
	s.records = append(s.records, rec.Clone())
	return nil
}

func (s *MemStore) Replace(_ context.Context, id string, rec *company.CompanyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			s.records[i] = rec.Clone()
			return nil
		}
	}
	return eris.Errorf("memstore: replace: record not found: %s", id)
}

func (s *MemStore) FindAll(_ context.Context) ([]company.CompanyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]company.CompanyRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, *r.Clone())
	}
	return out, nil
}

func (s *MemStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *MemStore) FindWhere(ctx context.Context, pred func(*company.CompanyRecord) bool) ([]company.CompanyRecord, error) {
	all, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]company.CompanyRecord, 0, len(all))
	for i := range all {
		if pred(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *MemStore) Migrate(context.Context) error { return nil }

func (s *MemStore) Close() error { return nil }
