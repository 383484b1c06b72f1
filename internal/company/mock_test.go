package company

import (
	"context"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
)

// fakeStore is an in-memory Store for unit tests. It keeps insertion
// order and hands out clones, matching the contract real backends
// implement.
type fakeStore struct {
	mu      sync.RWMutex
	records []*CompanyRecord

	// failWrites makes Insert/Replace fail to simulate an
	// unavailable store.
	failWrites bool
}

func newFakeStore() *fakeStore { return &fakeStore{} }

func (s *fakeStore) FindByNameExact(_ context.Context, name string) (*CompanyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if strings.EqualFold(r.CompanyName, name) {
			return r.Clone(), nil
		}
	}
	return nil, nil
}

func (s *fakeStore) FindByName(_ context.Context, name string) (*CompanyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.CompanyName == name {
			return r.Clone(), nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListNames(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.records))
	for _, r := range s.records {
		names = append(names, r.CompanyName)
	}
	return names, nil
}

func (s *fakeStore) Insert(_ context.Context, rec *CompanyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return eris.New("fake store: writes unavailable")
	}
	s.records = append(s.records, rec.Clone())
	return nil
}

func (s *fakeStore) Replace(_ context.Context, id string, rec *CompanyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return eris.New("fake store: writes unavailable")
	}
	for i, r := range s.records {
		if r.ID == id {
			s.records[i] = rec.Clone()
			return nil
		}
	}
	return eris.Errorf("fake store: record not found: %s", id)
}

func (s *fakeStore) FindAll(_ context.Context) ([]CompanyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CompanyRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, *r.Clone())
	}
	return out, nil
}

func (s *fakeStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *fakeStore) FindWhere(ctx context.Context, pred func(*CompanyRecord) bool) ([]CompanyRecord, error) {
	all, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []CompanyRecord
	for i := range all {
		if pred(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *fakeStore) Migrate(context.Context) error { return nil }
func (s *fakeStore) Close() error                  { return nil }
