package company

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRecord(t *testing.T, s *fakeStore, name string) *CompanyRecord {
	t.Helper()
	rec := NewRecord(name)
	require.NoError(t, s.Insert(context.Background(), rec))
	return rec
}

func TestResolve_Unknown(t *testing.T) {
	r := NewResolver(newFakeStore())

	rec, kind, err := r.Resolve(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, MatchNone, kind)

	rec, kind, err = r.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, MatchNone, kind)
}

func TestResolve_ExactCaseInsensitive(t *testing.T) {
	s := newFakeStore()
	want := seedRecord(t, s, "Google")
	r := NewResolver(s)

	rec, kind, err := r.Resolve(context.Background(), "GOOGLE")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, want.ID, rec.ID)
	assert.Equal(t, MatchExact, kind)
}

func TestResolve_FuzzyStripsPunctuationAndSpacing(t *testing.T) {
	s := newFakeStore()
	want := seedRecord(t, s, "Quik Hire")
	r := NewResolver(s)

	rec, kind, err := r.Resolve(context.Background(), "Quik-Hire")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, want.ID, rec.ID)
	assert.Equal(t, MatchFuzzy, kind)
}

func TestResolve_NoMatchForDistinctNames(t *testing.T) {
	s := newFakeStore()
	seedRecord(t, s, "Acme")
	r := NewResolver(s)

	rec, kind, err := r.Resolve(context.Background(), "Acme Robotics")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, MatchNone, kind)
}

func TestResolve_FirstMatchWins(t *testing.T) {
	s := newFakeStore()
	first := seedRecord(t, s, "Ab C")
	seedRecord(t, s, "A Bc")
	r := NewResolver(s)

	rec, kind, err := r.Resolve(context.Background(), "ABC")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, first.ID, rec.ID)
	assert.Equal(t, MatchFuzzy, kind)
}
