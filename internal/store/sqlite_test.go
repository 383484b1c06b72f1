package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sniftern/internguard/internal/company"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "internguard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func sampleRecord(name string) *company.CompanyRecord {
	rec := company.NewRecord(name)
	rec.Real.Entries = append(rec.Real.Entries, company.Entry{
		Website:         "acme.com",
		Location:        "Remote",
		Timestamp:       time.Now().UTC(),
		ConfidenceScore: 91.5,
	})
	rec.RealCount = 1
	rec.Real.PatternMatches = append(rec.Real.PatternMatches, "verified_domain")
	rec.Recompute()
	return rec
}

func TestSQLite_RoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	want := sampleRecord("Acme")
	require.NoError(t, s.Insert(ctx, want))

	got, err := s.FindByName(ctx, "Acme")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, got)
}

func TestSQLite_FindByNameExact_CaseInsensitive(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, sampleRecord("Acme")))

	got, err := s.FindByNameExact(ctx, "ACME")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Acme", got.CompanyName)

	got, err = s.FindByNameExact(ctx, "Acme Robotics")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_FindByName_CaseSensitive(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, sampleRecord("Acme")))

	got, err := s.FindByName(ctx, "ACME")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_ListNames_InsertionOrder(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	for _, name := range []string{"Charlie", "Alpha", "Bravo"} {
		require.NoError(t, s.Insert(ctx, company.NewRecord(name)))
	}

	names, err := s.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Charlie", "Alpha", "Bravo"}, names)
}

func TestSQLite_Replace(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	rec := sampleRecord("Acme")
	require.NoError(t, s.Insert(ctx, rec))

	rec.Fake.Entries = append(rec.Fake.Entries, company.Entry{Website: "unknown", Location: "Mumbai", Timestamp: time.Now().UTC()})
	rec.FakeCount = 1
	rec.Recompute()
	require.NoError(t, s.Replace(ctx, rec.ID, rec))

	got, err := s.FindByName(ctx, "Acme")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.TotalCount)
	assert.Equal(t, 50.0, got.FraudPercentage)
}

func TestSQLite_Replace_NotFound(t *testing.T) {
	s := newTestSQLite(t)

	err := s.Replace(context.Background(), "missing-id", sampleRecord("Acme"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_FindAll_Count(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, s.Insert(ctx, sampleRecord("Acme")))
	require.NoError(t, s.Insert(ctx, sampleRecord("Globex")))

	all, err = s.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSQLite_FindWhere(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	clean := sampleRecord("Clean Co")
	require.NoError(t, s.Insert(ctx, clean))

	risky := company.NewRecord("Risky Co")
	risky.Fake.Entries = append(risky.Fake.Entries, company.Entry{Website: "unknown", Timestamp: time.Now().UTC()})
	risky.FakeCount = 1
	risky.Recompute()
	require.NoError(t, s.Insert(ctx, risky))

	frauds, err := s.FindWhere(ctx, func(r *company.CompanyRecord) bool {
		return r.FraudPercentage > 0
	})
	require.NoError(t, err)
	require.Len(t, frauds, 1)
	assert.Equal(t, "Risky Co", frauds[0].CompanyName)
}
