package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sniftern/internguard/internal/config"
)

func resetIngestFlags(t *testing.T) {
	t.Helper()
	prevName, prevWebsite, prevLocation := ingestName, ingestWebsite, ingestLocation
	prevVerdict, prevConfidence := ingestVerdict, ingestConfidence
	prevPatterns, prevFile, prevTextFile := ingestPatterns, ingestFile, ingestTextFile
	t.Cleanup(func() {
		ingestName, ingestWebsite, ingestLocation = prevName, prevWebsite, prevLocation
		ingestVerdict, ingestConfidence = prevVerdict, prevConfidence
		ingestPatterns, ingestFile, ingestTextFile = prevPatterns, prevFile, prevTextFile
	})
	ingestName, ingestWebsite, ingestLocation = "", "", ""
	ingestVerdict, ingestConfidence = "", 0
	ingestPatterns, ingestFile, ingestTextFile = nil, "", ""
}

func TestBuildObservation_FromFlags(t *testing.T) {
	resetIngestFlags(t)
	ingestName = "Acme Pvt Ltd"
	ingestWebsite = "acme.com"
	ingestVerdict = "REAL"
	ingestPatterns = []string{"verified_domain"}

	obs, err := buildObservation(ingestCmd)
	require.NoError(t, err)
	assert.Equal(t, "Acme Pvt Ltd", obs.CompanyName)
	assert.Equal(t, "acme.com", obs.Website)
	assert.True(t, obs.IsReal())
	assert.Equal(t, []string{"verified_domain"}, obs.Patterns)
}

func TestBuildObservation_FromFile_FlagsOverride(t *testing.T) {
	resetIngestFlags(t)
	path := filepath.Join(t.TempDir(), "obs.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"company_name": "Globex", "verdict": "FAKE", "confidence": 80}`), 0644))

	ingestFile = path
	ingestVerdict = "REAL"

	obs, err := buildObservation(ingestCmd)
	require.NoError(t, err)
	assert.Equal(t, "Globex", obs.CompanyName)
	assert.Equal(t, "REAL", obs.Verdict)
	assert.InDelta(t, 80.0, obs.Confidence, 0.001)
}

func TestBuildObservation_FromTextFile(t *testing.T) {
	resetIngestFlags(t)
	cfg = &config.Config{
		Extract: config.ExtractConfig{Provider: "heuristic"},
	}

	path := filepath.Join(t.TempDir(), "posting.txt")
	require.NoError(t, os.WriteFile(path,
		[]byte("Company: Shadow Corp\nLocation: Remote\nEarn money fast!"), 0644))

	ingestTextFile = path
	ingestVerdict = "FAKE"

	obs, err := buildObservation(ingestCmd)
	require.NoError(t, err)
	assert.Equal(t, "Shadow Corp", obs.CompanyName)
	assert.Equal(t, "Remote", obs.Location)
}

func TestBuildObservation_MissingVerdict(t *testing.T) {
	resetIngestFlags(t)
	ingestName = "Acme"

	_, err := buildObservation(ingestCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verdict is required")
}

func TestNewExtractor_UnknownProvider(t *testing.T) {
	_, err := newExtractor(&config.Config{
		Extract: config.ExtractConfig{Provider: "psychic"},
	})
	require.Error(t, err)
}

func TestNewExtractor_AnthropicNeedsKey(t *testing.T) {
	_, err := newExtractor(&config.Config{
		Extract: config.ExtractConfig{Provider: "anthropic"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic_key")
}
