package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSONL(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "verdicts.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadObservations(t *testing.T) {
	path := writeTempJSONL(t, `{"company_name": "Acme", "verdict": "REAL"}
{"company_name": "Scamco", "verdict": "FAKE", "patterns": ["upfront_fee"]}
`)

	observations, err := readObservations(path)
	require.NoError(t, err)
	require.Len(t, observations, 2)
	assert.Equal(t, "Acme", observations[0].CompanyName)
	assert.Equal(t, []string{"upfront_fee"}, observations[1].Patterns)
}

func TestReadObservations_SkipsMalformedLines(t *testing.T) {
	path := writeTempJSONL(t, `{"company_name": "Acme", "verdict": "REAL"}
not json at all

{"company_name": "Globex", "verdict": "FAKE"}
`)

	observations, err := readObservations(path)
	require.NoError(t, err)
	require.Len(t, observations, 2)
	assert.Equal(t, "Globex", observations[1].CompanyName)
}

func TestReadObservations_MissingFile(t *testing.T) {
	_, err := readObservations(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.Error(t, err)
}
