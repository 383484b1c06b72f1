package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObservation_IsReal(t *testing.T) {
	assert.True(t, Observation{Verdict: "REAL"}.IsReal())
	assert.True(t, Observation{Verdict: "real"}.IsReal())
	assert.True(t, Observation{Verdict: " REAL (92% confidence)"}.IsReal())
	assert.True(t, Observation{Verdict: "REAL_INTERNSHIP"}.IsReal())
}

func TestObservation_IsFake(t *testing.T) {
	assert.False(t, Observation{Verdict: "FAKE"}.IsReal())
	assert.False(t, Observation{Verdict: "FAKE - high risk"}.IsReal())
	assert.False(t, Observation{Verdict: ""}.IsReal())
	assert.False(t, Observation{Verdict: "UNREAL"}.IsReal())
}
