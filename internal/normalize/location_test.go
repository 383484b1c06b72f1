package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLocation_Empty(t *testing.T) {
	assert.Equal(t, Unknown, ClassifyLocation(""))
	assert.Equal(t, Unknown, ClassifyLocation("   "))
}

func TestClassifyLocation_PassThrough(t *testing.T) {
	assert.Equal(t, "Remote", ClassifyLocation("Remote"))
	assert.Equal(t, "Hybrid", ClassifyLocation("Hybrid"))
}

func TestClassifyLocation_RemoteKeywords(t *testing.T) {
	assert.Equal(t, "Remote", ClassifyLocation("100% remote"))
	assert.Equal(t, "Remote", ClassifyLocation("Virtual internship"))
	assert.Equal(t, "Remote", ClassifyLocation("Online"))
	assert.Equal(t, "Remote", ClassifyLocation("Work From Home"))
	assert.Equal(t, "Remote", ClassifyLocation("WFH only"))
}

func TestClassifyLocation_Hybrid(t *testing.T) {
	assert.Equal(t, "Hybrid", ClassifyLocation("hybrid - Bangalore"))
}

func TestClassifyLocation_RemoteBeatsHybrid(t *testing.T) {
	// Remote check runs first when both keywords appear.
	assert.Equal(t, "Remote", ClassifyLocation("hybrid/remote"))
}

func TestClassifyLocation_LiteralOnsite(t *testing.T) {
	assert.Equal(t, "Austin, TX", ClassifyLocation("  Austin, TX "))
	assert.Equal(t, "Mumbai", ClassifyLocation("Mumbai"))
}
