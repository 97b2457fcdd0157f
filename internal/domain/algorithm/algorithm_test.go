package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	for _, a := range All {
		assert.True(t, a.IsValid(), "%q should be valid", a)
	}
	for _, a := range []Algorithm{"", "knn", "CONTENT", "collaborative"} {
		assert.False(t, a.IsValid(), "%q should be invalid", a)
	}
}

func TestConstants(t *testing.T) {
	assert.Equal(t, Algorithm("content"), Content)
	assert.Equal(t, Algorithm("cf"), CF)
	assert.Equal(t, Algorithm("hybrid"), Hybrid)
}
