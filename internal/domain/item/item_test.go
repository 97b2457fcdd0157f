package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_ValueEquality(t *testing.T) {
	a := New("Inception", 2010)
	b := New("Inception", 2010)

	assert.Equal(t, a, b)
	assert.True(t, a == b)

	m := map[Key]float64{a: 4.5}
	v, ok := m[b]
	assert.True(t, ok, "independently built key must hit the same map entry")
	assert.InDelta(t, 4.5, v, 1e-12)
}

func TestKey_DifferentFields(t *testing.T) {
	tests := []struct {
		name string
		a, b Key
	}{
		{"title differs", New("Alien", 1979), New("Aliens", 1979)},
		{"year differs", New("Dune", 1984), New("Dune", 2021)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, tt.a, tt.b)
		})
	}
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "Heat (1995)", New("Heat", 1995).String())
}

func TestKey_IsZero(t *testing.T) {
	assert.True(t, Key{}.IsZero())
	assert.False(t, New("", 1).IsZero())
}
