package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kailas-cloud/recdex/internal/domain/item"
)

var (
	keyA = item.New("A", 2000)
	keyB = item.New("B", 2001)
	keyC = item.New("C", 2002)
)

func TestMean(t *testing.T) {
	assert.Zero(t, Ratings(nil).Mean())
	assert.InDelta(t, 3.0, Ratings{keyA: 5, keyB: 1}.Mean(), 1e-12)
}

func TestCentered(t *testing.T) {
	r := Ratings{keyA: 5, keyB: 1}
	c := r.Centered()

	assert.InDelta(t, 2.0, c[keyA], 1e-12)
	assert.InDelta(t, -2.0, c[keyB], 1e-12)
	assert.InDelta(t, 5.0, r[keyA], 1e-12, "source must not be modified")
}

func TestCentered_SumsToZero(t *testing.T) {
	sets := []Ratings{
		{keyA: 5, keyB: 1},
		{keyA: 3.7, keyB: 9.1, keyC: -2.4},
		{keyA: 7},
	}
	for _, r := range sets {
		var sum float64
		for _, v := range r.Centered() {
			sum += v
		}
		assert.InDelta(t, 0.0, sum, 1e-9)
	}
}

func TestClone(t *testing.T) {
	r := Ratings{keyA: 1}
	c := r.Clone()
	c[keyB] = 2

	assert.False(t, r.Has(keyB))
	assert.True(t, c.Has(keyA))
	assert.NotNil(t, Ratings(nil).Clone())
}
