package rating

import "github.com/kailas-cloud/recdex/internal/domain/item"

// Ratings maps catalog items to the score a user gave them. No range is enforced.
type Ratings map[item.Key]float64

// Clone returns an independent copy. A nil receiver yields an empty, non-nil map.
func (r Ratings) Clone() Ratings {
	c := make(Ratings, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Has reports whether key is rated.
func (r Ratings) Has(key item.Key) bool {
	_, ok := r[key]
	return ok
}

// Mean returns the average rating, 0 for no ratings.
func (r Ratings) Mean() float64 {
	if len(r) == 0 {
		return 0
	}
	var sum float64
	for _, v := range r {
		sum += v
	}
	return sum / float64(len(r))
}

// Centered returns a copy with the mean subtracted from every rating.
// The values of the result sum to 0 up to rounding.
func (r Ratings) Centered() Ratings {
	avg := r.Mean()
	c := make(Ratings, len(r))
	for k, v := range r {
		c[k] = v - avg
	}
	return c
}
