package recdex

import (
	"github.com/kailas-cloud/recdex/internal/domain"
	"github.com/kailas-cloud/recdex/internal/domain/item"
	"github.com/kailas-cloud/recdex/internal/domain/rating"
)

// Key identifies a catalog item by title and release year.
type Key = item.Key

// Ratings maps catalog keys to a user's numeric ratings.
type Ratings = rating.Ratings

// NewKey returns the key for title and year.
func NewKey(title string, year int) Key { return item.New(title, year) }

var (
	// ErrNotFound is returned when a title/year does not resolve to a catalog item.
	ErrNotFound = domain.ErrNotFound
	// ErrInvalidDimension is returned when a feature vector's length differs from the catalog's.
	ErrInvalidDimension = domain.ErrInvalidDimension
)
