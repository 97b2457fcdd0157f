package profile

import (
	"github.com/kailas-cloud/recdex/internal/domain/item"
	"github.com/kailas-cloud/recdex/internal/domain/rating"
)

// Profile is a named user and the ratings they have given.
// The catalog the keys refer to is held by whoever owns the profile.
type Profile struct {
	name    string
	ratings rating.Ratings
}

// New creates a Profile. The initial ratings are copied.
func New(name string, ratings rating.Ratings) *Profile {
	return &Profile{name: name, ratings: ratings.Clone()}
}

// Name returns the user name.
func (p *Profile) Name() string { return p.name }

// Ratings returns a copy of the user's ratings.
func (p *Profile) Ratings() rating.Ratings { return p.ratings.Clone() }

// View returns the ratings without copying. Callers must not modify the result.
func (p *Profile) View() rating.Ratings { return p.ratings }

// Rate records (or replaces) the rating for key.
func (p *Profile) Rate(key item.Key, value float64) {
	p.ratings[key] = value
}

// Len returns the number of rated items.
func (p *Profile) Len() int { return len(p.ratings) }
