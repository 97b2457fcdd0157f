package recdex

import (
	"fmt"
	"io"

	"github.com/kailas-cloud/recdex/internal/domain/profile"
)

// User is a named set of ratings against a shared Catalog.
type User struct {
	profile *profile.Profile
	catalog *Catalog
}

// NewUser creates a user. ratings is copied; cat is shared, not owned.
func NewUser(name string, ratings Ratings, cat *Catalog) *User {
	return &User{profile: profile.New(name, ratings), catalog: cat}
}

// Name returns the user's name.
func (u *User) Name() string { return u.profile.Name() }

// Ratings returns a copy of the user's ratings.
func (u *User) Ratings() Ratings { return u.profile.Ratings() }

// AddAndRate adds the item to the shared catalog, then records the rating.
// Nothing is rated when the catalog rejects the item.
func (u *User) AddAndRate(title string, year int, features []float64, value float64) error {
	key, err := u.catalog.AddItem(title, year, features)
	if err != nil {
		return err
	}
	u.profile.Rate(key, value)
	return nil
}

// GetItem resolves title and year against the shared catalog.
func (u *User) GetItem(title string, year int) (Key, bool) {
	return u.catalog.Lookup(title, year)
}

// RecommendByContent returns the unrated item most similar to the user's
// preference vector. ok is false when there is nothing to recommend.
func (u *User) RecommendByContent() (Key, bool) {
	return u.catalog.rec.ByContent(u.profile.View())
}

// RecommendByCF returns the unrated item with the highest predicted rating
// from its k nearest rated neighbors.
func (u *User) RecommendByCF(k int) (Key, bool) {
	return u.catalog.rec.ByCF(u.profile.View(), k)
}

// PredictedRating predicts the user's rating of title/year from k neighbors.
// It fails with ErrNotFound when the item is not in the catalog.
func (u *User) PredictedRating(title string, year int, k int) (float64, error) {
	key, ok := u.GetItem(title, year)
	if !ok {
		return 0, fmt.Errorf("predict %s: %w", NewKey(title, year), ErrNotFound)
	}
	return u.catalog.rec.PredictRating(u.profile.View(), key, k)
}

// Dump writes a "name: <name>" header followed by the catalog dump.
func (u *User) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "name: %s\n", u.profile.Name()); err != nil {
		return fmt.Errorf("dump user: %w", err)
	}
	return u.catalog.Dump(w)
}
