// Package recdex is an in-memory movie recommender.
//
// A Catalog maps (title, year) keys to feature vectors. A User holds a set of
// ratings against a shared Catalog and asks it for recommendations, either
// content-based (the item closest to the user's mean-centered preference
// vector) or collaborative (the item with the highest k-NN predicted rating).
//
//	cat := recdex.NewCatalog()
//	u := recdex.NewUser("alice", nil, cat)
//	_ = u.AddAndRate("Heat", 1995, []float64{1, 0, 1}, 5)
//	_ = u.AddAndRate("Up", 2009, []float64{0, 1, 0}, 1)
//	_, _ = cat.AddItem("Ronin", 1998, []float64{1, 0, 0.8})
//	key, ok := u.RecommendByContent()
//
// Catalog and User do no locking. Callers sharing them across goroutines must
// synchronize externally.
package recdex
