package users

import (
	"io"

	"github.com/kailas-cloud/recdex/internal/domain/algorithm"
	"github.com/kailas-cloud/recdex/internal/domain/item"
	"github.com/kailas-cloud/recdex/internal/domain/rating"
	"github.com/kailas-cloud/recdex/internal/usecase/recommend"
)

// Catalog is the shared feature store every profile refers to.
type Catalog interface {
	AddItem(title string, year int, features []float64) (item.Key, error)
	Lookup(title string, year int) (item.Key, bool)
	Entries() []item.Entry
	Dimensions() int
	Len() int
	Dump(w io.Writer) error
}

// Recommender scores catalog items for a set of ratings.
type Recommender interface {
	ByContent(ratings rating.Ratings) (item.Key, bool)
	ByCF(ratings rating.Ratings, k int) (item.Key, bool)
	ByHybrid(ratings rating.Ratings, k int) (item.Key, bool)
	Explain(ratings rating.Ratings, target item.Key, k int) (recommend.Explanation, error)
	Rank(ratings rating.Ratings, algo algorithm.Algorithm, k, limit int) ([]recommend.Scored, error)
}
