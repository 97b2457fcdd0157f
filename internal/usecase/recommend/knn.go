package recommend

import (
	"fmt"
	"sort"

	"github.com/kailas-cloud/recdex/internal/domain"
	"github.com/kailas-cloud/recdex/internal/domain/item"
	"github.com/kailas-cloud/recdex/internal/domain/rating"
	"github.com/kailas-cloud/recdex/internal/domain/vector"
	"github.com/kailas-cloud/recdex/internal/metrics"
)

// Neighbor is a rated item that took part in a prediction.
type Neighbor struct {
	Key          item.Key
	Similarity   float64
	Rating       float64
	Contribution float64 // Rating * Similarity
}

// Explanation breaks a k-NN prediction down into its neighbors.
// Prediction = sum(Contribution) / sum(Similarity), or 0 when the denominator is 0.
type Explanation struct {
	Target     item.Key
	K          int // effective neighborhood size after clamping
	Prediction float64
	Neighbors  []Neighbor
}

// Explain returns the prediction for target together with the neighbors it used.
// Fails with domain.ErrNotFound if target is not in the catalog.
func (s *Service) Explain(ratings rating.Ratings, target item.Key, k int) (Explanation, error) {
	features, ok := s.catalog.Features(target)
	if !ok {
		return Explanation{}, fmt.Errorf("predict %s: %w", target, domain.ErrNotFound)
	}
	exp := s.explain(s.catalog.Entries(), ratings, features, k)
	exp.Target = target
	return exp, nil
}

// explain runs the k-NN prediction over entries. Rated items missing from the
// catalog have no features and are not neighbors. k is clamped to [0, neighbors].
func (s *Service) explain(entries []item.Entry, ratings rating.Ratings, target []float64, k int) Explanation {
	if len(ratings) == 0 {
		metrics.PredictionNeighbors.Observe(0)
		return Explanation{}
	}

	pairs := make([]Neighbor, 0, len(ratings))
	for _, e := range entries {
		r, ok := ratings[e.Key]
		if !ok {
			continue
		}
		pairs = append(pairs, Neighbor{
			Key:        e.Key,
			Similarity: vector.CosineSimilarity(target, e.Features),
			Rating:     r,
		})
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Similarity > pairs[j].Similarity
	})

	kEff := min(max(k, 0), len(pairs))
	metrics.PredictionNeighbors.Observe(float64(kEff))

	var top, bottom float64
	used := pairs[:kEff]
	for i := range used {
		used[i].Contribution = used[i].Rating * used[i].Similarity
		top += used[i].Contribution
		bottom += used[i].Similarity
	}

	exp := Explanation{K: kEff, Neighbors: used}
	if bottom != 0 {
		exp.Prediction = top / bottom
	}
	return exp
}
