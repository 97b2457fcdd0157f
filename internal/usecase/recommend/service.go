package recommend

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recdex/internal/domain"
	"github.com/kailas-cloud/recdex/internal/domain/algorithm"
	"github.com/kailas-cloud/recdex/internal/domain/item"
	"github.com/kailas-cloud/recdex/internal/domain/rating"
	"github.com/kailas-cloud/recdex/internal/domain/vector"
	"github.com/kailas-cloud/recdex/internal/metrics"
)

// Scored is a candidate item with its algorithm score
// (cosine similarity for content, predicted rating for cf).
type Scored struct {
	Key   item.Key
	Score float64
}

// Service recommends unrated catalog items by content similarity or item-based k-NN.
type Service struct {
	catalog Catalog
	logger  *zap.Logger
}

// New creates a recommendation service. logger may be nil.
func New(catalog Catalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: catalog, logger: logger}
}

// ByContent returns the unrated item most similar to the user's preference vector.
// Returns false when the user has no ratings or every item is already rated.
func (s *Service) ByContent(ratings rating.Ratings) (item.Key, bool) {
	if len(ratings) == 0 {
		s.observe(algorithm.Content, 0, false)
		return item.Key{}, false
	}
	scored := s.contentScores(ratings)
	key, ok := best(scored)
	s.observe(algorithm.Content, len(scored), ok)
	if ok {
		s.logger.Debug("content recommendation",
			zap.Stringer("item", key),
			zap.Int("candidates", len(scored)),
		)
	}
	return key, ok
}

// ByCF returns the unrated item with the highest k-NN predicted rating.
// Returns false when the user has no ratings or every item is already rated.
func (s *Service) ByCF(ratings rating.Ratings, k int) (item.Key, bool) {
	if len(ratings) == 0 {
		s.observe(algorithm.CF, 0, false)
		return item.Key{}, false
	}
	scored := s.cfScores(ratings, k)
	key, ok := best(scored)
	s.observe(algorithm.CF, len(scored), ok)
	if ok {
		s.logger.Debug("cf recommendation",
			zap.Stringer("item", key),
			zap.Int("k", k),
			zap.Int("candidates", len(scored)),
		)
	}
	return key, ok
}

// PredictRating predicts the rating the user would give target from the k rated
// items most similar to it. Fails with domain.ErrNotFound if target is not in the catalog.
func (s *Service) PredictRating(ratings rating.Ratings, target item.Key, k int) (float64, error) {
	exp, err := s.Explain(ratings, target, k)
	if err != nil {
		return 0, err
	}
	return exp.Prediction, nil
}

// Rank scores every unrated item with the given algorithm and returns the best
// limit of them, highest first. Ties keep catalog order, so the first element
// is the item ByContent, ByCF or ByHybrid would pick. limit <= 0 means no limit.
func (s *Service) Rank(ratings rating.Ratings, algo algorithm.Algorithm, k, limit int) ([]Scored, error) {
	if !algo.IsValid() {
		return nil, fmt.Errorf("%w: unknown algorithm %q", domain.ErrInvalidRequest, algo)
	}
	if len(ratings) == 0 {
		return []Scored{}, nil
	}

	var scored []Scored
	switch algo {
	case algorithm.Content:
		scored = s.contentScores(ratings)
	case algorithm.CF:
		scored = s.cfScores(ratings, k)
	case algorithm.Hybrid:
		scored = s.hybridScores(ratings, k)
	}

	scored = rankStable(scored)
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// PreferenceVector builds sum(centered_rating * features) over the rated items
// present in the catalog. Its length is the catalog dimension.
func (s *Service) PreferenceVector(ratings rating.Ratings) []float64 {
	pref := make([]float64, s.catalog.Dimensions())
	for key, weight := range ratings.Centered() {
		features, ok := s.catalog.Features(key)
		if !ok {
			continue
		}
		vector.AddScaled(pref, features, weight)
	}
	return pref
}

func (s *Service) contentScores(ratings rating.Ratings) []Scored {
	pref := s.PreferenceVector(ratings)

	var scored []Scored
	for _, e := range s.catalog.Entries() {
		if ratings.Has(e.Key) {
			continue
		}
		scored = append(scored, Scored{Key: e.Key, Score: vector.CosineSimilarity(pref, e.Features)})
	}
	return scored
}

func (s *Service) cfScores(ratings rating.Ratings, k int) []Scored {
	entries := s.catalog.Entries()

	var scored []Scored
	for _, e := range entries {
		if ratings.Has(e.Key) {
			continue
		}
		exp := s.explain(entries, ratings, e.Features, k)
		scored = append(scored, Scored{Key: e.Key, Score: exp.Prediction})
	}
	return scored
}

func (s *Service) observe(algo algorithm.Algorithm, candidates int, hit bool) {
	outcome := "none"
	if hit {
		outcome = "hit"
	}
	metrics.RecommendationsTotal.WithLabelValues(string(algo), outcome).Inc()
	metrics.RecommendationCandidates.WithLabelValues(string(algo)).Observe(float64(candidates))
}

// best returns the first maximum in slice order.
func best(scored []Scored) (item.Key, bool) {
	if len(scored) == 0 {
		return item.Key{}, false
	}
	top := scored[0]
	for _, c := range scored[1:] {
		if c.Score > top.Score {
			top = c
		}
	}
	return top.Key, true
}
