package recommend

import (
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recdex/internal/domain/algorithm"
	"github.com/kailas-cloud/recdex/internal/domain/item"
	"github.com/kailas-cloud/recdex/internal/domain/rating"
)

// rrfK is the Reciprocal Rank Fusion constant (standard value from Cormack et al. 2009).
const rrfK = 60

// ByHybrid returns the unrated item ranked best by fusing the content and CF rankings.
// Returns false when the user has no ratings or every item is already rated.
func (s *Service) ByHybrid(ratings rating.Ratings, k int) (item.Key, bool) {
	if len(ratings) == 0 {
		s.observe(algorithm.Hybrid, 0, false)
		return item.Key{}, false
	}
	scored := s.hybridScores(ratings, k)
	key, ok := best(scored)
	s.observe(algorithm.Hybrid, len(scored), ok)
	if ok {
		s.logger.Debug("hybrid recommendation",
			zap.Stringer("item", key),
			zap.Int("candidates", len(scored)),
		)
	}
	return key, ok
}

// hybridScores returns the fused score of every unrated item, in catalog order.
func (s *Service) hybridScores(ratings rating.Ratings, k int) []Scored {
	content := s.contentScores(ratings)
	return fuseRRF(content, rankStable(content), rankStable(s.cfScores(ratings, k)))
}

// rankStable sorts a copy of scored by score descending, ties in input order.
func rankStable(scored []Scored) []Scored {
	out := append([]Scored(nil), scored...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// fuseRRF merges rankings via Reciprocal Rank Fusion.
// score(d) = sum of 1/(k + rank_i(d)) for each ranking where d appears.
// The result follows the order of candidates so ties resolve the same way as
// the single-algorithm pickers.
func fuseRRF(candidates []Scored, rankings ...[]Scored) []Scored {
	fused := make(map[item.Key]float64, len(candidates))
	for _, ranking := range rankings {
		for rank, r := range ranking {
			fused[r.Key] += 1.0 / float64(rrfK+rank+1)
		}
	}

	out := make([]Scored, len(candidates))
	for i, c := range candidates {
		out[i] = Scored{Key: c.Key, Score: fused[c.Key]}
	}
	return out
}
