package algorithm

// Algorithm is the recommendation strategy.
type Algorithm string

// Algorithm constants.
const (
	// Content scores unrated items against the user's preference vector.
	Content Algorithm = "content"
	// CF predicts ratings by item-based k-nearest-neighbor collaborative filtering.
	CF Algorithm = "cf"
	// Hybrid fuses the Content and CF rankings via Reciprocal Rank Fusion.
	Hybrid Algorithm = "hybrid"
)

// All lists the supported algorithms.
var All = []Algorithm{Content, CF, Hybrid}

// IsValid checks if the algorithm is one of the supported values.
func (a Algorithm) IsValid() bool {
	return a == Content || a == CF || a == Hybrid
}
