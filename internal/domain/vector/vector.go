// Package vector holds the dense vector math used by the recommenders.
package vector

import "math"

// CosineSimilarity returns dot(a, b) / (|a| * |b|).
// Returns 0 when the lengths differ or either vector has zero norm, so callers
// never see NaN.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Dot returns the dot product over the shorter of the two vectors.
func Dot(a, b []float64) float64 {
	n := min(len(a), len(b))
	var sum float64
	for i := range n {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm returns the Euclidean norm.
func Norm(v []float64) float64 {
	return math.Sqrt(Dot(v, v))
}

// AddScaled adds scale*src into dst element-wise.
// Elements beyond len(dst) are ignored.
func AddScaled(dst, src []float64, scale float64) {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] += scale * src[i]
	}
}
