package recommend

import "github.com/kailas-cloud/recdex/internal/domain/item"

// Catalog reads feature vectors in insertion order.
type Catalog interface {
	Dimensions() int
	Features(key item.Key) ([]float64, bool)
	Entries() []item.Entry
}
