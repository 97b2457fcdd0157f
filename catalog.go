package recdex

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recdex/internal/repository/catalog"
	"github.com/kailas-cloud/recdex/internal/usecase/recommend"
)

// Catalog is an ordered set of items with feature vectors, shared by users.
type Catalog struct {
	store  *catalog.Catalog
	rec    *recommend.Service
	logger *zap.Logger
}

// NewCatalog creates an empty catalog.
func NewCatalog(opts ...Option) *Catalog {
	cfg := &catalogConfig{logger: zap.NewNop()}
	for _, o := range opts {
		o(cfg)
	}

	store := catalog.New()
	return &Catalog{
		store:  store,
		rec:    recommend.New(store, cfg.logger.Named("recommend")),
		logger: cfg.logger,
	}
}

// AddItem inserts or overwrites an item. The first item fixes the catalog's
// dimension; a later vector of another length is rejected with ErrInvalidDimension.
func (c *Catalog) AddItem(title string, year int, features []float64) (Key, error) {
	key, err := c.store.AddItem(title, year, features)
	if err != nil {
		c.logger.Warn("item rejected",
			zap.Stringer("item", NewKey(title, year)),
			zap.Int("dimensions", c.store.Dimensions()),
			zap.Int("features", len(features)),
		)
		return Key{}, fmt.Errorf("add item: %w", err)
	}
	return key, nil
}

// Lookup resolves title and year to a key.
func (c *Catalog) Lookup(title string, year int) (Key, bool) {
	return c.store.Lookup(title, year)
}

// Len returns the number of items.
func (c *Catalog) Len() int { return c.store.Len() }

// Dump writes one line per item in insertion order, then a blank line.
func (c *Catalog) Dump(w io.Writer) error {
	if err := c.store.Dump(w); err != nil {
		return fmt.Errorf("dump catalog: %w", err)
	}
	return nil
}
