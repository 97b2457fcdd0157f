package catalog

import (
	"bufio"
	"fmt"
	"io"

	"github.com/kailas-cloud/recdex/internal/domain"
	"github.com/kailas-cloud/recdex/internal/domain/item"
)

// Catalog is an in-memory, insertion-ordered mapping from item key to feature vector.
// All vectors share the length of the first one inserted.
//
// Catalog does no locking. Callers sharing one across goroutines must synchronize.
type Catalog struct {
	keys     []item.Key
	features map[item.Key][]float64
}

// New creates an empty Catalog.
func New() *Catalog {
	return &Catalog{features: make(map[item.Key][]float64)}
}

// AddItem inserts or overwrites the entry for (title, year) and returns its key.
// An overwrite keeps the entry's original position. The features are copied.
// Fails with domain.ErrInvalidDimension if the length differs from the catalog's.
func (c *Catalog) AddItem(title string, year int, features []float64) (item.Key, error) {
	if len(c.keys) > 0 && len(features) != c.Dimensions() {
		return item.Key{}, domain.NewDimensionError(c.Dimensions(), len(features))
	}

	key := item.New(title, year)
	if _, ok := c.features[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.features[key] = append([]float64(nil), features...)
	return key, nil
}

// Lookup returns the key for (title, year) if the catalog holds it.
func (c *Catalog) Lookup(title string, year int) (item.Key, bool) {
	key := item.New(title, year)
	if _, ok := c.features[key]; !ok {
		return item.Key{}, false
	}
	return key, true
}

// Features returns the feature vector for key. The slice is owned by the catalog.
func (c *Catalog) Features(key item.Key) ([]float64, bool) {
	f, ok := c.features[key]
	return f, ok
}

// Dimensions returns the feature-vector length, 0 for an empty catalog.
func (c *Catalog) Dimensions() int {
	if len(c.keys) == 0 {
		return 0
	}
	return len(c.features[c.keys[0]])
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.keys) }

// Keys returns the keys in insertion order.
func (c *Catalog) Keys() []item.Key {
	return append([]item.Key(nil), c.keys...)
}

// Entries returns all entries in insertion order.
// Feature slices are shared with the catalog and must not be modified.
func (c *Catalog) Entries() []item.Entry {
	out := make([]item.Entry, len(c.keys))
	for i, k := range c.keys {
		out[i] = item.Entry{Key: k, Features: c.features[k]}
	}
	return out
}

// Dump writes one "title (year)" line per entry in insertion order,
// followed by a blank line.
func (c *Catalog) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, k := range c.keys {
		if _, err := fmt.Fprintln(bw, k.String()); err != nil {
			return fmt.Errorf("write entry: %w", err)
		}
	}
	if _, err := fmt.Fprintln(bw); err != nil {
		return fmt.Errorf("write trailer: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
