package users

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recdex/internal/domain"
	"github.com/kailas-cloud/recdex/internal/domain/algorithm"
	"github.com/kailas-cloud/recdex/internal/domain/batch"
	"github.com/kailas-cloud/recdex/internal/domain/item"
	"github.com/kailas-cloud/recdex/internal/domain/profile"
	"github.com/kailas-cloud/recdex/internal/domain/rating"
	"github.com/kailas-cloud/recdex/internal/logger"
	"github.com/kailas-cloud/recdex/internal/metrics"
	"github.com/kailas-cloud/recdex/internal/usecase/recommend"
)

// MaxBatchSize is the maximum number of items per AddItems call.
const MaxBatchSize = 100

// ItemInput is one item to add to the catalog.
type ItemInput struct {
	Title    string
	Year     int
	Features []float64
}

// RatingInput references a catalog item by title and year.
type RatingInput struct {
	Title  string
	Year   int
	Rating float64
}

// RatedItem is one rating in a user view.
type RatedItem struct {
	Key    item.Key
	Rating float64
}

// View is a read-only snapshot of a profile. Ratings follow catalog order.
type View struct {
	Name    string
	Ratings []RatedItem
}

// Stats summarizes the shared state.
type Stats struct {
	Items      int
	Dimensions int
	Users      int
}

// Service manages named profiles that share one catalog.
// It serializes access to the catalog and profiles, which do no locking themselves.
type Service struct {
	mu      sync.RWMutex
	catalog Catalog
	rec     Recommender
	users   map[string]*profile.Profile
}

// New creates a users service over a shared catalog.
func New(catalog Catalog, rec Recommender) *Service {
	return &Service{
		catalog: catalog,
		rec:     rec,
		users:   make(map[string]*profile.Profile),
	}
}

// AddItem inserts or overwrites a catalog item.
func (s *Service) AddItem(ctx context.Context, title string, year int, features []float64) (item.Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := s.catalog.AddItem(title, year, features)
	if err != nil {
		logger.FromContext(ctx).Warn("item rejected",
			zap.String("title", title),
			zap.Int("year", year),
			zap.Error(err),
		)
		return item.Key{}, fmt.Errorf("add item: %w", err)
	}
	metrics.CatalogItems.Set(float64(s.catalog.Len()))
	return key, nil
}

// AddItems adds items in order with per-item error reporting. A rejected item
// does not stop the rest. The whole batch fails when it exceeds MaxBatchSize.
func (s *Service) AddItems(ctx context.Context, items []ItemInput) []batch.Result {
	results := make([]batch.Result, len(items))

	if len(items) > MaxBatchSize {
		for i, in := range items {
			results[i] = batch.NewError(
				item.New(in.Title, in.Year),
				fmt.Errorf("batch size exceeds %d: %w", MaxBatchSize, domain.ErrInvalidRequest),
			)
		}
		return results
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var failed int
	for i, in := range items {
		key, err := s.catalog.AddItem(in.Title, in.Year, in.Features)
		if err != nil {
			failed++
			results[i] = batch.NewError(item.New(in.Title, in.Year), fmt.Errorf("add item: %w", err))
			continue
		}
		results[i] = batch.NewOK(key)
	}
	metrics.CatalogItems.Set(float64(s.catalog.Len()))

	logger.FromContext(ctx).Info("batch add",
		zap.Int("items", len(items)),
		zap.Int("failed", failed),
	)
	return results
}

// Items returns catalog entries in insertion order.
func (s *Service) Items(_ context.Context) []item.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.catalog.Entries()
	out := make([]item.Entry, len(entries))
	for i, e := range entries {
		out[i] = item.Entry{Key: e.Key, Features: append([]float64(nil), e.Features...)}
	}
	return out
}

// Lookup resolves (title, year) to a catalog key.
func (s *Service) Lookup(_ context.Context, title string, year int) (item.Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.catalog.Lookup(title, year)
	if !ok {
		return item.Key{}, fmt.Errorf("item %s: %w", item.New(title, year), domain.ErrNotFound)
	}
	return key, nil
}

// Dump writes the catalog dump.
func (s *Service) Dump(_ context.Context, w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.catalog.Dump(w); err != nil {
		return fmt.Errorf("dump catalog: %w", err)
	}
	return nil
}

// Create registers a profile. Every initial rating must reference a catalog item.
func (s *Service) Create(ctx context.Context, name string, initial []RatingInput) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[name]; ok {
		return View{}, fmt.Errorf("user %q: %w", name, domain.ErrUserAlreadyExists)
	}

	ratings := make(rating.Ratings, len(initial))
	for _, in := range initial {
		key, ok := s.catalog.Lookup(in.Title, in.Year)
		if !ok {
			return View{}, fmt.Errorf("rating for %s: %w", item.New(in.Title, in.Year), domain.ErrNotFound)
		}
		ratings[key] = in.Rating
	}

	p := profile.New(name, ratings)
	s.users[name] = p

	logger.FromContext(ctx).Info("user created",
		zap.String("user", name),
		zap.Int("ratings", p.Len()),
	)
	return s.view(p), nil
}

// Get returns a snapshot of the named profile.
func (s *Service) Get(_ context.Context, name string) (View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.lookupUser(name)
	if err != nil {
		return View{}, err
	}
	return s.view(p), nil
}

// List returns all user names, sorted.
func (s *Service) List(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.users))
	for n := range s.users {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AddAndRate adds (or overwrites) a catalog item, then records the user's rating for it.
// The catalog change is visible to every profile. The returned view is taken
// under the same lock as the write.
func (s *Service) AddAndRate(
	ctx context.Context, name, title string, year int, features []float64, value float64,
) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.lookupUser(name)
	if err != nil {
		return View{}, err
	}

	key, err := s.catalog.AddItem(title, year, features)
	if err != nil {
		return View{}, fmt.Errorf("add item: %w", err)
	}
	p.Rate(key, value)
	metrics.CatalogItems.Set(float64(s.catalog.Len()))

	logger.FromContext(ctx).Debug("item rated",
		zap.String("user", name),
		zap.Stringer("item", key),
		zap.Float64("rating", value),
	)
	return s.view(p), nil
}

// Recommend returns the single best unrated item for the user.
// ok is false when no recommendation is possible.
func (s *Service) Recommend(
	_ context.Context, name string, algo algorithm.Algorithm, k int,
) (key item.Key, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.lookupUser(name)
	if err != nil {
		return item.Key{}, false, err
	}

	switch algo {
	case algorithm.Content:
		key, ok = s.rec.ByContent(p.View())
	case algorithm.CF:
		key, ok = s.rec.ByCF(p.View(), k)
	case algorithm.Hybrid:
		key, ok = s.rec.ByHybrid(p.View(), k)
	default:
		return item.Key{}, false, fmt.Errorf("%w: unknown algorithm %q", domain.ErrInvalidRequest, algo)
	}
	return key, ok, nil
}

// Rank returns up to limit unrated items for the user, best first.
func (s *Service) Rank(
	_ context.Context, name string, algo algorithm.Algorithm, k, limit int,
) ([]recommend.Scored, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.lookupUser(name)
	if err != nil {
		return nil, err
	}
	scored, err := s.rec.Rank(p.View(), algo, k, limit)
	if err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}
	return scored, nil
}

// Predict resolves (title, year) and predicts the user's rating for it.
// Fails with domain.ErrNotFound when the item does not resolve.
func (s *Service) Predict(
	_ context.Context, name, title string, year, k int,
) (recommend.Explanation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.lookupUser(name)
	if err != nil {
		return recommend.Explanation{}, err
	}
	key, ok := s.catalog.Lookup(title, year)
	if !ok {
		return recommend.Explanation{}, fmt.Errorf("item %s: %w", item.New(title, year), domain.ErrNotFound)
	}
	exp, err := s.rec.Explain(p.View(), key, k)
	if err != nil {
		return recommend.Explanation{}, fmt.Errorf("explain: %w", err)
	}
	return exp, nil
}

// Stats reports catalog and registry sizes.
func (s *Service) Stats(_ context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		Items:      s.catalog.Len(),
		Dimensions: s.catalog.Dimensions(),
		Users:      len(s.users),
	}
}

func (s *Service) lookupUser(name string) (*profile.Profile, error) {
	p, ok := s.users[name]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", name, domain.ErrUserNotFound)
	}
	return p, nil
}

func (s *Service) view(p *profile.Profile) View {
	ratings := p.View()
	out := View{Name: p.Name(), Ratings: make([]RatedItem, 0, len(ratings))}
	for _, e := range s.catalog.Entries() {
		if r, ok := ratings[e.Key]; ok {
			out.Ratings = append(out.Ratings, RatedItem{Key: e.Key, Rating: r})
		}
	}
	return out
}
