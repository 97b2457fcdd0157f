package users

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/recdex/internal/domain"
	"github.com/kailas-cloud/recdex/internal/domain/algorithm"
	"github.com/kailas-cloud/recdex/internal/domain/batch"
	"github.com/kailas-cloud/recdex/internal/domain/item"
	"github.com/kailas-cloud/recdex/internal/repository/catalog"
	"github.com/kailas-cloud/recdex/internal/usecase/recommend"
)

func newService(t *testing.T) *Service {
	t.Helper()
	c := catalog.New()
	return New(c, recommend.New(c, nil))
}

func seed(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()
	for _, e := range []struct {
		title    string
		features []float64
	}{
		{"A", []float64{1, 0}},
		{"B", []float64{0, 1}},
		{"C", []float64{1, 1}},
	} {
		_, err := svc.AddItem(ctx, e.title, 2000, e.features)
		require.NoError(t, err)
	}
}

func TestAddItem_InvalidDimension(t *testing.T) {
	svc := newService(t)
	seed(t, svc)

	_, err := svc.AddItem(context.Background(), "D", 2000, []float64{1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidDimension))
	assert.Equal(t, 3, svc.Stats(context.Background()).Items)
}

func TestLookup(t *testing.T) {
	svc := newService(t)
	seed(t, svc)
	ctx := context.Background()

	key, err := svc.Lookup(ctx, "B", 2000)
	require.NoError(t, err)
	assert.Equal(t, item.New("B", 2000), key)

	_, err = svc.Lookup(ctx, "B", 1999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCreate(t *testing.T) {
	svc := newService(t)
	seed(t, svc)
	ctx := context.Background()

	view, err := svc.Create(ctx, "alice", []RatingInput{
		{Title: "B", Year: 2000, Rating: 1},
		{Title: "A", Year: 2000, Rating: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Name)
	require.Len(t, view.Ratings, 2)
	assert.Equal(t, item.New("A", 2000), view.Ratings[0].Key, "ratings follow catalog order")

	_, err = svc.Create(ctx, "alice", nil)
	assert.True(t, errors.Is(err, domain.ErrUserAlreadyExists))

	_, err = svc.Create(ctx, "bob", []RatingInput{{Title: "Z", Year: 1, Rating: 3}})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = svc.Get(ctx, "bob")
	assert.True(t, errors.Is(err, domain.ErrUserNotFound), "failed create must not register the user")
}

func TestRecommend(t *testing.T) {
	svc := newService(t)
	seed(t, svc)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", []RatingInput{
		{Title: "A", Year: 2000, Rating: 5},
		{Title: "B", Year: 2000, Rating: 1},
	})
	require.NoError(t, err)

	for _, algo := range algorithm.All {
		key, ok, err := svc.Recommend(ctx, "alice", algo, 2)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, item.New("C", 2000), key)
	}

	_, _, err = svc.Recommend(ctx, "alice", "random", 2)
	assert.True(t, errors.Is(err, domain.ErrInvalidRequest))

	_, _, err = svc.Recommend(ctx, "nobody", algorithm.Content, 2)
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestRecommend_EmptyRatings(t *testing.T) {
	svc := newService(t)
	seed(t, svc)
	ctx := context.Background()

	_, err := svc.Create(ctx, "empty", nil)
	require.NoError(t, err)

	for _, algo := range algorithm.All {
		_, ok, err := svc.Recommend(ctx, "empty", algo, 3)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	exp, err := svc.Predict(ctx, "empty", "A", 2000, 3)
	require.NoError(t, err)
	assert.Zero(t, exp.Prediction)
}

func TestAddAndRate_SharedCatalog(t *testing.T) {
	svc := newService(t)
	seed(t, svc)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", []RatingInput{{Title: "A", Year: 2000, Rating: 4}})
	require.NoError(t, err)

	rated, err := svc.AddAndRate(ctx, "alice", "New", 2024, []float64{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, rated.Ratings, 1)
	assert.Equal(t, item.New("New", 2024), rated.Ratings[0].Key)
	assert.InDelta(t, 3.0, rated.Ratings[0].Rating, 1e-12)

	view, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, rated, view)

	// bob sees alice's item immediately
	exp, err := svc.Predict(ctx, "bob", "New", 2024, 1)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, exp.Prediction, 1e-12)

	_, err = svc.AddAndRate(ctx, "alice", "Bad", 2024, []float64{1, 0, 0}, 3)
	assert.True(t, errors.Is(err, domain.ErrInvalidDimension))
	_, err = svc.AddAndRate(ctx, "ghost", "X", 1, []float64{1, 0}, 3)
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestPredict_NotFound(t *testing.T) {
	svc := newService(t)
	seed(t, svc)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", []RatingInput{{Title: "A", Year: 2000, Rating: 4}})
	require.NoError(t, err)

	_, err = svc.Predict(ctx, "alice", "Missing", 1900, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRank(t *testing.T) {
	svc := newService(t)
	seed(t, svc)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", []RatingInput{{Title: "A", Year: 2000, Rating: 4}})
	require.NoError(t, err)

	ranked, err := svc.Rank(ctx, "alice", algorithm.CF, 1, 1)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, item.New("C", 2000), ranked[0].Key)
}

func TestDumpAndStats(t *testing.T) {
	svc := newService(t)
	seed(t, svc)
	ctx := context.Background()
	_, err := svc.Create(ctx, "alice", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Dump(ctx, &buf))
	assert.Equal(t, "A (2000)\nB (2000)\nC (2000)\n\n", buf.String())

	assert.Equal(t, Stats{Items: 3, Dimensions: 2, Users: 1}, svc.Stats(ctx))
	assert.Equal(t, []string{"alice"}, svc.List(ctx))
}

func TestConcurrentAccess(t *testing.T) {
	svc := newService(t)
	seed(t, svc)
	ctx := context.Background()
	_, err := svc.Create(ctx, "alice", []RatingInput{{Title: "A", Year: 2000, Rating: 5}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.AddAndRate(ctx, "alice", "T", 3000+i, []float64{float64(i), 1}, float64(i))
		}()
		go func() {
			defer wg.Done()
			_, _, _ = svc.Recommend(ctx, "alice", algorithm.CF, 3)
		}()
	}
	wg.Wait()

	assert.Equal(t, 11, svc.Stats(ctx).Items)
}

func TestAddItems(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	results := svc.AddItems(ctx, []ItemInput{
		{Title: "A", Year: 2000, Features: []float64{1, 0}},
		{Title: "Bad", Year: 2000, Features: []float64{1, 0, 0}},
		{Title: "B", Year: 2000, Features: []float64{0, 1}},
	})
	require.Len(t, results, 3)
	assert.Equal(t, batch.StatusOK, results[0].Status())
	assert.Equal(t, batch.StatusError, results[1].Status())
	assert.True(t, errors.Is(results[1].Err(), domain.ErrInvalidDimension))
	assert.Equal(t, item.New("Bad", 2000), results[1].Key())
	assert.Equal(t, batch.StatusOK, results[2].Status())
	assert.Equal(t, 2, svc.Stats(ctx).Items)
}

func TestAddItems_TooLarge(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	items := make([]ItemInput, MaxBatchSize+1)
	for i := range items {
		items[i] = ItemInput{Title: "T", Year: i, Features: []float64{1}}
	}
	results := svc.AddItems(ctx, items)
	require.Len(t, results, len(items))
	for _, r := range results {
		assert.True(t, errors.Is(r.Err(), domain.ErrInvalidRequest))
	}
	assert.Zero(t, svc.Stats(ctx).Items)
}
