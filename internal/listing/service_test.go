package listing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func villageRows(n int) []Row {
	rows := make([]Row, 0, n)
	for i := 1; i <= n; i++ {
		district := "Madurai"
		if i%2 == 0 {
			district = "Theni"
		}
		rows = append(rows, Row{"id": i, "name": fmt.Sprintf("Village %02d", i), "district": district})
	}
	return rows
}

func TestListClampsPastTheEnd(t *testing.T) {
	store := Rows(villageRows(17)...)
	l := NewLister[Row](Villages, store, StaticSettings{"villages_per_page": "15"}, nil)

	res, err := l.List(context.Background(), FilterSpec{Page: 3})
	require.NoError(t, err)

	assert.Equal(t, int64(17), res.TotalCount)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, 2, res.CurrentPage)
	assert.Equal(t, 15, res.PageSize)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Village 16", res.Items[0]["name"])
	assert.Equal(t, "Village 17", res.Items[1]["name"])
}

func TestListEmptyStillReportsOnePage(t *testing.T) {
	l := NewLister[Row](Villages, Rows(), nil, nil)

	res, err := l.List(context.Background(), FilterSpec{Page: 9})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 1, res.CurrentPage)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, Villages.DefaultPageSize, res.PageSize)
}

func TestListFacetsIgnoreSelectedCategory(t *testing.T) {
	l := NewLister[Row](Villages, Rows(villageRows(5)...), nil, nil)

	res, err := l.List(context.Background(), FilterSpec{Category: "theni", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TotalCount)
	assert.Equal(t, []GroupCount{{Value: "Madurai", Count: 3}, {Value: "Theni", Count: 2}}, res.Facets)
}

func TestListResolvesCategorySlug(t *testing.T) {
	e := Businesses
	e.ResolveCategory = func(_ context.Context, slug string) (any, bool, error) {
		switch slug {
		case "hardware":
			return 7, true, nil
		case "broken":
			return nil, false, errors.New("lookup failed")
		}
		return nil, false, nil
	}
	store := Rows(
		Row{"id": 1, "name": "Anbu Hardware", "category_id": 7, "status": "published", "is_featured": false},
		Row{"id": 2, "name": "Bala Hardware", "category_id": 7, "status": "published", "is_featured": true},
		Row{"id": 3, "name": "Chola Tailors", "category_id": 3, "status": "published", "is_featured": false},
		Row{"id": 4, "name": "Hidden Hardware", "category_id": 7, "status": "draft", "is_featured": false},
	)
	l := NewLister[Row](e, store, nil, nil)

	res, err := l.List(context.Background(), FilterSpec{Category: "hardware", Page: 1})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	// featured rows come first regardless of the chosen sort
	assert.Equal(t, 2, res.Items[0]["id"])
	assert.Equal(t, 1, res.Items[1]["id"])

	res, err = l.List(context.Background(), FilterSpec{Category: "unknown", Page: 1})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(0), res.TotalCount)
	assert.Equal(t, 1, res.TotalPages)

	_, err = l.List(context.Background(), FilterSpec{Category: "broken", Page: 1})
	assert.ErrorContains(t, err, "lookup failed")
}

type failingStore struct {
	MemoryStore[Row]
	countErr error
}

func (f *failingStore) Count(context.Context, Predicate) (int64, error) {
	return 0, f.countErr
}

func TestListPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection reset")
	l := NewLister[Row](News, &failingStore{countErr: boom}, nil, nil)

	_, err := l.List(context.Background(), FilterSpec{Page: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestListRespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewLister[Row](News, Rows(Row{"title": "x", "status": "published"}), nil, nil)
	_, err := l.List(ctx, FilterSpec{Page: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetAndTotal(t *testing.T) {
	store := Rows(
		Row{"id": 1, "slug": "open-day", "title": "Open day", "status": "published"},
		Row{"id": 2, "slug": "draft-day", "title": "Draft day", "status": "draft"},
	)
	l := NewLister[Row](Events, store, nil, nil)

	row, err := l.Get(context.Background(), "open-day")
	require.NoError(t, err)
	assert.Equal(t, "Open day", row["title"])

	_, err = l.Get(context.Background(), "draft-day")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	total, err := l.Total(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestListHugePageClampsToLastPage(t *testing.T) {
	l := NewLister[Row](Villages, Rows(villageRows(17)...), StaticSettings{"villages_per_page": "15"}, nil)

	for _, raw := range []string{"9223372036854775807", "99999999999999999999"} {
		t.Run(raw, func(t *testing.T) {
			res, err := l.List(context.Background(), FilterSpec{Page: ParsePage(raw)})
			require.NoError(t, err)
			assert.Equal(t, 2, res.CurrentPage)
			require.Len(t, res.Items, 2)
			assert.Equal(t, "Village 16", res.Items[0]["name"])
		})
	}
}

func TestMemoryStoreRejectsNegativeWindow(t *testing.T) {
	_, err := Rows(villageRows(3)...).FindMany(context.Background(), Query{Where: True{}, Skip: -24, Take: 12})
	assert.Error(t, err)
}

// keyRecorder remembers the predicate of the last detail lookup.
type keyRecorder struct {
	*MemoryStore[Row]
	where Predicate
}

func (k *keyRecorder) First(ctx context.Context, where Predicate) (Row, error) {
	k.where = where
	return k.MemoryStore.First(ctx, where)
}

func TestGetByNumericID(t *testing.T) {
	store := &keyRecorder{MemoryStore: Rows(
		Row{"id": int64(2), "title": "Driver", "status": "published"},
	)}
	l := NewLister[Row](Jobs, store, nil, nil)

	row, err := l.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Driver", row["title"])
	assert.Equal(t, And{Jobs.StatusPredicate(), Equals{Field: "id", Value: int64(2)}}, store.where)

	for _, key := range []string{"abc", "2x", "", "99999999999999999999"} {
		store.where = nil
		_, err := l.Get(context.Background(), key)
		assert.ErrorIs(t, err, ErrNotFound, "key %q", key)
		assert.Nil(t, store.where, "key %q reached the store", key)
	}
}
