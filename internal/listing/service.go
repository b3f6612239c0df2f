package listing

import (
	"context"
	"fmt"
	"strconv"

	"communityportal/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Query is one page read against a collection.
type Query struct {
	Where   Predicate
	OrderBy []Order
	Skip    int
	Take    int
}

// GroupCount is one bucket of a grouped count.
type GroupCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// Store is the read surface of one entity collection.
type Store[T any] interface {
	FindMany(ctx context.Context, q Query) ([]T, error)
	Count(ctx context.Context, where Predicate) (int64, error)
	GroupBy(ctx context.Context, field string, where Predicate) ([]GroupCount, error)
	First(ctx context.Context, where Predicate) (T, error)
}

// PageResult is a page of items plus the numbers a pager needs.
type PageResult[T any] struct {
	Items       []T          `json:"items"`
	TotalCount  int64        `json:"totalCount"`
	TotalPages  int          `json:"totalPages"`
	CurrentPage int          `json:"currentPage"`
	PageSize    int          `json:"pageSize"`
	Facets      []GroupCount `json:"facets,omitempty"`
}

// Lister serves paginated listings and detail lookups for one entity.
type Lister[T any] struct {
	Entity   Entity
	Store    Store[T]
	Settings Settings
	Logger   *logger.Logger
}

// NewLister wires an entity definition to its store.
func NewLister[T any](e Entity, store Store[T], settings Settings, log *logger.Logger) *Lister[T] {
	return &Lister[T]{Entity: e, Store: store, Settings: settings, Logger: log}
}

// PageSize resolves the configured page size for the entity.
func (l *Lister[T]) PageSize(ctx context.Context) int {
	size, err := ResolvePageSize(ctx, l.Settings, l.Entity.PageSizeKey, l.Entity.DefaultPageSize)
	if err != nil {
		l.Logger.Warn("page size setting unavailable, using default", map[string]interface{}{
			"key":     l.Entity.PageSizeKey,
			"default": l.Entity.DefaultPageSize,
			"error":   err.Error(),
		})
	}
	return size
}

// List runs the items, count and facet reads concurrently and computes the
// pager. A page past the end is clamped to the last page and that page's
// rows are returned, so the reported page always matches the items.
func (l *Lister[T]) List(ctx context.Context, spec FilterSpec) (PageResult[T], error) {
	e := l.Entity
	size := l.PageSize(ctx)

	var category any
	unknownCategory := false
	if spec.HasCategory() && e.CategoryField != "" {
		category = spec.Category
		if e.ResolveCategory != nil {
			v, ok, err := e.ResolveCategory(ctx, spec.Category)
			if err != nil {
				return PageResult[T]{}, fmt.Errorf("resolve %s category %q: %w", e.Kind, spec.Category, err)
			}
			if ok {
				category = v
			} else {
				category = nil
				unknownCategory = true
			}
		}
	}

	where := BuildFilter(e, spec, category)
	if unknownCategory {
		where = And{where, Or{}}
	}
	orders := OrderBy(e, spec.Sort)

	requested := spec.Page
	if requested < 1 {
		requested = 1
	}

	var (
		items  []T
		total  int64
		facets []GroupCount
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = l.Store.FindMany(gctx, Query{Where: where, OrderBy: orders, Skip: Offset(requested, size), Take: size})
		if err != nil {
			return fmt.Errorf("find %s: %w", e.Kind, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = l.Store.Count(gctx, where)
		if err != nil {
			return fmt.Errorf("count %s: %w", e.Kind, err)
		}
		return nil
	})
	if e.CategoryField != "" {
		g.Go(func() error {
			var err error
			facets, err = l.Store.GroupBy(gctx, e.CategoryField, e.StatusPredicate())
			if err != nil {
				return fmt.Errorf("group %s by %s: %w", e.Kind, e.CategoryField, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PageResult[T]{}, err
	}

	totalPages := TotalPages(total, size)
	current := ClampPage(requested, totalPages)
	if current != requested && total > 0 {
		var err error
		items, err = l.Store.FindMany(ctx, Query{Where: where, OrderBy: orders, Skip: Offset(current, size), Take: size})
		if err != nil {
			return PageResult[T]{}, fmt.Errorf("find %s last page: %w", e.Kind, err)
		}
	}
	if items == nil {
		items = []T{}
	}

	return PageResult[T]{
		Items:       items,
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: current,
		PageSize:    size,
		Facets:      facets,
	}, nil
}

// Get returns the single visible row identified by key, or ErrNotFound.
// Keys of id-addressed entities that are not integers name nothing.
func (l *Lister[T]) Get(ctx context.Context, key string) (T, error) {
	var value any = key
	if l.Entity.NumericKey {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			var zero T
			return zero, ErrNotFound
		}
		value = id
	}
	where := And{l.Entity.StatusPredicate(), Equals{Field: l.Entity.SlugField, Value: value}}
	return l.Store.First(ctx, where)
}

// Total counts every row regardless of status.
func (l *Lister[T]) Total(ctx context.Context) (int64, error) {
	return l.Store.Count(ctx, True{})
}
