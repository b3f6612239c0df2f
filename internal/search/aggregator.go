// Package search fans one free-text query out over every portal collection
// and merges the matches into a flat, type-tagged list.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"communityportal/internal/listing"
	"communityportal/internal/metrics"

	"golang.org/x/sync/errgroup"
)

const (
	// MinQueryLength is the trimmed rune count below which no lookup runs.
	MinQueryLength = 2
	// DefaultPerTypeLimit caps the hits contributed by one collection.
	DefaultPerTypeLimit = 5
	// DefaultTimeout bounds the whole fan-out.
	DefaultTimeout = 5 * time.Second
)

// Match is one row returned by a Finder.
type Match struct {
	ID    string `json:"id" gorm:"column:id"`
	Slug  string `json:"slug" gorm:"column:slug"`
	Title string `json:"title" gorm:"column:title"`
}

// Lookup is a bounded read against one collection.
type Lookup struct {
	Where      listing.Predicate
	OrderBy    []listing.Order
	Limit      int
	TitleField string
	SlugField  string
}

// Finder runs lookups against one collection.
type Finder interface {
	Find(ctx context.Context, l Lookup) ([]Match, error)
}

// FinderFunc adapts a function to Finder.
type FinderFunc func(ctx context.Context, l Lookup) ([]Match, error)

func (f FinderFunc) Find(ctx context.Context, l Lookup) ([]Match, error) { return f(ctx, l) }

// Hit is one tagged search result.
type Hit struct {
	Type  listing.Kind `json:"type"`
	ID    string       `json:"id"`
	Title string       `json:"title"`
	URL   string       `json:"url"`
}

// Target binds a collection's search behavior to its Finder.
type Target struct {
	Kind   listing.Kind
	Finder Finder
	// Fields are OR-matched with a case-insensitive substring test.
	Fields []string
	// TitleField is the English display title.
	TitleField string
	SlugField  string
	// Status restricts visible rows. Nil searches every row.
	Status  listing.Predicate
	OrderBy []listing.Order
	URL     func(m Match) string
}

// Aggregator runs a query over its targets concurrently.
type Aggregator struct {
	scope        string
	targets      []Target
	perTypeLimit int
	timeout      time.Duration
}

// Option customizes an Aggregator.
type Option func(*Aggregator)

// WithTimeout overrides the aggregate timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(a *Aggregator) { a.timeout = d }
}

// WithPerTypeLimit overrides the per-collection cap.
func WithPerTypeLimit(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.perTypeLimit = n
		}
	}
}

// NewAggregator builds an Aggregator. Targets keep the order given; scope
// labels its metrics.
func NewAggregator(scope string, targets []Target, opts ...Option) *Aggregator {
	a := &Aggregator{
		scope:        scope,
		targets:      targets,
		perTypeLimit: DefaultPerTypeLimit,
		timeout:      DefaultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Search returns at most perTypeLimit hits per target, grouped in target
// order. Any failed lookup fails the whole search.
func (a *Aggregator) Search(ctx context.Context, q string) ([]Hit, error) {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < MinQueryLength {
		return []Hit{}, nil
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	groups := make([][]Hit, len(a.targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range a.targets {
		g.Go(func() error {
			hits, err := a.lookup(gctx, t, q)
			metrics.SearchLookups.WithLabelValues(a.scope, string(t.Kind), metrics.Outcome(err)).Inc()
			if err != nil {
				return fmt.Errorf("search %s: %w", t.Kind, err)
			}
			groups[i] = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Hit, 0, len(a.targets)*a.perTypeLimit)
	for _, hits := range groups {
		out = append(out, hits...)
	}
	return out, nil
}

func (a *Aggregator) lookup(ctx context.Context, t Target, q string) ([]Hit, error) {
	where := listing.SearchPredicate(q, t.Fields...)
	if t.Status != nil {
		where = listing.And{t.Status, where}
	}

	matches, err := t.Finder.Find(ctx, Lookup{
		Where:      where,
		OrderBy:    t.OrderBy,
		Limit:      a.perTypeLimit,
		TitleField: t.TitleField,
		SlugField:  t.SlugField,
	})
	if err != nil {
		return nil, err
	}
	if len(matches) > a.perTypeLimit {
		matches = matches[:a.perTypeLimit]
	}

	hits := make([]Hit, 0, len(matches))
	for _, m := range matches {
		hits = append(hits, Hit{Type: t.Kind, ID: m.ID, Title: m.Title, URL: t.URL(m)})
	}
	return hits, nil
}
