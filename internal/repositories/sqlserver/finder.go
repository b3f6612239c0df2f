package sqlserver

import (
	"context"
	"fmt"

	"communityportal/internal/listing"
	"communityportal/internal/models/entities"
	"communityportal/internal/search"

	"gorm.io/gorm/clause"
)

// Finder runs bounded search lookups against one table.
type Finder struct {
	s     *Internal
	table string
}

// Find selects id, display title and slug of the first l.Limit matches.
func (f *Finder) Find(ctx context.Context, l search.Lookup) ([]search.Match, error) {
	expr, err := compile(l.Where)
	if err != nil {
		return nil, err
	}
	order, err := orderBy(l.OrderBy)
	if err != nil {
		return nil, err
	}
	id, err := column("id")
	if err != nil {
		return nil, err
	}
	title, err := column(l.TitleField)
	if err != nil {
		return nil, err
	}
	slug, err := column(l.SlugField)
	if err != nil {
		return nil, err
	}

	tx := f.s.db.WithContext(ctx).Table(f.table).
		Select("CAST(? AS nvarchar(64)) AS id, ? AS title, CAST(? AS nvarchar(200)) AS slug", id, title, slug).
		Clauses(clause.Where{Exprs: []clause.Expression{expr}})
	if len(order.Columns) > 0 {
		tx = tx.Clauses(order)
	}

	var matches []search.Match
	if err := tx.Limit(l.Limit).Scan(&matches).Error; err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", f.table, err)
	}
	return matches, nil
}

// Finders returns a search finder per portal collection.
func (s *Internal) Finders() map[listing.Kind]search.Finder {
	return map[listing.Kind]search.Finder{
		listing.KindNews:       &Finder{s: s, table: entities.News{}.TableName()},
		listing.KindJob:        &Finder{s: s, table: entities.Job{}.TableName()},
		listing.KindBusiness:   &Finder{s: s, table: entities.Business{}.TableName()},
		listing.KindVillage:    &Finder{s: s, table: entities.Village{}.TableName()},
		listing.KindEvent:      &Finder{s: s, table: entities.Event{}.TableName()},
		listing.KindScheme:     &Finder{s: s, table: entities.Scheme{}.TableName()},
		listing.KindClassified: &Finder{s: s, table: entities.Classified{}.TableName()},
	}
}
