package sqlserver

import (
	"context"
	"errors"
	"fmt"

	"communityportal/internal/listing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Collection serves listing reads for one gorm model.
type Collection[T any] struct {
	db *gorm.DB
}

// NewCollection binds T's table.
func NewCollection[T any](s *Internal) *Collection[T] {
	return &Collection[T]{db: s.db}
}

func (c *Collection[T]) scoped(ctx context.Context, where listing.Predicate) (*gorm.DB, error) {
	expr, err := compile(where)
	if err != nil {
		return nil, err
	}
	return c.db.WithContext(ctx).Model(new(T)).Clauses(clause.Where{Exprs: []clause.Expression{expr}}), nil
}

func (c *Collection[T]) FindMany(ctx context.Context, q listing.Query) ([]T, error) {
	tx, err := c.scoped(ctx, q.Where)
	if err != nil {
		return nil, err
	}
	if len(q.OrderBy) > 0 {
		order, err := orderBy(q.OrderBy)
		if err != nil {
			return nil, err
		}
		tx = tx.Clauses(order)
	}

	var rows []T
	if err := tx.Offset(q.Skip).Limit(q.Take).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find rows: %w", err)
	}
	return rows, nil
}

func (c *Collection[T]) Count(ctx context.Context, where listing.Predicate) (int64, error) {
	tx, err := c.scoped(ctx, where)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return total, nil
}

type facetRow struct {
	FacetValue string `gorm:"column:facet_value"`
	FacetCount int64  `gorm:"column:facet_count"`
}

func (c *Collection[T]) GroupBy(ctx context.Context, field string, where listing.Predicate) ([]listing.GroupCount, error) {
	col, err := column(field)
	if err != nil {
		return nil, err
	}
	tx, err := c.scoped(ctx, where)
	if err != nil {
		return nil, err
	}

	var rows []facetRow
	err = tx.Select("? AS facet_value, COUNT(*) AS facet_count", col).
		Group(field).
		Order("facet_value").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group by %s: %w", field, err)
	}

	out := make([]listing.GroupCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, listing.GroupCount{Value: r.FacetValue, Count: r.FacetCount})
	}
	return out, nil
}

func (c *Collection[T]) First(ctx context.Context, where listing.Predicate) (T, error) {
	var row T
	tx, err := c.scoped(ctx, where)
	if err != nil {
		return row, err
	}
	err = tx.Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, listing.ErrNotFound
	}
	if err != nil {
		return row, fmt.Errorf("failed to get row: %w", err)
	}
	return row, nil
}
