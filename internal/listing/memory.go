package listing

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is a Store backed by a slice. Rows are projected to column
// maps with toRow so the same predicates the SQL repository compiles can be
// evaluated in process. It backs tests and local runs without a database.
type MemoryStore[T any] struct {
	mu    sync.RWMutex
	items []T
	toRow func(T) Row
}

// NewMemoryStore copies items into a new store.
func NewMemoryStore[T any](items []T, toRow func(T) Row) *MemoryStore[T] {
	return &MemoryStore[T]{items: append([]T(nil), items...), toRow: toRow}
}

// Rows is a MemoryStore of plain column maps.
func Rows(rows ...Row) *MemoryStore[Row] {
	return NewMemoryStore(rows, func(r Row) Row { return r })
}

func (m *MemoryStore[T]) matching(where Predicate) []T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.items))
	for _, it := range m.items {
		if Match(where, m.toRow(it)) {
			out = append(out, it)
		}
	}
	return out
}

func (m *MemoryStore[T]) FindMany(ctx context.Context, q Query) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q.Skip < 0 || q.Take < 0 {
		return nil, fmt.Errorf("invalid window skip=%d take=%d", q.Skip, q.Take)
	}
	rows := m.matching(q.Where)
	if len(q.OrderBy) > 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := m.toRow(rows[i]), m.toRow(rows[j])
			for _, o := range q.OrderBy {
				c := Compare(a[o.Field], b[o.Field])
				if c == 0 {
					continue
				}
				if o.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	if q.Skip >= len(rows) {
		return []T{}, nil
	}
	rows = rows[q.Skip:]
	if q.Take > 0 && q.Take < len(rows) {
		rows = rows[:q.Take]
	}
	return rows, nil
}

func (m *MemoryStore[T]) Count(ctx context.Context, where Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return int64(len(m.matching(where))), nil
}

func (m *MemoryStore[T]) GroupBy(ctx context.Context, field string, where Predicate) ([]GroupCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	counts := map[string]int64{}
	for _, it := range m.matching(where) {
		v, ok := m.toRow(it)[field]
		if !ok || v == nil {
			continue
		}
		counts[fmt.Sprint(v)]++
	}
	out := make([]GroupCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, GroupCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out, nil
}

func (m *MemoryStore[T]) First(ctx context.Context, where Predicate) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	rows := m.matching(where)
	if len(rows) == 0 {
		return zero, ErrNotFound
	}
	return rows[0], nil
}
