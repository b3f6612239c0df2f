package listing

import (
	"fmt"
	"strings"
	"time"
)

// Predicate is a typed filter expression. The SQL repository compiles it into
// a WHERE clause; Match evaluates it against an in-memory row.
type Predicate interface {
	isPredicate()
}

// True matches every row.
type True struct{}

// And matches when every term matches. An empty And matches everything.
type And []Predicate

// Or matches when any term matches. An empty Or matches nothing.
type Or []Predicate

// Contains is a case-insensitive substring match on one column.
type Contains struct {
	Field string
	Value string
}

// Equals compares a column to a value. Fold compares strings case-insensitively.
type Equals struct {
	Field string
	Value any
	Fold  bool
}

// Range bounds a numeric column. Nil bounds impose no constraint.
type Range struct {
	Field string
	Min   *float64
	Max   *float64
}

func (True) isPredicate()     {}
func (And) isPredicate()      {}
func (Or) isPredicate()       {}
func (Contains) isPredicate() {}
func (Equals) isPredicate()   {}
func (Range) isPredicate()    {}

// Row is a record addressed by column name.
type Row map[string]any

// Match reports whether row satisfies p.
func Match(p Predicate, row Row) bool {
	switch p := p.(type) {
	case nil, True:
		return true
	case And:
		for _, term := range p {
			if !Match(term, row) {
				return false
			}
		}
		return true
	case Or:
		for _, term := range p {
			if Match(term, row) {
				return true
			}
		}
		return false
	case Contains:
		s, ok := row[p.Field].(string)
		if !ok {
			return false
		}
		return strings.Contains(strings.ToLower(s), strings.ToLower(p.Value))
	case Equals:
		v, ok := row[p.Field]
		if !ok {
			return false
		}
		if p.Fold {
			a, aok := v.(string)
			b, bok := p.Value.(string)
			return aok && bok && strings.EqualFold(a, b)
		}
		return fmt.Sprint(v) == fmt.Sprint(p.Value)
	case Range:
		n, ok := number(row[p.Field])
		if !ok {
			return false
		}
		if p.Min != nil && n < *p.Min {
			return false
		}
		if p.Max != nil && n > *p.Max {
			return false
		}
		return true
	default:
		return false
	}
}

// Compare orders two column values for in-memory sorting.
func Compare(a, b any) int {
	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	if x, ok := a.(time.Time); ok {
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	if x, ok := a.(bool); ok {
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			}
			return 1
		}
	}
	return strings.Compare(strings.ToLower(fmt.Sprint(a)), strings.ToLower(fmt.Sprint(b)))
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case *float64:
		if n == nil {
			return 0, false
		}
		return *n, true
	}
	return 0, false
}
