package sqlserver

import (
	"fmt"
	"regexp"
	"strings"

	"communityportal/internal/listing"

	"gorm.io/gorm/clause"
)

var columnName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// likeEscaper escapes LIKE wildcards, including SQL Server's bracket classes.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`, `[`, `\[`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func column(name string) (clause.Column, error) {
	if !columnName.MatchString(name) {
		return clause.Column{}, fmt.Errorf("invalid column %q", name)
	}
	return clause.Column{Name: name}, nil
}

// compile turns a predicate tree into a gorm clause expression.
func compile(p listing.Predicate) (clause.Expression, error) {
	switch p := p.(type) {
	case nil, listing.True:
		return clause.Expr{SQL: "1 = 1"}, nil

	case listing.And:
		if len(p) == 0 {
			return clause.Expr{SQL: "1 = 1"}, nil
		}
		exprs, err := compileAll(p)
		if err != nil {
			return nil, err
		}
		return clause.And(exprs...), nil

	case listing.Or:
		if len(p) == 0 {
			return clause.Expr{SQL: "1 = 0"}, nil
		}
		exprs, err := compileAll(p)
		if err != nil {
			return nil, err
		}
		return clause.Or(exprs...), nil

	case listing.Contains:
		col, err := column(p.Field)
		if err != nil {
			return nil, err
		}
		pattern := "%" + escapeLike(strings.ToLower(p.Value)) + "%"
		return clause.Expr{SQL: `LOWER(?) LIKE ? ESCAPE '\'`, Vars: []interface{}{col, pattern}}, nil

	case listing.Equals:
		col, err := column(p.Field)
		if err != nil {
			return nil, err
		}
		if s, ok := p.Value.(string); ok && p.Fold {
			return clause.Expr{SQL: "LOWER(?) = ?", Vars: []interface{}{col, strings.ToLower(s)}}, nil
		}
		return clause.Eq{Column: col, Value: p.Value}, nil

	case listing.Range:
		col, err := column(p.Field)
		if err != nil {
			return nil, err
		}
		var exprs []clause.Expression
		if p.Min != nil {
			exprs = append(exprs, clause.Gte{Column: col, Value: *p.Min})
		}
		if p.Max != nil {
			exprs = append(exprs, clause.Lte{Column: col, Value: *p.Max})
		}
		if len(exprs) == 0 {
			return clause.Expr{SQL: "1 = 1"}, nil
		}
		return clause.And(exprs...), nil
	}
	return nil, fmt.Errorf("unsupported predicate %T", p)
}

func compileAll(ps []listing.Predicate) ([]clause.Expression, error) {
	exprs := make([]clause.Expression, 0, len(ps))
	for _, p := range ps {
		e, err := compile(p)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

// orderBy compiles listing orders into an ORDER BY clause.
func orderBy(orders []listing.Order) (clause.OrderBy, error) {
	cols := make([]clause.OrderByColumn, 0, len(orders))
	for _, o := range orders {
		col, err := column(o.Field)
		if err != nil {
			return clause.OrderBy{}, err
		}
		cols = append(cols, clause.OrderByColumn{Column: col, Desc: o.Desc})
	}
	return clause.OrderBy{Columns: cols}, nil
}
