package sqlserver

import (
	"testing"

	"communityportal/internal/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"temple", "temple"},
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{"[x]", `\[x]`},
		{`c:\path`, `c:\\path`},
		{"அன்பு", "அன்பு"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeLike(tt.in))
	}
}

func TestCompileContains(t *testing.T) {
	expr, err := compile(listing.Contains{Field: "name", Value: "Temple_50%"})
	require.NoError(t, err)

	e, ok := expr.(clause.Expr)
	require.True(t, ok)
	assert.Equal(t, `LOWER(?) LIKE ? ESCAPE '\'`, e.SQL)
	assert.Equal(t, []interface{}{clause.Column{Name: "name"}, `%temple\_50\%%`}, e.Vars)
}

func TestCompileEquals(t *testing.T) {
	expr, err := compile(listing.Equals{Field: "job_type", Value: "full-time"})
	require.NoError(t, err)
	assert.Equal(t, clause.Eq{Column: clause.Column{Name: "job_type"}, Value: "full-time"}, expr)

	expr, err = compile(listing.Equals{Field: "district", Value: "Madurai", Fold: true})
	require.NoError(t, err)
	assert.Equal(t, clause.Expr{SQL: "LOWER(?) = ?", Vars: []interface{}{clause.Column{Name: "district"}, "madurai"}}, expr)

	// non-string values never fold
	expr, err = compile(listing.Equals{Field: "category_id", Value: int64(7), Fold: true})
	require.NoError(t, err)
	assert.Equal(t, clause.Eq{Column: clause.Column{Name: "category_id"}, Value: int64(7)}, expr)
}

func TestCompileRange(t *testing.T) {
	lo, hi := 500.0, 900.0

	expr, err := compile(listing.Range{Field: "price", Min: &lo})
	require.NoError(t, err)
	assert.Equal(t, clause.And(clause.Gte{Column: clause.Column{Name: "price"}, Value: 500.0}), expr)

	expr, err = compile(listing.Range{Field: "price", Min: &lo, Max: &hi})
	require.NoError(t, err)
	assert.Equal(t, clause.And(
		clause.Gte{Column: clause.Column{Name: "price"}, Value: 500.0},
		clause.Lte{Column: clause.Column{Name: "price"}, Value: 900.0},
	), expr)

	expr, err = compile(listing.Range{Field: "price"})
	require.NoError(t, err)
	assert.Equal(t, clause.Expr{SQL: "1 = 1"}, expr)
}

func TestCompileTrees(t *testing.T) {
	expr, err := compile(listing.True{})
	require.NoError(t, err)
	assert.Equal(t, clause.Expr{SQL: "1 = 1"}, expr)

	expr, err = compile(listing.Or{})
	require.NoError(t, err)
	assert.Equal(t, clause.Expr{SQL: "1 = 0"}, expr)

	spec := listing.FilterSpec{Search: "cycle", Category: "vehicles"}
	expr, err = compile(listing.BuildFilter(listing.Classifieds, spec, "vehicles"))
	require.NoError(t, err)

	and, ok := expr.(clause.AndConditions)
	require.True(t, ok, "got %T", expr)
	require.Len(t, and.Exprs, 3)
	assert.Equal(t, clause.Eq{Column: clause.Column{Name: "status"}, Value: "active"}, and.Exprs[0])
	_, ok = and.Exprs[1].(clause.OrConditions)
	assert.True(t, ok)
	assert.Equal(t, clause.Eq{Column: clause.Column{Name: "category"}, Value: "vehicles"}, and.Exprs[2])
}

func TestCompileRejectsUnsafeColumns(t *testing.T) {
	_, err := compile(listing.Contains{Field: "name; DROP TABLE news", Value: "x"})
	assert.Error(t, err)

	_, err = compile(listing.And{listing.True{}, listing.Equals{Field: "a b", Value: 1}})
	assert.Error(t, err)

	_, err = orderBy([]listing.Order{{Field: "created_at desc--"}})
	assert.Error(t, err)
}

func TestOrderBy(t *testing.T) {
	order, err := orderBy(listing.OrderBy(listing.Businesses, listing.SortNameAsc))
	require.NoError(t, err)
	assert.Equal(t, []clause.OrderByColumn{
		{Column: clause.Column{Name: "is_featured"}, Desc: true},
		{Column: clause.Column{Name: "name"}},
	}, order.Columns)
}
