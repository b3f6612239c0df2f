package listing

import "strings"

// AllCategories is the selector value that disables category filtering.
const AllCategories = "all"

// FilterSpec is the normalized set of inputs for one listing query.
type FilterSpec struct {
	Search            string
	Category          string
	Min               *float64
	Max               *float64
	Sort              string
	Page              int
	SearchDescription bool
}

// HasCategory reports whether the spec restricts the category.
func (s FilterSpec) HasCategory() bool {
	c := strings.TrimSpace(s.Category)
	return c != "" && c != AllCategories
}

// Names of the query parameters a listing page reads.
type ParamNames struct {
	Search            string
	Category          string
	Min               string
	Max               string
	Sort              string
	Page              string
	SearchDescription string
}

// DefaultParamNames are the keys shared by every listing page.
var DefaultParamNames = ParamNames{
	Search:            "q",
	Category:          "category",
	Min:               "minPrice",
	Max:               "maxPrice",
	Sort:              "sort",
	Page:              "page",
	SearchDescription: "searchDescription",
}

// SpecFromQuery normalizes raw query parameters into a FilterSpec.
func SpecFromQuery(q map[string][]string, names ParamNames) FilterSpec {
	return FilterSpec{
		Search:            strings.TrimSpace(FirstParam(q[names.Search])),
		Category:          strings.TrimSpace(FirstParam(q[names.Category])),
		Min:               ParseBound(FirstParam(q[names.Min])),
		Max:               ParseBound(FirstParam(q[names.Max])),
		Sort:              strings.TrimSpace(FirstParam(q[names.Sort])),
		Page:              ParsePage(FirstParam(q[names.Page])),
		SearchDescription: ParseFlag(FirstParam(q[names.SearchDescription])),
	}
}

// BuildFilter constructs the predicate for one entity. category is the
// already-resolved stored value; pass nil when the spec has no category.
// With no search text, no category and no bounds the result is exactly the
// entity's status predicate.
func BuildFilter(e Entity, spec FilterSpec, category any) Predicate {
	terms := And{}
	if e.Status != nil {
		terms = append(terms, e.Status)
	}

	if search := strings.TrimSpace(spec.Search); search != "" {
		fields := e.TitleFields
		if spec.SearchDescription && len(e.DescriptionFields) > 0 {
			fields = append(append([]string{}, e.TitleFields...), e.DescriptionFields...)
		}
		if len(fields) > 0 {
			or := make(Or, 0, len(fields))
			for _, f := range fields {
				or = append(or, Contains{Field: f, Value: search})
			}
			terms = append(terms, or)
		}
	}

	if category != nil && e.CategoryField != "" {
		terms = append(terms, Equals{Field: e.CategoryField, Value: category, Fold: e.CategoryFold})
	}

	if e.RangeField != "" && (spec.Min != nil || spec.Max != nil) {
		terms = append(terms, Range{Field: e.RangeField, Min: spec.Min, Max: spec.Max})
	}

	switch len(terms) {
	case 0:
		return True{}
	case 1:
		return terms[0]
	}
	return terms
}

// SearchPredicate ORs a case-insensitive substring match over fields.
func SearchPredicate(q string, fields ...string) Predicate {
	or := make(Or, 0, len(fields))
	for _, f := range fields {
		or = append(or, Contains{Field: f, Value: q})
	}
	return or
}
