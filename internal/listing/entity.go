package listing

import (
	"context"
	"errors"
)

// Kind names one of the portal's content collections.
type Kind string

const (
	KindBusiness   Kind = "business"
	KindVillage    Kind = "village"
	KindEvent      Kind = "event"
	KindJob        Kind = "job"
	KindClassified Kind = "classified"
	KindNews       Kind = "news"
	KindScheme     Kind = "scheme"
)

// Kinds lists every collection in the portal's canonical display order.
var Kinds = []Kind{KindNews, KindJob, KindBusiness, KindVillage, KindEvent, KindScheme, KindClassified}

// ErrNotFound is returned by detail lookups that match no row.
var ErrNotFound = errors.New("record not found")

// CategoryResolver maps a category selector from the URL (usually a slug) to
// the value stored on the entity. ok=false means the selector names nothing.
type CategoryResolver func(ctx context.Context, selector string) (value any, ok bool, err error)

// Entity describes how one collection is filtered, sorted and paged.
type Entity struct {
	Kind Kind

	// TitleFields are matched by the default listing search.
	TitleFields []string
	// DescriptionFields are added when FilterSpec.SearchDescription is set.
	DescriptionFields []string

	// CategoryField is the column the category selector is compared with.
	// Empty disables category filtering and facets.
	CategoryField string
	// CategoryFold compares the category case-insensitively.
	CategoryFold bool
	// ResolveCategory, when set, maps the selector to its stored form first.
	ResolveCategory CategoryResolver

	// RangeField is the numeric column bounded by min/max.
	RangeField string

	// Status is the fixed predicate every public read carries. Nil means none.
	Status Predicate

	// Sorts maps sort keys to orders; DefaultSort must be one of them.
	Sorts       map[string]Order
	DefaultSort string
	// Pinned orders are prepended to every user-selected order.
	Pinned []Order

	// SlugField identifies rows on detail pages.
	SlugField string
	// NumericKey marks SlugField as an integer id column.
	NumericKey bool

	PageSizeKey     string
	DefaultPageSize int
}

// StatusPredicate returns the entity's fixed status predicate, or True.
func (e Entity) StatusPredicate() Predicate {
	if e.Status == nil {
		return True{}
	}
	return e.Status
}

const published = "published"

func publishedOnly() Predicate {
	return Equals{Field: "status", Value: published}
}

// standardSorts builds the sort keys every collection understands.
func standardSorts(nameField string) map[string]Order {
	return map[string]Order{
		SortNameAsc:  {Field: nameField},
		SortNameDesc: {Field: nameField, Desc: true},
		SortNewest:   {Field: "created_at", Desc: true},
		SortOldest:   {Field: "created_at"},
	}
}

func withSorts(base map[string]Order, extra map[string]Order) map[string]Order {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// Businesses is the business directory.
var Businesses = Entity{
	Kind:            KindBusiness,
	TitleFields:     []string{"name", "name_ta"},
	CategoryField:   "category_id",
	RangeField:      "rating",
	Status:          publishedOnly(),
	Sorts:           standardSorts("name"),
	DefaultSort:     SortNameAsc,
	Pinned:          []Order{{Field: "is_featured", Desc: true}},
	SlugField:       "slug",
	PageSizeKey:     "businesses_per_page",
	DefaultPageSize: 12,
}

// Villages lists the villages of the region.
var Villages = Entity{
	Kind:            KindVillage,
	TitleFields:     []string{"name", "name_ta"},
	CategoryField:   "district",
	CategoryFold:    true,
	RangeField:      "population",
	Sorts:           standardSorts("name"),
	DefaultSort:     SortNameAsc,
	SlugField:       "slug",
	PageSizeKey:     "villages_per_page",
	DefaultPageSize: 15,
}

// Events lists community events.
var Events = Entity{
	Kind:          KindEvent,
	TitleFields:   []string{"title", "title_ta"},
	CategoryField: "category",
	RangeField:    "entry_fee",
	Status:        publishedOnly(),
	Sorts: withSorts(standardSorts("title"), map[string]Order{
		SortDateAsc:  {Field: "event_date"},
		SortDateDesc: {Field: "event_date", Desc: true},
	}),
	DefaultSort:     SortDateAsc,
	SlugField:       "slug",
	PageSizeKey:     "events_per_page",
	DefaultPageSize: 6,
}

// Jobs lists job openings.
var Jobs = Entity{
	Kind:            KindJob,
	TitleFields:     []string{"title", "title_ta"},
	CategoryField:   "job_type",
	RangeField:      "salary",
	Status:          publishedOnly(),
	Sorts:           standardSorts("title"),
	DefaultSort:     SortNewest,
	SlugField:       "id",
	NumericKey:      true,
	PageSizeKey:     "jobs_per_page",
	DefaultPageSize: 10,
}

// Classifieds lists buy/sell notices.
var Classifieds = Entity{
	Kind:              KindClassified,
	TitleFields:       []string{"title", "title_ta"},
	DescriptionFields: []string{"description", "description_ta"},
	CategoryField:     "category",
	RangeField:        "price",
	Status:            Equals{Field: "status", Value: "active"},
	Sorts: withSorts(standardSorts("title"), map[string]Order{
		SortPriceAsc:  {Field: "price"},
		SortPriceDesc: {Field: "price", Desc: true},
	}),
	DefaultSort:     SortNewest,
	Pinned:          []Order{{Field: "is_featured", Desc: true}},
	SlugField:       "id",
	NumericKey:      true,
	PageSizeKey:     "classifieds_per_page",
	DefaultPageSize: 12,
}

// News lists published news articles.
var News = Entity{
	Kind:            KindNews,
	TitleFields:     []string{"title", "title_ta"},
	CategoryField:   "category",
	Status:          publishedOnly(),
	Sorts:           standardSorts("title"),
	DefaultSort:     SortNewest,
	SlugField:       "slug",
	PageSizeKey:     "news_per_page",
	DefaultPageSize: 9,
}

// Schemes lists government welfare schemes.
var Schemes = Entity{
	Kind:            KindScheme,
	TitleFields:     []string{"name", "name_ta"},
	CategoryField:   "department",
	CategoryFold:    true,
	Status:          publishedOnly(),
	Sorts:           standardSorts("name"),
	DefaultSort:     SortNameAsc,
	SlugField:       "slug",
	PageSizeKey:     "schemes_per_page",
	DefaultPageSize: 12,
}
