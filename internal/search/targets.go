package search

import (
	"net/url"
	"strings"

	"communityportal/internal/listing"
)

// Scopes label the two aggregators.
const (
	ScopePublic = "public"
	ScopeAdmin  = "admin"
)

// collections maps each kind to its URL segment and any extra search
// columns beyond the entity's title fields.
var collections = map[listing.Kind]struct {
	public string
	admin  string
	extra  []string
}{
	listing.KindNews:       {public: "news", admin: "news"},
	listing.KindJob:        {public: "jobs", admin: "jobs", extra: []string{"company"}},
	listing.KindBusiness:   {public: "directory", admin: "businesses"},
	listing.KindVillage:    {public: "villages", admin: "villages"},
	listing.KindEvent:      {public: "events", admin: "events"},
	listing.KindScheme:     {public: "schemes", admin: "schemes"},
	listing.KindClassified: {public: "classifieds", admin: "classifieds"},
}

var entities = map[listing.Kind]listing.Entity{
	listing.KindNews:       listing.News,
	listing.KindJob:        listing.Jobs,
	listing.KindBusiness:   listing.Businesses,
	listing.KindVillage:    listing.Villages,
	listing.KindEvent:      listing.Events,
	listing.KindScheme:     listing.Schemes,
	listing.KindClassified: listing.Classifieds,
}

func target(kind listing.Kind, f Finder) Target {
	e := entities[kind]
	c := collections[kind]
	fields := append(append([]string{}, e.TitleFields...), c.extra...)
	return Target{
		Kind:       kind,
		Finder:     f,
		Fields:     fields,
		TitleField: e.TitleFields[0],
		SlugField:  e.SlugField,
		Status:     e.Status,
		OrderBy:    listing.OrderBy(e, e.DefaultSort),
	}
}

func joinPath(base string, parts ...string) string {
	escaped := make([]string, 0, len(parts))
	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(escaped, "/")
}

// PublicTargets searches visible rows and links to view pages under base.
// Kinds without a finder are skipped.
func PublicTargets(finders map[listing.Kind]Finder, base string) []Target {
	targets := make([]Target, 0, len(listing.Kinds))
	for _, kind := range listing.Kinds {
		f, ok := finders[kind]
		if !ok {
			continue
		}
		t := target(kind, f)
		segment := collections[kind].public
		t.URL = func(m Match) string {
			key := m.Slug
			if key == "" {
				key = m.ID
			}
			return joinPath(base, segment, key)
		}
		targets = append(targets, t)
	}
	return targets
}

// AdminTargets searches rows in every status and links to edit forms.
func AdminTargets(finders map[listing.Kind]Finder) []Target {
	targets := make([]Target, 0, len(listing.Kinds))
	for _, kind := range listing.Kinds {
		f, ok := finders[kind]
		if !ok {
			continue
		}
		t := target(kind, f)
		t.Status = nil
		segment := collections[kind].admin
		t.URL = func(m Match) string {
			return joinPath("/admin", segment, m.ID, "edit")
		}
		targets = append(targets, t)
	}
	return targets
}

// NewPublic is the storefront typeahead aggregator.
func NewPublic(finders map[listing.Kind]Finder, base string, opts ...Option) *Aggregator {
	return NewAggregator(ScopePublic, PublicTargets(finders, base), opts...)
}

// NewAdmin is the admin command palette aggregator.
func NewAdmin(finders map[listing.Kind]Finder, opts ...Option) *Aggregator {
	return NewAggregator(ScopeAdmin, AdminTargets(finders), opts...)
}
