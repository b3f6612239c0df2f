package listing

// Sort keys accepted in the sort query parameter.
const (
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortDateAsc   = "date-asc"
	SortDateDesc  = "date-desc"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// Order is a single column and direction.
type Order struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc"`
}

// ResolveSort maps a sort key to the entity's order, falling back to the
// entity's default for unknown or empty keys.
func ResolveSort(e Entity, key string) Order {
	if o, ok := e.Sorts[key]; ok {
		return o
	}
	return e.Sorts[e.DefaultSort]
}

// OrderBy returns the full ORDER BY list: pinned keys first, then the
// resolved user order.
func OrderBy(e Entity, key string) []Order {
	orders := make([]Order, 0, len(e.Pinned)+1)
	orders = append(orders, e.Pinned...)
	return append(orders, ResolveSort(e, key))
}
