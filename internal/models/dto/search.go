package dto

import "communityportal/internal/search"

// SearchRequest is the public typeahead body.
type SearchRequest struct {
	Q string `json:"q" example:"school"`
}

// AdminSearchRequest is the command palette body.
type AdminSearchRequest struct {
	Query string `json:"query" example:"temple"`
}

// SearchResponse is the shape both search endpoints return, including the
// degraded empty result.
type SearchResponse struct {
	Results []search.Hit `json:"results"`
}

// StatsResponse counts every row per collection, any status.
type StatsResponse struct {
	Totals map[string]int64 `json:"totals"`
}
