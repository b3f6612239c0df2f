package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"communityportal/internal/config"
	"communityportal/internal/listing"
	"communityportal/internal/models/dto"
	aggregator "communityportal/internal/search"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	hits  []aggregator.Hit
	err   error
	query string
}

func (s *stubSearcher) Search(_ context.Context, q string) ([]aggregator.Hit, error) {
	s.query = q
	return s.hits, s.err
}

func newRouter(cfg *config.App) *gin.Engine {
	router := gin.New()
	router.GET("/api/search", PublicGet(cfg))
	router.POST("/api/search", PublicPost(cfg))
	router.GET("/admin/search", AdminGet(cfg))
	router.POST("/admin/search", AdminPost(cfg))
	return router
}

func TestSearchHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	school := aggregator.Hit{Type: listing.KindNews, ID: "4", Title: "School Reopens", URL: "/news/school-reopens"}

	tests := []struct {
		name           string
		method         string
		url            string
		body           string
		searcher       *stubSearcher
		expectedStatus int
		expectedQuery  string
		validateFunc   func(t *testing.T, body []byte)
	}{
		{
			name:           "Success - public GET",
			method:         http.MethodGet,
			url:            "/api/search?q=school",
			searcher:       &stubSearcher{hits: []aggregator.Hit{school}},
			expectedStatus: http.StatusOK,
			expectedQuery:  "school",
			validateFunc: func(t *testing.T, body []byte) {
				var resp dto.SearchResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, []aggregator.Hit{school}, resp.Results)
			},
		},
		{
			name:           "Success - public POST",
			method:         http.MethodPost,
			url:            "/api/search",
			body:           `{"q":"school"}`,
			searcher:       &stubSearcher{hits: []aggregator.Hit{school}},
			expectedStatus: http.StatusOK,
			expectedQuery:  "school",
		},
		{
			name:           "Success - nothing found is an empty array",
			method:         http.MethodGet,
			url:            "/api/search?q=zz",
			searcher:       &stubSearcher{},
			expectedStatus: http.StatusOK,
			expectedQuery:  "zz",
			validateFunc: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"results":[]}`, string(body))
			},
		},
		{
			name:           "Error - public failure degrades to empty results",
			method:         http.MethodGet,
			url:            "/api/search?q=school",
			searcher:       &stubSearcher{err: errors.New("search news: deadlock victim")},
			expectedStatus: http.StatusInternalServerError,
			expectedQuery:  "school",
			validateFunc: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"results":[]}`, string(body))
			},
		},
		{
			name:           "Error - malformed public body",
			method:         http.MethodPost,
			url:            "/api/search",
			body:           `{"q":`,
			searcher:       &stubSearcher{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Success - admin GET reads the query parameter",
			method:         http.MethodGet,
			url:            "/admin/search?query=temple",
			searcher:       &stubSearcher{},
			expectedStatus: http.StatusOK,
			expectedQuery:  "temple",
		},
		{
			name:           "Success - admin POST",
			method:         http.MethodPost,
			url:            "/admin/search",
			body:           `{"query":"temple"}`,
			searcher:       &stubSearcher{},
			expectedStatus: http.StatusOK,
			expectedQuery:  "temple",
		},
		{
			name:           "Error - admin failure propagates",
			method:         http.MethodPost,
			url:            "/admin/search",
			body:           `{"query":"temple"}`,
			searcher:       &stubSearcher{err: errors.New("search business: timeout")},
			expectedStatus: http.StatusInternalServerError,
			expectedQuery:  "temple",
			validateFunc: func(t *testing.T, body []byte) {
				var resp dto.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.False(t, resp.Success)
				assert.Equal(t, "search business: timeout", resp.Error)
				assert.Equal(t, "Error while searching", resp.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.App{PublicSearch: tt.searcher, AdminSearch: tt.searcher}
			router := newRouter(cfg)

			req := httptest.NewRequest(tt.method, tt.url, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedQuery, tt.searcher.query)
			if tt.validateFunc != nil {
				tt.validateFunc(t, w.Body.Bytes())
			}
		})
	}
}

func rowsFinder(rows ...listing.Row) aggregator.Finder {
	store := listing.Rows(rows...)
	return aggregator.FinderFunc(func(ctx context.Context, l aggregator.Lookup) ([]aggregator.Match, error) {
		found, err := store.FindMany(ctx, listing.Query{Where: l.Where, OrderBy: l.OrderBy, Take: l.Limit})
		if err != nil {
			return nil, err
		}
		out := make([]aggregator.Match, 0, len(found))
		for _, r := range found {
			m := aggregator.Match{ID: fmt.Sprint(r["id"]), Title: fmt.Sprint(r[l.TitleField])}
			if s, ok := r[l.SlugField].(string); ok {
				m.Slug = s
			}
			out = append(out, m)
		}
		return out, nil
	})
}

func TestSearchEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)

	finders := map[listing.Kind]aggregator.Finder{
		listing.KindNews: rowsFinder(
			listing.Row{"id": 4, "slug": "school-reopens", "title": "School Reopens", "status": "published"},
			listing.Row{"id": 5, "slug": "scholarship-list", "title": "Scholarship List", "status": "draft"},
		),
		listing.KindJob: rowsFinder(
			listing.Row{"id": 9, "title": "Maths Tutor", "company": "Scholars Academy", "status": "published"},
		),
	}
	cfg := &config.App{
		PublicSearch: aggregator.NewPublic(finders, "/"),
		AdminSearch:  aggregator.NewAdmin(finders),
	}
	router := newRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=sc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []aggregator.Hit{
		{Type: listing.KindNews, ID: "4", Title: "School Reopens", URL: "/news/school-reopens"},
		{Type: listing.KindJob, ID: "9", Title: "Maths Tutor", URL: "/jobs/9"},
	}, resp.Results)

	req = httptest.NewRequest(http.MethodPost, "/admin/search", strings.NewReader(`{"query":"scholar"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	resp = dto.SearchResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []aggregator.Hit{
		{Type: listing.KindNews, ID: "5", Title: "Scholarship List", URL: "/admin/news/5/edit"},
		{Type: listing.KindJob, ID: "9", Title: "Maths Tutor", URL: "/admin/jobs/9/edit"},
	}, resp.Results)
}
