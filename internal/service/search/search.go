// Package search exposes the public typeahead and the admin command palette.
package search

import (
	"net/http"

	"communityportal/internal/config"
	"communityportal/internal/middleware"
	"communityportal/internal/models/dto"
	aggregator "communityportal/internal/search"

	"github.com/gin-gonic/gin"
)

func run(c *gin.Context, s config.Searcher, q string) ([]aggregator.Hit, error) {
	hits, err := s.Search(c.Request.Context(), q)
	middleware.AddLogFields(c, map[string]interface{}{"query": q, "hits": len(hits)})
	if hits == nil {
		hits = []aggregator.Hit{}
	}
	return hits, err
}

func public(cfg *config.App, q string, c *gin.Context) {
	hits, err := run(c, cfg.PublicSearch, q)
	if err != nil {
		cfg.Logger.Error("public search failed", err, map[string]interface{}{"query": q})
		c.JSON(http.StatusInternalServerError, dto.SearchResponse{Results: []aggregator.Hit{}})
		return
	}
	c.JSON(http.StatusOK, dto.SearchResponse{Results: hits})
}

func admin(cfg *config.App, q string, c *gin.Context) {
	hits, err := run(c, cfg.AdminSearch, q)
	if err != nil {
		cfg.Logger.Error("admin search failed", err, map[string]interface{}{"query": q})
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(c, http.StatusInternalServerError, err.Error(), "Error while searching", nil))
		return
	}
	c.JSON(http.StatusOK, dto.SearchResponse{Results: hits})
}

// PublicGet handles the typeahead search
// @Summary      Search every public collection
// @Description  Queries shorter than two characters return no results. Failures return an empty list with status 500.
// @Tags         search
// @Produce      json
// @Param        q  query  string  true  "Search text"
// @Success      200  {object}  dto.SearchResponse
// @Failure      500  {object}  dto.SearchResponse
// @Router       /api/search [get]
func PublicGet(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		public(cfg, c.Query("q"), c)
	}
}

// PublicPost handles the typeahead search with a JSON body
// @Summary      Search every public collection
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        request  body  dto.SearchRequest  true  "Search text"
// @Success      200  {object}  dto.SearchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.SearchResponse
// @Router       /api/search [post]
func PublicPost(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, err.Error(), "Invalid search request", nil))
			return
		}
		public(cfg, req.Q, c)
	}
}

// AdminGet handles the command palette search
// @Summary      Search every collection for editors
// @Description  Includes unpublished rows; results link to the edit pages.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        query  query  string  true  "Search text"
// @Success      200  {object}  dto.SearchResponse
// @Failure      401  {object}  dto.AuthErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /admin/search [get]
func AdminGet(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin(cfg, c.Query("query"), c)
	}
}

// AdminPost handles the command palette search with a JSON body
// @Summary      Search every collection for editors
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  dto.AdminSearchRequest  true  "Search text"
// @Success      200  {object}  dto.SearchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.AuthErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /admin/search [post]
func AdminPost(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.AdminSearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, err.Error(), "Invalid search request", nil))
			return
		}
		admin(cfg, req.Query, c)
	}
}
