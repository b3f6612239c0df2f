// Package listings serves the public collection pages and detail views.
package listings

import (
	"context"
	"errors"
	"net/http"
	"time"

	"communityportal/internal/config"
	"communityportal/internal/listing"
	"communityportal/internal/metrics"
	"communityportal/internal/middleware"
	"communityportal/internal/models/dto"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 10 * time.Second

func list[T any](cfg *config.App, l *listing.Lister[T], names listing.ParamNames) gin.HandlerFunc {
	kind := string(l.Entity.Kind)
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		spec := listing.SpecFromQuery(c.Request.URL.Query(), names)
		page, err := l.List(ctx, spec)
		metrics.ListingReads.WithLabelValues(kind, metrics.Outcome(err)).Inc()
		if err != nil {
			cfg.Logger.Error("listing read failed", err, map[string]interface{}{"type": kind})
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(c, http.StatusInternalServerError, err.Error(), "Error while listing "+kind, nil))
			return
		}

		middleware.AddLogFields(c, map[string]interface{}{"type": kind, "total": page.TotalCount, "page": page.CurrentPage})

		var facets interface{}
		if len(page.Facets) > 0 {
			facets = page.Facets
		}
		pagination := dto.NewPagination(page.CurrentPage, page.PageSize, page.TotalPages, page.TotalCount)
		c.JSON(http.StatusOK, dto.NewPaginatedResponse(c, page.Items, pagination, facets, ""))
	}
}

func detail[T any](cfg *config.App, l *listing.Lister[T]) gin.HandlerFunc {
	kind := string(l.Entity.Kind)
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		key := c.Param("key")
		item, err := l.Get(ctx, key)
		if errors.Is(err, listing.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse(c, http.StatusNotFound, "not found", kind+" "+key+" not found", nil))
			return
		}
		if err != nil {
			cfg.Logger.Error("detail read failed", err, map[string]interface{}{"type": kind, "key": key})
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(c, http.StatusInternalServerError, err.Error(), "Error while loading "+kind, nil))
			return
		}

		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, item, ""))
	}
}

func withCategory(name string) listing.ParamNames {
	names := listing.DefaultParamNames
	names.Category = name
	return names
}
