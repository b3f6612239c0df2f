// Package stats serves the admin dashboard counters.
package stats

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"communityportal/internal/config"
	"communityportal/internal/listing"
	"communityportal/internal/models/dto"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type counter func(ctx context.Context) (int64, error)

func counters(cat *config.Catalog) map[listing.Kind]counter {
	return map[listing.Kind]counter{
		listing.KindNews:       cat.News.Total,
		listing.KindJob:        cat.Jobs.Total,
		listing.KindBusiness:   cat.Businesses.Total,
		listing.KindVillage:    cat.Villages.Total,
		listing.KindEvent:      cat.Events.Total,
		listing.KindScheme:     cat.Schemes.Total,
		listing.KindClassified: cat.Classifieds.Total,
	}
}

// Totals returns row counts per collection
// @Summary      Dashboard totals
// @Description  Counts every row per collection regardless of status.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SuccessResponse{data=dto.StatsResponse}
// @Failure      401  {object}  dto.AuthErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /admin/stats [get]
func Totals(cfg *config.App) gin.HandlerFunc {
	count := counters(cfg.Catalog)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		totals := make([]int64, len(listing.Kinds))
		g, gctx := errgroup.WithContext(ctx)
		for i, kind := range listing.Kinds {
			g.Go(func() error {
				n, err := count[kind](gctx)
				if err != nil {
					return fmt.Errorf("count %s: %w", kind, err)
				}
				totals[i] = n
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			cfg.Logger.Error("dashboard totals failed", err)
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(c, http.StatusInternalServerError, err.Error(), "Error while counting content", nil))
			return
		}

		resp := dto.StatsResponse{Totals: make(map[string]int64, len(totals))}
		for i, kind := range listing.Kinds {
			resp.Totals[string(kind)] = totals[i]
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, resp, ""))
	}
}
