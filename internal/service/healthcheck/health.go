package healthcheck

import (
	"context"
	"net/http"
	"sync"
	"time"

	"communityportal/internal/config"
	"communityportal/internal/models/dto"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const (
	serviceName  = "Community Portal API"
	version      = "1.0.0"
	pingTimeout  = 2 * time.Second
	statusOK     = "OK"
	statusFailed = "DEGRADED"
)

// Health - Healthcheck endpoint
// @Summary      Service health
// @Description  Pings SQL Server and Redis. Any failed dependency returns 503.
// @Tags         healthcheck
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /healthcheck/ [get]
func Health(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		var (
			mu     sync.Mutex
			checks = make(map[string]string, len(cfg.Checks))
			status = statusOK
		)
		var g errgroup.Group
		for name, dep := range cfg.Checks {
			g.Go(func() error {
				result := statusOK
				if err := dep.Ping(ctx); err != nil {
					result = err.Error()
					cfg.Logger.Warn("healthcheck dependency down", map[string]interface{}{"dependency": name, "error": result})
				}

				mu.Lock()
				defer mu.Unlock()
				checks[name] = result
				if result != statusOK {
					status = statusFailed
				}
				return nil
			})
		}
		_ = g.Wait()

		code := http.StatusOK
		if status != statusOK {
			code = http.StatusServiceUnavailable
		}
		uptime := ""
		if !cfg.StartedAt.IsZero() {
			uptime = time.Since(cfg.StartedAt).Round(time.Second).String()
		}
		c.JSON(code, dto.NewHealthResponse(c, status, serviceName, version, uptime, checks))
	}
}
