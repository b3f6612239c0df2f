package middleware

import (
	"os"
	"strconv"
	"strings"
	"time"

	"communityportal/internal/config"
	"communityportal/internal/metrics"
	"communityportal/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

// SetupServer builds the gin engine with the shared middleware chain.
func SetupServer(cfg *config.App) (engine *gin.Engine) {
	gin.SetMode(gin.ReleaseMode)
	engine = gin.New()

	engine.Use(gin.Recovery())
	setupIds(engine)
	engine.Use(metrics.Middleware())
	setupSemaphore(engine)
	setupCors(engine)
	if cfg.Redis != nil {
		setupRateLimiter(engine, cfg.Redis, cfg.Logger)
	}
	setupLogger(engine, cfg.Logger)

	certFile, keyFile := utils.GetCertFiles()
	if certFile != "" && keyFile != "" {
		setupSSL(engine)
	}

	return engine
}

// setupCors allows CORS_ALLOWED_ORIGINS (comma separated), or every origin
// when unset.
func setupCors(engine *gin.Engine) {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}

	engine.Use(cors.New(corsConfig))
}

// setupSSL redirects plain HTTP to HTTPS
func setupSSL(engine *gin.Engine) {
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect:          true,
		SSLHost:              os.Getenv("SSL_HOST"),
		STSSeconds:           31536000,
		STSIncludeSubdomains: true,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
	})
	engine.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		if status := c.Writer.Status(); status > 300 && status < 399 {
			c.Abort()
			return
		}
		c.Next()
	})
}

func getEnvAsInt64(name string, defaultValue int64) int64 {
	valueStr := os.Getenv(name)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}
