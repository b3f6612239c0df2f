package routes

import (
	"communityportal/internal/config"
	"communityportal/internal/metrics"
	"communityportal/internal/middleware"
	"communityportal/internal/service/healthcheck"
	"communityportal/internal/service/listings"
	"communityportal/internal/service/search"
	"communityportal/internal/service/stats"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// InitiateRoutes is a function that initializes the routes for the application
func InitiateRoutes(engine *gin.Engine, cfg *config.App) {

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.GET("/metrics/prometheus", metrics.Handler())

	healthGroup := engine.Group("/healthcheck")
	{
		healthGroup.GET("/", healthcheck.Health(cfg))
	}

	// Public collection pages
	api := engine.Group("/api")
	{
		api.GET("/businesses", listings.ListBusinesses(cfg))
		api.GET("/businesses/:key", listings.GetBusiness(cfg))
		api.GET("/villages", listings.ListVillages(cfg))
		api.GET("/villages/:key", listings.GetVillage(cfg))
		api.GET("/events", listings.ListEvents(cfg))
		api.GET("/events/:key", listings.GetEvent(cfg))
		api.GET("/jobs", listings.ListJobs(cfg))
		api.GET("/jobs/:key", listings.GetJob(cfg))
		api.GET("/classifieds", listings.ListClassifieds(cfg))
		api.GET("/classifieds/:key", listings.GetClassified(cfg))
		api.GET("/news", listings.ListNews(cfg))
		api.GET("/news/:key", listings.GetNews(cfg))
		api.GET("/schemes", listings.ListSchemes(cfg))
		api.GET("/schemes/:key", listings.GetScheme(cfg))

		api.GET("/search", search.PublicGet(cfg))
		api.POST("/search", search.PublicPost(cfg))
	}

	// CMS: admins only
	admin := engine.Group("/admin", middleware.Auth(middleware.RoleAdmin))
	{
		admin.GET("/search", search.AdminGet(cfg))
		admin.POST("/search", search.AdminPost(cfg))
		admin.GET("/stats", stats.Totals(cfg))
	}
}
