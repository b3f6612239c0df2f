package listings

import (
	"communityportal/internal/config"
	"communityportal/internal/listing"

	"github.com/gin-gonic/gin"
)

// ListBusinesses godoc
// @Summary      List directory businesses
// @Description  Featured businesses first, then the selected sort. category is a category slug.
// @Tags         listings
// @Produce      json
// @Param        q         query  string  false  "Search in name and Tamil name"
// @Param        category  query  string  false  "Category slug or all"
// @Param        minPrice  query  number  false  "Minimum rating"
// @Param        maxPrice  query  number  false  "Maximum rating"
// @Param        sort      query  string  false  "name-asc, name-desc, newest, oldest"
// @Param        page      query  int     false  "Page number" default(1)
// @Success      200  {object}  dto.PaginatedResponse{data=[]entities.Business}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/businesses [get]
func ListBusinesses(cfg *config.App) gin.HandlerFunc {
	return list(cfg, cfg.Catalog.Businesses, listing.DefaultParamNames)
}

// ListVillages godoc
// @Summary      List villages
// @Tags         listings
// @Produce      json
// @Param        q         query  string  false  "Search in name and Tamil name"
// @Param        district  query  string  false  "District, case-insensitive"
// @Param        minPrice  query  number  false  "Minimum population"
// @Param        maxPrice  query  number  false  "Maximum population"
// @Param        sort      query  string  false  "name-asc, name-desc, newest"
// @Param        page      query  int     false  "Page number" default(1)
// @Success      200  {object}  dto.PaginatedResponse{data=[]entities.Village}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/villages [get]
func ListVillages(cfg *config.App) gin.HandlerFunc {
	return list(cfg, cfg.Catalog.Villages, withCategory("district"))
}

// ListEvents godoc
// @Summary      List published events
// @Tags         listings
// @Produce      json
// @Param        q         query  string  false  "Search in title"
// @Param        category  query  string  false  "Event category"
// @Param        minPrice  query  number  false  "Minimum entry fee"
// @Param        maxPrice  query  number  false  "Maximum entry fee"
// @Param        sort      query  string  false  "date-asc, date-desc, name-asc, name-desc, newest"
// @Param        page      query  int     false  "Page number" default(1)
// @Success      200  {object}  dto.PaginatedResponse{data=[]entities.Event}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/events [get]
func ListEvents(cfg *config.App) gin.HandlerFunc {
	return list(cfg, cfg.Catalog.Events, listing.DefaultParamNames)
}

// ListJobs godoc
// @Summary      List published jobs
// @Tags         listings
// @Produce      json
// @Param        q         query  string  false  "Search in title and company"
// @Param        type      query  string  false  "Job type"
// @Param        minPrice  query  number  false  "Minimum salary"
// @Param        maxPrice  query  number  false  "Maximum salary"
// @Param        sort      query  string  false  "newest, oldest, name-asc, name-desc"
// @Param        page      query  int     false  "Page number" default(1)
// @Success      200  {object}  dto.PaginatedResponse{data=[]entities.Job}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/jobs [get]
func ListJobs(cfg *config.App) gin.HandlerFunc {
	return list(cfg, cfg.Catalog.Jobs, withCategory("type"))
}

// ListClassifieds godoc
// @Summary      List active classifieds
// @Tags         listings
// @Produce      json
// @Param        q                  query  string  false  "Search in title"
// @Param        searchDescription  query  bool    false  "Also search descriptions"
// @Param        category           query  string  false  "Classified category"
// @Param        minPrice           query  number  false  "Minimum price"
// @Param        maxPrice           query  number  false  "Maximum price"
// @Param        sort               query  string  false  "newest, oldest, price-asc, price-desc, name-asc, name-desc"
// @Param        page               query  int     false  "Page number" default(1)
// @Success      200  {object}  dto.PaginatedResponse{data=[]entities.Classified}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/classifieds [get]
func ListClassifieds(cfg *config.App) gin.HandlerFunc {
	return list(cfg, cfg.Catalog.Classifieds, listing.DefaultParamNames)
}

// ListNews godoc
// @Summary      List published news
// @Tags         listings
// @Produce      json
// @Param        q         query  string  false  "Search in title"
// @Param        category  query  string  false  "News category"
// @Param        sort      query  string  false  "newest, oldest, name-asc, name-desc"
// @Param        page      query  int     false  "Page number" default(1)
// @Success      200  {object}  dto.PaginatedResponse{data=[]entities.News}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/news [get]
func ListNews(cfg *config.App) gin.HandlerFunc {
	return list(cfg, cfg.Catalog.News, listing.DefaultParamNames)
}

// ListSchemes godoc
// @Summary      List published government schemes
// @Tags         listings
// @Produce      json
// @Param        q         query  string  false  "Search in name"
// @Param        category  query  string  false  "Department, case-insensitive"
// @Param        sort      query  string  false  "name-asc, name-desc, newest"
// @Param        page      query  int     false  "Page number" default(1)
// @Success      200  {object}  dto.PaginatedResponse{data=[]entities.Scheme}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/schemes [get]
func ListSchemes(cfg *config.App) gin.HandlerFunc {
	return list(cfg, cfg.Catalog.Schemes, listing.DefaultParamNames)
}

// GetBusiness godoc
// @Summary      Business by slug
// @Tags         listings
// @Produce      json
// @Param        key  path  string  true  "Slug"
// @Success      200  {object}  dto.SuccessResponse{data=entities.Business}
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/businesses/{key} [get]
func GetBusiness(cfg *config.App) gin.HandlerFunc {
	return detail(cfg, cfg.Catalog.Businesses)
}

// GetVillage godoc
// @Summary      Village by slug
// @Tags         listings
// @Produce      json
// @Param        key  path  string  true  "Slug"
// @Success      200  {object}  dto.SuccessResponse{data=entities.Village}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/villages/{key} [get]
func GetVillage(cfg *config.App) gin.HandlerFunc {
	return detail(cfg, cfg.Catalog.Villages)
}

// GetEvent godoc
// @Summary      Event by slug
// @Tags         listings
// @Produce      json
// @Param        key  path  string  true  "Slug"
// @Success      200  {object}  dto.SuccessResponse{data=entities.Event}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{key} [get]
func GetEvent(cfg *config.App) gin.HandlerFunc {
	return detail(cfg, cfg.Catalog.Events)
}

// GetJob godoc
// @Summary      Job by id
// @Tags         listings
// @Produce      json
// @Param        key  path  string  true  "Job id"
// @Success      200  {object}  dto.SuccessResponse{data=entities.Job}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{key} [get]
func GetJob(cfg *config.App) gin.HandlerFunc {
	return detail(cfg, cfg.Catalog.Jobs)
}

// GetClassified godoc
// @Summary      Classified by id
// @Tags         listings
// @Produce      json
// @Param        key  path  string  true  "Classified id"
// @Success      200  {object}  dto.SuccessResponse{data=entities.Classified}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/classifieds/{key} [get]
func GetClassified(cfg *config.App) gin.HandlerFunc {
	return detail(cfg, cfg.Catalog.Classifieds)
}

// GetNews godoc
// @Summary      News article by slug
// @Tags         listings
// @Produce      json
// @Param        key  path  string  true  "Slug"
// @Success      200  {object}  dto.SuccessResponse{data=entities.News}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/news/{key} [get]
func GetNews(cfg *config.App) gin.HandlerFunc {
	return detail(cfg, cfg.Catalog.News)
}

// GetScheme godoc
// @Summary      Scheme by slug
// @Tags         listings
// @Produce      json
// @Param        key  path  string  true  "Slug"
// @Success      200  {object}  dto.SuccessResponse{data=entities.Scheme}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schemes/{key} [get]
func GetScheme(cfg *config.App) gin.HandlerFunc {
	return detail(cfg, cfg.Catalog.Schemes)
}
