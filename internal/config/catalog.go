package config

import (
	"communityportal/internal/listing"
	"communityportal/internal/models/entities"
	"communityportal/internal/repositories/sqlserver"
	"communityportal/pkg/logger"
)

// Catalog holds one lister per public collection.
type Catalog struct {
	Businesses  *listing.Lister[entities.Business]
	Villages    *listing.Lister[entities.Village]
	Events      *listing.Lister[entities.Event]
	Jobs        *listing.Lister[entities.Job]
	Classifieds *listing.Lister[entities.Classified]
	News        *listing.Lister[entities.News]
	Schemes     *listing.Lister[entities.Scheme]
}

// NewSQLCatalog backs every lister with its SQL Server table.
func NewSQLCatalog(db *sqlserver.Internal, settings listing.Settings, log *logger.Logger) *Catalog {
	businesses := listing.Businesses
	businesses.ResolveCategory = db.BusinessCategoryBySlug

	return &Catalog{
		Businesses:  listing.NewLister[entities.Business](businesses, sqlserver.NewCollection[entities.Business](db), settings, log),
		Villages:    listing.NewLister[entities.Village](listing.Villages, sqlserver.NewCollection[entities.Village](db), settings, log),
		Events:      listing.NewLister[entities.Event](listing.Events, sqlserver.NewCollection[entities.Event](db), settings, log),
		Jobs:        listing.NewLister[entities.Job](listing.Jobs, sqlserver.NewCollection[entities.Job](db), settings, log),
		Classifieds: listing.NewLister[entities.Classified](listing.Classifieds, sqlserver.NewCollection[entities.Classified](db), settings, log),
		News:        listing.NewLister[entities.News](listing.News, sqlserver.NewCollection[entities.News](db), settings, log),
		Schemes:     listing.NewLister[entities.Scheme](listing.Schemes, sqlserver.NewCollection[entities.Scheme](db), settings, log),
	}
}
