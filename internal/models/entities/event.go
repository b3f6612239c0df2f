package entities

import (
	"time"

	"communityportal/internal/listing"
)

// Event is a community event with a scheduled date.
type Event struct {
	ID        int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Slug      string    `json:"slug" gorm:"column:slug;type:nvarchar(200);not null;unique"`
	Title     string    `json:"title" gorm:"column:title;type:nvarchar(200);not null"`
	TitleTa   *string   `json:"titleTa,omitempty" gorm:"column:title_ta;type:nvarchar(200)"`
	Category  string    `json:"category" gorm:"column:category;type:nvarchar(100)"`
	Venue     *string   `json:"venue,omitempty" gorm:"column:venue;type:nvarchar(300)"`
	EventDate time.Time `json:"eventDate" gorm:"column:event_date;type:datetime2;not null"`
	EntryFee  float64   `json:"entryFee" gorm:"column:entry_fee;type:decimal(10,2);default:0"`
	Status    string    `json:"status" gorm:"column:status;type:nvarchar(20);not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;type:datetime2;not null"`
}

func (Event) TableName() string {
	return "dbo.events"
}

func (e Event) Row() listing.Row {
	return listing.Row{
		"id":         e.ID,
		"slug":       e.Slug,
		"title":      e.Title,
		"title_ta":   deref(e.TitleTa),
		"category":   e.Category,
		"event_date": e.EventDate,
		"entry_fee":  e.EntryFee,
		"status":     e.Status,
		"created_at": e.CreatedAt,
	}
}
