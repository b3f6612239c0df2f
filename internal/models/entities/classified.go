package entities

import (
	"time"

	"communityportal/internal/listing"
)

// Classified is a buy/sell notice.
type Classified struct {
	ID            int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Title         string    `json:"title" gorm:"column:title;type:nvarchar(200);not null"`
	TitleTa       *string   `json:"titleTa,omitempty" gorm:"column:title_ta;type:nvarchar(200)"`
	Description   *string   `json:"description,omitempty" gorm:"column:description;type:nvarchar(max)"`
	DescriptionTa *string   `json:"descriptionTa,omitempty" gorm:"column:description_ta;type:nvarchar(max)"`
	Category      string    `json:"category" gorm:"column:category;type:nvarchar(100);not null"`
	Price         float64   `json:"price" gorm:"column:price;type:decimal(12,2);default:0"`
	ContactPhone  *string   `json:"contactPhone,omitempty" gorm:"column:contact_phone;type:nvarchar(30)"`
	IsFeatured    bool      `json:"isFeatured" gorm:"column:is_featured;type:bit;not null;default:0"`
	Status        string    `json:"status" gorm:"column:status;type:nvarchar(20);not null"`
	CreatedAt     time.Time `json:"createdAt" gorm:"column:created_at;type:datetime2;not null"`
}

func (Classified) TableName() string {
	return "dbo.classifieds"
}

func (c Classified) Row() listing.Row {
	return listing.Row{
		"id":             c.ID,
		"title":          c.Title,
		"title_ta":       deref(c.TitleTa),
		"description":    deref(c.Description),
		"description_ta": deref(c.DescriptionTa),
		"category":       c.Category,
		"price":          c.Price,
		"is_featured":    c.IsFeatured,
		"status":         c.Status,
		"created_at":     c.CreatedAt,
	}
}
