package entities

import (
	"time"

	"communityportal/internal/listing"
)

// Business is a directory listing.
type Business struct {
	ID            int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Slug          string    `json:"slug" gorm:"column:slug;type:nvarchar(200);not null;unique"`
	Name          string    `json:"name" gorm:"column:name;type:nvarchar(200);not null"`
	NameTa        *string   `json:"nameTa,omitempty" gorm:"column:name_ta;type:nvarchar(200)"`
	Description   *string   `json:"description,omitempty" gorm:"column:description;type:nvarchar(max)"`
	DescriptionTa *string   `json:"descriptionTa,omitempty" gorm:"column:description_ta;type:nvarchar(max)"`
	CategoryID    int64     `json:"categoryId" gorm:"column:category_id;not null"`
	Phone         *string   `json:"phone,omitempty" gorm:"column:phone;type:nvarchar(30)"`
	Address       *string   `json:"address,omitempty" gorm:"column:address;type:nvarchar(500)"`
	Rating        float64   `json:"rating" gorm:"column:rating;type:decimal(3,2);default:0"`
	IsFeatured    bool      `json:"isFeatured" gorm:"column:is_featured;type:bit;not null;default:0"`
	Status        string    `json:"status" gorm:"column:status;type:nvarchar(20);not null"`
	CreatedAt     time.Time `json:"createdAt" gorm:"column:created_at;type:datetime2;not null"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"column:updated_at;type:datetime2"`
}

func (Business) TableName() string {
	return "dbo.businesses"
}

// Row exposes the filterable columns.
func (b Business) Row() listing.Row {
	return listing.Row{
		"id":          b.ID,
		"slug":        b.Slug,
		"name":        b.Name,
		"name_ta":     deref(b.NameTa),
		"category_id": b.CategoryID,
		"rating":      b.Rating,
		"is_featured": b.IsFeatured,
		"status":      b.Status,
		"created_at":  b.CreatedAt,
	}
}

// BusinessCategory groups directory listings. Listing URLs carry the slug.
type BusinessCategory struct {
	ID     int64   `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Slug   string  `json:"slug" gorm:"column:slug;type:nvarchar(100);not null;unique"`
	Name   string  `json:"name" gorm:"column:name;type:nvarchar(100);not null"`
	NameTa *string `json:"nameTa,omitempty" gorm:"column:name_ta;type:nvarchar(100)"`
}

func (BusinessCategory) TableName() string {
	return "dbo.business_categories"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
