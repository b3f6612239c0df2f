package entities

import (
	"time"

	"communityportal/internal/listing"
)

// Village is a village profile page.
type Village struct {
	ID          int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Slug        string    `json:"slug" gorm:"column:slug;type:nvarchar(200);not null;unique"`
	Name        string    `json:"name" gorm:"column:name;type:nvarchar(200);not null"`
	NameTa      *string   `json:"nameTa,omitempty" gorm:"column:name_ta;type:nvarchar(200)"`
	District    string    `json:"district" gorm:"column:district;type:nvarchar(100);not null"`
	Population  int64     `json:"population" gorm:"column:population;default:0"`
	Description *string   `json:"description,omitempty" gorm:"column:description;type:nvarchar(max)"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;type:datetime2;not null"`
}

func (Village) TableName() string {
	return "dbo.villages"
}

func (v Village) Row() listing.Row {
	return listing.Row{
		"id":         v.ID,
		"slug":       v.Slug,
		"name":       v.Name,
		"name_ta":    deref(v.NameTa),
		"district":   v.District,
		"population": v.Population,
		"created_at": v.CreatedAt,
	}
}
