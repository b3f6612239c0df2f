package entities

import (
	"time"

	"communityportal/internal/listing"
)

// Scheme is a government welfare scheme.
type Scheme struct {
	ID          int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Slug        string    `json:"slug" gorm:"column:slug;type:nvarchar(200);not null;unique"`
	Name        string    `json:"name" gorm:"column:name;type:nvarchar(300);not null"`
	NameTa      *string   `json:"nameTa,omitempty" gorm:"column:name_ta;type:nvarchar(300)"`
	Department  string    `json:"department" gorm:"column:department;type:nvarchar(200)"`
	Eligibility *string   `json:"eligibility,omitempty" gorm:"column:eligibility;type:nvarchar(max)"`
	Status      string    `json:"status" gorm:"column:status;type:nvarchar(20);not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;type:datetime2;not null"`
}

func (Scheme) TableName() string {
	return "dbo.schemes"
}

func (s Scheme) Row() listing.Row {
	return listing.Row{
		"id":         s.ID,
		"slug":       s.Slug,
		"name":       s.Name,
		"name_ta":    deref(s.NameTa),
		"department": s.Department,
		"status":     s.Status,
		"created_at": s.CreatedAt,
	}
}
