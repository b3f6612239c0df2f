package entities

import (
	"time"

	"communityportal/internal/listing"
)

// News is a news article.
type News struct {
	ID          int64      `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Slug        string     `json:"slug" gorm:"column:slug;type:nvarchar(200);not null;unique"`
	Title       string     `json:"title" gorm:"column:title;type:nvarchar(300);not null"`
	TitleTa     *string    `json:"titleTa,omitempty" gorm:"column:title_ta;type:nvarchar(300)"`
	Summary     *string    `json:"summary,omitempty" gorm:"column:summary;type:nvarchar(1000)"`
	Body        *string    `json:"body,omitempty" gorm:"column:body;type:nvarchar(max)"`
	Category    string     `json:"category" gorm:"column:category;type:nvarchar(100)"`
	Status      string     `json:"status" gorm:"column:status;type:nvarchar(20);not null"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" gorm:"column:published_at;type:datetime2"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"column:created_at;type:datetime2;not null"`
}

func (News) TableName() string {
	return "dbo.news"
}

func (n News) Row() listing.Row {
	return listing.Row{
		"id":         n.ID,
		"slug":       n.Slug,
		"title":      n.Title,
		"title_ta":   deref(n.TitleTa),
		"category":   n.Category,
		"status":     n.Status,
		"created_at": n.CreatedAt,
	}
}
