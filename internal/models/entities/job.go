package entities

import (
	"time"

	"communityportal/internal/listing"
)

// Job is a job opening. Jobs have no slug and are addressed by id.
type Job struct {
	ID        int64      `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Title     string     `json:"title" gorm:"column:title;type:nvarchar(200);not null"`
	TitleTa   *string    `json:"titleTa,omitempty" gorm:"column:title_ta;type:nvarchar(200)"`
	Company   string     `json:"company" gorm:"column:company;type:nvarchar(200);not null"`
	JobType   string     `json:"jobType" gorm:"column:job_type;type:nvarchar(50);not null"`
	Location  *string    `json:"location,omitempty" gorm:"column:location;type:nvarchar(200)"`
	Salary    float64    `json:"salary" gorm:"column:salary;type:decimal(12,2);default:0"`
	Deadline  *time.Time `json:"deadline,omitempty" gorm:"column:deadline;type:datetime2"`
	Status    string     `json:"status" gorm:"column:status;type:nvarchar(20);not null"`
	CreatedAt time.Time  `json:"createdAt" gorm:"column:created_at;type:datetime2;not null"`
}

func (Job) TableName() string {
	return "dbo.jobs"
}

func (j Job) Row() listing.Row {
	return listing.Row{
		"id":         j.ID,
		"title":      j.Title,
		"title_ta":   deref(j.TitleTa),
		"company":    j.Company,
		"job_type":   j.JobType,
		"salary":     j.Salary,
		"status":     j.Status,
		"created_at": j.CreatedAt,
	}
}
