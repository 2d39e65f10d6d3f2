package models

import "time"

const (
	ReportStatusPending  = "pending"
	ReportStatusResolved = "resolved"
)

// Report is a citizen-filed illegal dumping report.
type Report struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	ReporterID   string    `gorm:"index;not null" json:"reporter_id"`
	ReporterName string    `json:"reporter_name"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Location     *string   `json:"location,omitempty"`
	Lat          *float64  `json:"lat,omitempty"`
	Lng          *float64  `json:"lng,omitempty"`
	Date         time.Time `gorm:"not null" json:"date"`
	Status       string    `gorm:"type:varchar(16);default:'pending'" json:"status"` // pending, resolved

	Images []ReportImage `gorm:"foreignKey:ReportID" json:"images,omitempty"`

	Timestamps
}

// ReportImage is an uploaded photo attached to a report.
type ReportImage struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	ReportID  string    `gorm:"index;not null" json:"report_id"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
