package models

// Schedule is a waste-collection cadence for one waste type in one zone.
// The cadence stays a display string ("Monday and Thursday", "Once a month
// (1st Tuesday)"); next-pickup math is done client-side.
type Schedule struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	Zone      string `gorm:"index;not null" json:"zone"`
	WasteType string `gorm:"not null" json:"waste_type"` // Biodegradable, Recyclable, Residual, Bulky, Special Waste
	Cadence   string `gorm:"not null" json:"cadence"`
	Color     string `gorm:"type:varchar(16)" json:"color,omitempty"`

	Timestamps
}
