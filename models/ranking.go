package models

// Ranking holds a user's accumulated points and current tier name.
// One row per user, created lazily on the first point award. Points only
// grow in normal operation; the rank string never regresses to empty even
// when the total falls outside every defined tier band.
type Ranking struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"`
	Points int64  `gorm:"not null;default:0" json:"points"`
	Rank   string `gorm:"type:varchar(16);not null;default:'Bronze'" json:"rank"`

	Timestamps
}
