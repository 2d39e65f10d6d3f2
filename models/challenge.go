package models

import "time"

// Challenge is a community task with a fixed point reward. A user may
// complete a challenge at most once; completions are tracked both as
// Submission rows (source of truth) and as ChallengeCompletor rows
// (denormalized read index, rebuilt by the reconciler when it drifts).
type Challenge struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Title        string `gorm:"not null" json:"title"`
	Slug         string `gorm:"uniqueIndex;not null" json:"slug"`
	Description  string `gorm:"type:text" json:"description"`
	Instructions string `gorm:"type:text" json:"instructions"`
	Points       int64  `gorm:"not null;default:0" json:"points"`

	Completors []ChallengeCompletor `gorm:"foreignKey:ChallengeID" json:"completors,omitempty"`

	Timestamps
}

// CompletorIDs flattens the completor rows to user ids for API responses.
func (c *Challenge) CompletorIDs() []string {
	ids := make([]string, 0, len(c.Completors))
	for _, cc := range c.Completors {
		ids = append(ids, cc.UserID)
	}
	return ids
}

// ChallengeCompletor records that a user finished a challenge. The composite
// unique index keeps each user in a challenge's completor set at most once.
type ChallengeCompletor struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"-"`
	ChallengeID string    `gorm:"uniqueIndex:idx_challenge_completor;not null" json:"challenge_id"`
	UserID      string    `gorm:"uniqueIndex:idx_challenge_completor;not null" json:"user_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
