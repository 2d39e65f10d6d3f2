package models

// Submission is the durable proof that a user completed a challenge.
// The composite unique index on (user_id, challenge_id) allows at most one
// row per pair. Concurrent requests that slip past the eligibility checks
// collide here, and the duplicate-key error is surfaced as "already submitted".
type Submission struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string `gorm:"uniqueIndex:idx_submission_user_challenge;not null" json:"user_id"`
	ChallengeID string `gorm:"uniqueIndex:idx_submission_user_challenge;not null" json:"challenge_id"`
	Username    string `json:"username"` // submitter's display name at submission time
	Proof       string `gorm:"type:text;not null" json:"proof"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	Timestamps
}
