package services

import "errors"

// Submission workflow failure taxonomy. Every error here is detected before
// any write happens; once the submission row is committed the workflow no
// longer fails the request (completor and ranking updates are best-effort).
var (
	ErrUnauthenticated    = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingChallengeID = errors.New("challengeId is required")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrAlreadyCompleted   = errors.New("user has already completed this challenge")
	ErrAlreadySubmitted   = errors.New("user has already submitted an entry to this challenge")
	ErrMissingProof       = errors.New("image proof is required")
	ErrUploadFailed       = errors.New("proof upload failed")
)
