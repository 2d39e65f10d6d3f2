package services

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"wastewise-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Identity is the already-verified claim set extracted from the caller's
// token by the auth middleware.
type Identity struct {
	ID       string
	Username string
	Email    string
	Role     string
}

// ProofUploader turns an uploaded file into a durable URL.
type ProofUploader interface {
	Upload(fh *multipart.FileHeader, key string) (string, error)
}

// PointsAwarder updates a user's ranking record after an accepted submission.
type PointsAwarder interface {
	AwardPoints(userID string, delta int64) (*models.Ranking, error)
}

type SubmissionService struct {
	DB       *gorm.DB
	Uploader ProofUploader
	Rankings PointsAwarder
}

func NewSubmissionService(db *gorm.DB, uploader ProofUploader, rankings PointsAwarder) *SubmissionService {
	return &SubmissionService{DB: db, Uploader: uploader, Rankings: rankings}
}

type SubmitEntryInput struct {
	Identity    *Identity
	ChallengeID string
	ProofURL    string                // explicit proof link, used when no file is uploaded
	File        *multipart.FileHeader // optional uploaded proof image
	Description string
}

type SubmitEntryResult struct {
	Submission *models.Submission `json:"submission"`
	// Ranking is nil when the post-commit ranking update failed; the
	// submission itself still succeeded.
	Ranking *models.Ranking `json:"ranking"`
}

// SubmitEntry runs the challenge submission workflow: resolve the caller,
// resolve the challenge, check eligibility against both the completor set
// and the submission table, resolve the proof, then persist.
//
// Everything before the submission insert fails the whole request with no
// writes. The insert is the commit point: the completor append and the
// ranking award after it are best-effort, so their failures are logged and the
// caller still gets the accepted submission back. A lost completor row is
// healed later by the reconciler; the submission table is the source of truth.
func (s *SubmissionService) SubmitEntry(in SubmitEntryInput) (*SubmitEntryResult, error) {
	if in.Identity == nil || in.Identity.ID == "" {
		return nil, ErrUnauthenticated
	}

	var user models.User
	if err := s.DB.Where("id = ?", in.Identity.ID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	challengeID := strings.TrimSpace(in.ChallengeID)
	if challengeID == "" {
		return nil, ErrMissingChallengeID
	}
	var challenge models.Challenge
	if err := s.DB.Where("id = ?", challengeID).First(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("fetch challenge: %w", err)
	}

	// Cheap eligibility check first: the completor set, before touching the
	// submission table or doing any upload work.
	var completed int64
	if err := s.DB.Model(&models.ChallengeCompletor{}).
		Where("challenge_id = ? AND user_id = ?", challenge.ID, user.ID).
		Count(&completed).Error; err != nil {
		return nil, fmt.Errorf("check completors: %w", err)
	}
	if completed > 0 {
		return nil, ErrAlreadyCompleted
	}

	// Defense in depth: the completor set is a derived index and can drift,
	// so also check the submission table itself.
	var existing int64
	if err := s.DB.Model(&models.Submission{}).
		Where("user_id = ? AND challenge_id = ?", user.ID, challenge.ID).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check submissions: %w", err)
	}
	if existing > 0 {
		return nil, ErrAlreadySubmitted
	}

	// Proof resolution happens after the duplicate checks to avoid paying
	// for an upload on a request that was never eligible.
	proofURL := strings.TrimSpace(in.ProofURL)
	if in.File == nil && proofURL == "" {
		return nil, ErrMissingProof
	}
	if in.File != nil {
		key := fmt.Sprintf("proofs/%s%s", uuid.NewString(), filepath.Ext(in.File.Filename))
		url, err := s.Uploader.Upload(in.File, key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		proofURL = url
	}

	submission := models.Submission{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		ChallengeID: challenge.ID,
		Username:    user.Username,
		Proof:       proofURL,
		Description: in.Description,
	}
	if err := s.DB.Create(&submission).Error; err != nil {
		// The unique index on (user_id, challenge_id) closes the race the
		// pre-checks can't: a concurrent duplicate loses here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("create submission: %w", err)
	}

	if err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.ChallengeCompletor{
		ID:          uuid.NewString(),
		ChallengeID: challenge.ID,
		UserID:      user.ID,
	}).Error; err != nil {
		log.Printf("Error updating challenge completors for %s/%s: %v", challenge.ID, user.ID, err)
	}

	ranking, err := s.Rankings.AwardPoints(user.ID, challenge.Points)
	if err != nil {
		log.Printf("Error updating ranking after submission %s: %v", submission.ID, err)
		ranking = nil
	}

	return &SubmitEntryResult{Submission: &submission, Ranking: ranking}, nil
}
