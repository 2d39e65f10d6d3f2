package services

import (
	"errors"
	"mime/multipart"
	"testing"

	"wastewise-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUploader struct {
	url string
	err error
}

func (u stubUploader) Upload(fh *multipart.FileHeader, key string) (string, error) {
	return u.url, u.err
}

type failingAwarder struct{}

func (failingAwarder) AwardPoints(userID string, delta int64) (*models.Ranking, error) {
	return nil, errors.New("ranking store unavailable")
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     models.RoleUser,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedChallenge(t *testing.T, db *gorm.DB, title string, points int64) *models.Challenge {
	t.Helper()
	ch := &models.Challenge{
		ID:     uuid.NewString(),
		Title:  title,
		Slug:   title,
		Points: points,
	}
	require.NoError(t, db.Create(ch).Error)
	return ch
}

type storeCounts struct {
	submissions, completors, rankings int64
}

func countStores(t *testing.T, db *gorm.DB) storeCounts {
	t.Helper()
	var c storeCounts
	require.NoError(t, db.Model(&models.Submission{}).Count(&c.submissions).Error)
	require.NoError(t, db.Model(&models.ChallengeCompletor{}).Count(&c.completors).Error)
	require.NoError(t, db.Model(&models.Ranking{}).Count(&c.rankings).Error)
	return c
}

func newSubmissionService(db *gorm.DB) *SubmissionService {
	return NewSubmissionService(db, stubUploader{url: "https://cdn.example.com/proof.png"}, NewRankingService(db, nil))
}

func identityFor(u *models.User) *Identity {
	return &Identity{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

func TestSubmitEntrySuccess(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	ch := seedChallenge(t, db, "segregate-a-week", 50)
	svc := newSubmissionService(db)

	res, err := svc.SubmitEntry(SubmitEntryInput{
		Identity:    identityFor(user),
		ChallengeID: ch.ID,
		ProofURL:    "https://img.example.com/p.jpg",
		Description: "one week of segregated waste",
	})
	require.NoError(t, err)

	require.NotNil(t, res.Submission)
	assert.Equal(t, user.ID, res.Submission.UserID)
	assert.Equal(t, ch.ID, res.Submission.ChallengeID)
	assert.Equal(t, "alice", res.Submission.Username)
	assert.Equal(t, "https://img.example.com/p.jpg", res.Submission.Proof)

	// ranking record created lazily with the challenge's reward
	require.NotNil(t, res.Ranking)
	assert.EqualValues(t, 50, res.Ranking.Points)
	assert.Equal(t, "Bronze", res.Ranking.Rank)

	// completor set reflects the submission
	var completor models.ChallengeCompletor
	require.NoError(t, db.Where("challenge_id = ? AND user_id = ?", ch.ID, user.ID).First(&completor).Error)
}

func TestSubmitEntryDuplicateIsRejected(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	ch := seedChallenge(t, db, "segregate-a-week", 50)
	svc := newSubmissionService(db)

	_, err := svc.SubmitEntry(SubmitEntryInput{
		Identity: identityFor(user), ChallengeID: ch.ID, ProofURL: "https://img.example.com/p.jpg",
	})
	require.NoError(t, err)
	before := countStores(t, db)

	// completor row exists, so the cheap check fires first
	_, err = svc.SubmitEntry(SubmitEntryInput{
		Identity: identityFor(user), ChallengeID: ch.ID, ProofURL: "https://img.example.com/p2.jpg",
	})
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	// even with the completor row gone the submission table still blocks it
	require.NoError(t, db.Where("challenge_id = ? AND user_id = ?", ch.ID, user.ID).
		Delete(&models.ChallengeCompletor{}).Error)
	_, err = svc.SubmitEntry(SubmitEntryInput{
		Identity: identityFor(user), ChallengeID: ch.ID, ProofURL: "https://img.example.com/p3.jpg",
	})
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	after := countStores(t, db)
	assert.Equal(t, before.submissions, after.submissions)
	assert.Equal(t, before.rankings, after.rankings)

	// no double award
	var r models.Ranking
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&r).Error)
	assert.EqualValues(t, 50, r.Points)
}

// The composite unique index on (user_id, challenge_id) is what the duplicate
// guard leans on; a second row for the same pair must fail at the storage layer.
func TestSubmissionUniqueIndexBlocksSecondInsert(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	ch := seedChallenge(t, db, "segregate-a-week", 50)

	first := models.Submission{
		ID: uuid.NewString(), UserID: user.ID, ChallengeID: ch.ID,
		Username: user.Username, Proof: "https://img.example.com/p1.jpg",
	}
	require.NoError(t, db.Create(&first).Error)

	dup := models.Submission{
		ID: uuid.NewString(), UserID: user.ID, ChallengeID: ch.ID,
		Username: user.Username, Proof: "https://img.example.com/p2.jpg",
	}
	err := db.Create(&dup).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

// The pre-checks cannot see a submission committed between the check and the
// insert. The unique index catches it and the conflict maps to the same
// rejection the check would have produced.
func TestSubmitEntryInsertConflictMapsToAlreadySubmitted(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	ch := seedChallenge(t, db, "segregate-a-week", 50)
	svc := newSubmissionService(db)

	// commit a rival submission the moment SubmitEntry reaches its insert,
	// after both pre-checks have passed but before the insert takes a
	// connection of its own
	injected := false
	require.NoError(t, db.Callback().Create().Before("gorm:begin_transaction").Register("rival_submission", func(tx *gorm.DB) {
		if injected {
			return
		}
		if _, ok := tx.Statement.Dest.(*models.Submission); !ok {
			return
		}
		injected = true
		rival := models.Submission{
			ID: uuid.NewString(), UserID: user.ID, ChallengeID: ch.ID,
			Username: user.Username, Proof: "https://img.example.com/rival.jpg",
		}
		require.NoError(t, db.Create(&rival).Error)
	}))
	t.Cleanup(func() { _ = db.Callback().Create().Remove("rival_submission") })

	_, err := svc.SubmitEntry(SubmitEntryInput{
		Identity: identityFor(user), ChallengeID: ch.ID, ProofURL: "https://img.example.com/p.jpg",
	})
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	// only the rival's row survives, and the loser awarded nothing
	var count int64
	require.NoError(t, db.Model(&models.Submission{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	require.NoError(t, db.Model(&models.Ranking{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSubmitEntryRejectionsWriteNothing(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	ch := seedChallenge(t, db, "segregate-a-week", 50)
	svc := newSubmissionService(db)
	before := countStores(t, db)

	cases := []struct {
		name string
		in   SubmitEntryInput
		want error
	}{
		{"no identity", SubmitEntryInput{ChallengeID: ch.ID, ProofURL: "x"}, ErrUnauthenticated},
		{"unknown user", SubmitEntryInput{Identity: &Identity{ID: uuid.NewString()}, ChallengeID: ch.ID, ProofURL: "x"}, ErrUserNotFound},
		{"missing challenge id", SubmitEntryInput{Identity: identityFor(user), ProofURL: "x"}, ErrMissingChallengeID},
		{"unknown challenge", SubmitEntryInput{Identity: identityFor(user), ChallengeID: uuid.NewString(), ProofURL: "x"}, ErrChallengeNotFound},
		{"missing proof", SubmitEntryInput{Identity: identityFor(user), ChallengeID: ch.ID}, ErrMissingProof},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SubmitEntry(tc.in)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, before, countStores(t, db))
		})
	}
}

func TestSubmitEntryAlreadyCompletedWritesNothing(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	ch := seedChallenge(t, db, "segregate-a-week", 50)
	require.NoError(t, db.Create(&models.ChallengeCompletor{
		ID: uuid.NewString(), ChallengeID: ch.ID, UserID: user.ID,
	}).Error)
	svc := newSubmissionService(db)
	before := countStores(t, db)

	_, err := svc.SubmitEntry(SubmitEntryInput{
		Identity: identityFor(user), ChallengeID: ch.ID, ProofURL: "https://img.example.com/p.jpg",
	})
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, before, countStores(t, db))
}

func TestSubmitEntryUploadFailureWritesNothing(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	ch := seedChallenge(t, db, "segregate-a-week", 50)
	svc := NewSubmissionService(db, stubUploader{err: errors.New("bucket down")}, NewRankingService(db, nil))
	before := countStores(t, db)

	_, err := svc.SubmitEntry(SubmitEntryInput{
		Identity:    identityFor(user),
		ChallengeID: ch.ID,
		File:        &multipart.FileHeader{Filename: "proof.jpg"},
	})
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Equal(t, before, countStores(t, db))
}

// A ranking failure after the commit point must not fail the request and
// must not touch the previously stored rank.
func TestSubmitEntryRankingFailureIsNonFatal(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	ch := seedChallenge(t, db, "segregate-a-week", 50)

	prior := models.Ranking{ID: uuid.NewString(), UserID: user.ID, Points: 120, Rank: "Silver"}
	require.NoError(t, db.Create(&prior).Error)

	svc := NewSubmissionService(db, stubUploader{url: "u"}, failingAwarder{})

	res, err := svc.SubmitEntry(SubmitEntryInput{
		Identity: identityFor(user), ChallengeID: ch.ID, ProofURL: "https://img.example.com/p.jpg",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Submission)
	assert.Nil(t, res.Ranking)

	var sub models.Submission
	require.NoError(t, db.Where("user_id = ? AND challenge_id = ?", user.ID, ch.ID).First(&sub).Error)

	var r models.Ranking
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&r).Error)
	assert.EqualValues(t, 120, r.Points)
	assert.Equal(t, "Silver", r.Rank)
}

func TestSubmitEntryDistinctChallengesAccumulate(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	svc := newSubmissionService(db)

	points := []int64{40, 35, 30}
	var sum int64
	for i, p := range points {
		ch := seedChallenge(t, db, "challenge-"+uuid.NewString()[:8], p)
		sum += p
		res, err := svc.SubmitEntry(SubmitEntryInput{
			Identity: identityFor(user), ChallengeID: ch.ID, ProofURL: "https://img.example.com/p.jpg",
		})
		require.NoError(t, err, "submission %d", i)
		require.NotNil(t, res.Ranking)
		assert.Equal(t, sum, res.Ranking.Points)
	}

	rank, ok := RankByPoints(sum)
	require.True(t, ok)
	var r models.Ranking
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&r).Error)
	assert.Equal(t, sum, r.Points)
	assert.Equal(t, rank, r.Rank)
}
