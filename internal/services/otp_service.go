package services

import (
	"time"

	"github.com/google/uuid"

	"notedesk/internal/models"
	"notedesk/internal/repositories"
	"notedesk/internal/throttle"
	"notedesk/internal/utils"
)

const (
	otpCodeLength = 6
	otpValidity   = 6 * time.Minute
)

// OTPService manages the one-time login code sent after a successful password
// check. At most one active code exists per user; resends go through the
// shared throttle policy.
type OTPService interface {
	IssueInitial(ownerID int) (string, error)
	Reissue(ownerID int) (string, error)
	Verify(ownerID int, code string) error
	Delete(ownerID int) error
}

type otpService struct {
	repo   repositories.ThrottledRecordRepository
	hasher SecretHasher
	now    func() time.Time
}

func NewOTPService(repo repositories.ThrottledRecordRepository, hasher SecretHasher) OTPService {
	return &otpService{repo: repo, hasher: hasher, now: time.Now}
}

// IssueInitial creates the first challenge for an owner. Fails with
// ErrActiveChallenge when one already exists: the caller must go through
// Reissue so the attempt counter keeps counting.
func (s *otpService) IssueInitial(ownerID int) (string, error) {
	existing, err := s.repo.FindActiveByOwner(ownerID, models.RecordKindOTP)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrActiveChallenge
	}

	code, err := utils.NumericCode(otpCodeLength)
	if err != nil {
		return "", err
	}
	hash, err := s.hasher.HashSecret(code)
	if err != nil {
		return "", err
	}
	rec := &models.ThrottledRecord{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Kind:         models.RecordKindOTP,
		SecretHash:   hash,
		ExpiresAt:    s.now().Add(otpValidity),
		AttemptCount: 0,
	}
	if err := s.repo.Create(rec); err != nil {
		return "", err
	}
	return code, nil
}

// Reissue replaces the active code with a fresh one, subject to the lockout
// policy. The 5th reissue arms a 24h lockout; an elapsed lockout resets the
// counter before incrementing.
func (s *otpService) Reissue(ownerID int) (string, error) {
	rec, err := s.repo.FindActiveByOwner(ownerID, models.RecordKindOTP)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", ErrChallengeNotFound
	}

	now := s.now()
	decision, wait := throttle.Evaluate(rec.LockoutUntil, now)
	if decision == throttle.Reject {
		return "", &TooManyAttemptsError{WaitHours: wait.Hours, WaitMinutes: wait.Minutes}
	}

	count := rec.AttemptCount
	if decision == throttle.AllowAndResetCount {
		count = 0
	}
	count++

	code, err := utils.NumericCode(otpCodeLength)
	if err != nil {
		return "", err
	}
	hash, err := s.hasher.HashSecret(code)
	if err != nil {
		return "", err
	}

	ok, err := s.repo.UpdateReissue(
		rec.ID, rec.AttemptCount,
		hash, now.Add(otpValidity), count, throttle.LockoutAfter(count, now),
	)
	if err != nil {
		return "", err
	}
	if !ok {
		// a concurrent reissue rewrote the record first
		return "", ErrConcurrentReissue
	}
	return code, nil
}

// Verify checks the supplied code against the stored digest. Expiry is
// checked before the comparison: an expired code never verifies, matching
// hash or not.
func (s *otpService) Verify(ownerID int, code string) error {
	rec, err := s.repo.FindActiveByOwner(ownerID, models.RecordKindOTP)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrChallengeNotFound
	}
	if s.now().After(rec.ExpiresAt) {
		return ErrCodeExpired
	}
	if !s.hasher.CompareSecret(code, rec.SecretHash) {
		return ErrCodeInvalid
	}
	return nil
}

func (s *otpService) Delete(ownerID int) error {
	return s.repo.DeleteByOwner(ownerID, models.RecordKindOTP)
}
