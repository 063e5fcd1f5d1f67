package services

import (
	"time"

	"github.com/google/uuid"

	"notedesk/internal/models"
	"notedesk/internal/repositories"
	"notedesk/internal/throttle"
)

// ResetRequestService manages password-reset requests. The request id is the
// opaque value embedded in the emailed link; the record lives until the
// password change completes, so clicking the link without finishing the
// change does not burn it.
type ResetRequestService interface {
	CreateOrRenew(ownerID int, expiresAt time.Time) (string, error)
	Resolve(requestID string) (int, error)
	Delete(ownerID int) error
}

type resetRequestService struct {
	repo repositories.ThrottledRecordRepository
	now  func() time.Time
}

func NewResetRequestService(repo repositories.ThrottledRecordRepository) ResetRequestService {
	return &resetRequestService{repo: repo, now: time.Now}
}

// CreateOrRenew issues a reset request for the owner, or renews the existing
// one under the shared throttle policy. The caller controls the validity
// window; renewal keeps the request id stable so earlier emails stay usable
// until expiry.
func (s *resetRequestService) CreateOrRenew(ownerID int, expiresAt time.Time) (string, error) {
	rec, err := s.repo.FindActiveByOwner(ownerID, models.RecordKindReset)
	if err != nil {
		return "", err
	}

	if rec == nil {
		rec = &models.ThrottledRecord{
			ID:           uuid.NewString(),
			OwnerID:      ownerID,
			Kind:         models.RecordKindReset,
			ExpiresAt:    expiresAt,
			AttemptCount: 1,
		}
		if err := s.repo.Create(rec); err != nil {
			return "", err
		}
		return rec.ID, nil
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

	ok, err := s.repo.UpdateReissue(
		rec.ID, rec.AttemptCount,
		rec.SecretHash, expiresAt, count, throttle.LockoutAfter(count, now),
	)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrConcurrentReissue
	}
	return rec.ID, nil
}

// Resolve maps a request id back to its owner. It does not delete the
// record: deletion is an explicit step after the password change succeeds.
func (s *resetRequestService) Resolve(requestID string) (int, error) {
	rec, err := s.repo.FindByID(requestID)
	if err != nil {
		return 0, err
	}
	if rec == nil || rec.Kind != models.RecordKindReset {
		return 0, ErrResetNotFound
	}
	if s.now().After(rec.ExpiresAt) {
		return 0, ErrResetExpired
	}
	return rec.OwnerID, nil
}

func (s *resetRequestService) Delete(ownerID int) error {
	return s.repo.DeleteByOwner(ownerID, models.RecordKindReset)
}
