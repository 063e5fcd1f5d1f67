package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"notedesk/internal/models"
	"notedesk/internal/throttle"
)

func newTestResetService() (*resetRequestService, *fakeRecordRepo, *fakeClock) {
	repo := newFakeRecordRepo()
	clock := &fakeClock{t: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	svc := &resetRequestService{repo: repo, now: clock.Now}
	return svc, repo, clock
}

func TestCreateOrRenewFreshRecord(t *testing.T) {
	svc, repo, clock := newTestResetService()

	expires := clock.Now().Add(5 * time.Minute)
	id, err := svc.CreateOrRenew(7, expires)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rec, err := repo.FindActiveByOwner(7, models.RecordKindReset)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, id, rec.ID)
	require.Equal(t, 1, rec.AttemptCount, "fresh reset request starts at count 1")
	require.Equal(t, expires, rec.ExpiresAt)
}

func TestCreateOrRenewKeepsRequestIDStable(t *testing.T) {
	svc, _, clock := newTestResetService()

	first, err := svc.CreateOrRenew(7, clock.Now().Add(5*time.Minute))
	require.NoError(t, err)

	clock.Advance(time.Minute)
	renewed, err := svc.CreateOrRenew(7, clock.Now().Add(5*time.Minute))
	require.NoError(t, err)
	require.Equal(t, first, renewed, "renewal must keep the emailed link valid")
}

func TestCreateOrRenewLockout(t *testing.T) {
	svc, repo, clock := newTestResetService()

	var id string
	var err error
	for i := 1; i <= throttle.MaxAttempts; i++ {
		id, err = svc.CreateOrRenew(7, clock.Now().Add(5*time.Minute))
		require.NoError(t, err, "request %d", i)
	}

	rec, err := repo.FindByID(id)
	require.NoError(t, err)
	require.NotNil(t, rec.LockoutUntil)

	_, err = svc.CreateOrRenew(7, clock.Now().Add(5*time.Minute))
	var tooMany *TooManyAttemptsError
	require.ErrorAs(t, err, &tooMany)
	require.Equal(t, 24, tooMany.WaitHours)

	// past the lockout the counter starts over at 1
	clock.Advance(25 * time.Hour)
	_, err = svc.CreateOrRenew(7, clock.Now().Add(5*time.Minute))
	require.NoError(t, err)
	rec, err = repo.FindByID(id)
	require.NoError(t, err)
	require.Equal(t, 1, rec.AttemptCount)
	require.Nil(t, rec.LockoutUntil)
}

func TestResolve(t *testing.T) {
	svc, _, clock := newTestResetService()

	_, err := svc.Resolve("missing")
	require.ErrorIs(t, err, ErrResetNotFound)

	id, err := svc.CreateOrRenew(7, clock.Now().Add(5*time.Minute))
	require.NoError(t, err)

	owner, err := svc.Resolve(id)
	require.NoError(t, err)
	require.Equal(t, 7, owner)

	// resolve does not consume the request
	owner, err = svc.Resolve(id)
	require.NoError(t, err)
	require.Equal(t, 7, owner)

	clock.Advance(6 * time.Minute)
	_, err = svc.Resolve(id)
	require.ErrorIs(t, err, ErrResetExpired)
}

func TestResolveRejectsOTPRecords(t *testing.T) {
	svc, repo, clock := newTestResetService()

	rec := &models.ThrottledRecord{
		ID:        "otp-record",
		OwnerID:   7,
		Kind:      models.RecordKindOTP,
		ExpiresAt: clock.Now().Add(5 * time.Minute),
	}
	require.NoError(t, repo.Create(rec))

	_, err := svc.Resolve("otp-record")
	require.ErrorIs(t, err, ErrResetNotFound)
}

func TestResetDeleteIsIdempotent(t *testing.T) {
	svc, repo, clock := newTestResetService()

	_, err := svc.CreateOrRenew(7, clock.Now().Add(5*time.Minute))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(7))
	rec, err := repo.FindActiveByOwner(7, models.RecordKindReset)
	require.NoError(t, err)
	require.Nil(t, rec)

	require.NoError(t, svc.Delete(7))
}
