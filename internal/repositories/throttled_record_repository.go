package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"notedesk/internal/models"
)

// ThrottledRecordRepository persists the single active OTP challenge or
// password-reset request per (owner, kind). A partial unique index on
// (owner_id, kind) backs the one-active-record invariant.
type ThrottledRecordRepository interface {
	FindActiveByOwner(ownerID int, kind string) (*models.ThrottledRecord, error)
	FindByID(id string) (*models.ThrottledRecord, error)
	Create(rec *models.ThrottledRecord) error

	// UpdateReissue rewrites the secret/expiry/count/lockout fields, guarded
	// by the attempt count read before the mutation. A false return means a
	// concurrent reissue won the race and nothing was written.
	UpdateReissue(id string, prevAttempts int, secretHash string, expiresAt time.Time, attempts int, lockoutUntil *time.Time) (bool, error)

	// DeleteByOwner is idempotent: deleting a missing record is not an error.
	DeleteByOwner(ownerID int, kind string) error
}

type throttledRecordRepository struct {
	DB *sql.DB
}

func NewThrottledRecordRepository(db *sql.DB) ThrottledRecordRepository {
	return &throttledRecordRepository{DB: db}
}

const recordColumns = `
	id, owner_id, kind, secret_hash, expires_at, attempt_count, lockout_until, created_at, updated_at
`

func scanRecord(row *sql.Row) (*models.ThrottledRecord, error) {
	rec := &models.ThrottledRecord{}
	var lockout sql.NullTime
	err := row.Scan(
		&rec.ID, &rec.OwnerID, &rec.Kind, &rec.SecretHash,
		&rec.ExpiresAt, &rec.AttemptCount, &lockout,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("throttled_record scan: %w", err)
	}
	if lockout.Valid {
		t := lockout.Time
		rec.LockoutUntil = &t
	}
	return rec, nil
}

func (r *throttledRecordRepository) FindActiveByOwner(ownerID int, kind string) (*models.ThrottledRecord, error) {
	const q = `
		SELECT ` + recordColumns + `
		FROM throttled_records
		WHERE owner_id = $1 AND kind = $2
	`
	return scanRecord(r.DB.QueryRow(q, ownerID, kind))
}

func (r *throttledRecordRepository) FindByID(id string) (*models.ThrottledRecord, error) {
	const q = `
		SELECT ` + recordColumns + `
		FROM throttled_records
		WHERE id = $1
	`
	return scanRecord(r.DB.QueryRow(q, id))
}

func (r *throttledRecordRepository) Create(rec *models.ThrottledRecord) error {
	const q = `
		INSERT INTO throttled_records (id, owner_id, kind, secret_hash, expires_at, attempt_count, lockout_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := r.DB.QueryRow(q,
		rec.ID, rec.OwnerID, rec.Kind, rec.SecretHash,
		rec.ExpiresAt, rec.AttemptCount, rec.LockoutUntil,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("throttled_record create: %w", err)
	}
	return nil
}

func (r *throttledRecordRepository) UpdateReissue(id string, prevAttempts int, secretHash string, expiresAt time.Time, attempts int, lockoutUntil *time.Time) (bool, error) {
	const q = `
		UPDATE throttled_records
		SET secret_hash = $1, expires_at = $2, attempt_count = $3, lockout_until = $4, updated_at = NOW()
		WHERE id = $5 AND attempt_count = $6
	`
	res, err := r.DB.Exec(q, secretHash, expiresAt, attempts, lockoutUntil, id, prevAttempts)
	if err != nil {
		return false, fmt.Errorf("throttled_record reissue: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *throttledRecordRepository) DeleteByOwner(ownerID int, kind string) error {
	_, err := r.DB.Exec(`DELETE FROM throttled_records WHERE owner_id = $1 AND kind = $2`, ownerID, kind)
	return err
}
