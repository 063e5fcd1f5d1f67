package models

import "time"

// Record kinds: one table backs both the login OTP challenge and the
// password-reset request, distinguished by kind.
const (
	RecordKindOTP   = "otp"
	RecordKindReset = "reset"
)

// ThrottledRecord — one active secret per (owner, kind). We store only the
// bcrypt hash of the secret (SecretHash), its TTL, the reissue counter and
// the lockout window. LockoutUntil is never nulled eagerly: an elapsed
// lockout is detected on read and the counter starts over.
type ThrottledRecord struct {
	ID           string     `json:"id"`
	OwnerID      int        `json:"owner_id"`
	Kind         string     `json:"kind"`
	SecretHash   string     `json:"-"`
	ExpiresAt    time.Time  `json:"expires_at"`
	AttemptCount int        `json:"attempt_count"`
	LockoutUntil *time.Time `json:"lockout_until,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
