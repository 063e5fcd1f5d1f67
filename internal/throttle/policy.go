// Package throttle holds the shared attempt-throttling decision logic used by
// the OTP challenge and password-reset request flows. It is pure: no I/O, no
// clock reads — callers pass "now" in.
package throttle

import "time"

const (
	// MaxAttempts is the reissue count at which a lockout starts.
	// The comparison is >=, so the lockout is set on the 5th reissue itself.
	MaxAttempts = 5

	// LockoutDuration is how long reissues stay blocked once the
	// threshold is reached.
	LockoutDuration = 24 * time.Hour
)

type Decision int

const (
	// Allow — no active lockout, caller may reissue.
	Allow Decision = iota
	// AllowAndResetCount — a lockout existed but has elapsed; caller must
	// reset the attempt count to zero before applying the reissue side
	// effects.
	AllowAndResetCount
	// Reject — lockout still active; caller must surface the wait time.
	Reject
)

// Wait is the remaining lockout, split into whole hours and leftover minutes.
type Wait struct {
	Hours   int
	Minutes int
}

// Evaluate decides whether a reissue may proceed given the record's lockout
// timestamp. The lockout field itself is never cleared here: an elapsed
// lockout simply yields AllowAndResetCount on every read until the record is
// rewritten.
func Evaluate(lockoutUntil *time.Time, now time.Time) (Decision, Wait) {
	if lockoutUntil == nil {
		return Allow, Wait{}
	}
	if lockoutUntil.After(now) {
		return Reject, remaining(*lockoutUntil, now)
	}
	return AllowAndResetCount, Wait{}
}

// LockoutAfter returns the lockout timestamp to persist after a reissue that
// brought the attempt count to attempts, or nil when the threshold has not
// been reached.
func LockoutAfter(attempts int, now time.Time) *time.Time {
	if attempts < MaxAttempts {
		return nil
	}
	t := now.Add(LockoutDuration)
	return &t
}

func remaining(until, now time.Time) Wait {
	d := until.Sub(now)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	return Wait{Hours: h, Minutes: m}
}
