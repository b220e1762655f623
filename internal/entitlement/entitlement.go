package entitlement

import "time"

// IsEntitled reports whether an expiry timestamp grants an active Survival
// Pack. The boundary is exclusive: an expiry equal to now is already expired.
func IsEntitled(expiry *time.Time, now time.Time) bool {
	if expiry == nil {
		return false
	}
	return expiry.After(now)
}
