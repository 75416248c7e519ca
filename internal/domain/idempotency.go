package domain

import (
	"fmt"
	"regexp"
	"time"
)

var (
	hexHashPattern    = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)
	base64HashPattern = regexp.MustCompile(`^[A-Za-z0-9+/_-]{43}[A-Za-z0-9+/_=-]$`)
)

// YieldKey returns the idempotency key of the yield accrued from lastAccrualAt.
// Two schedulers reading the same position state produce the same key.
func YieldKey(positionID uint64, lastAccrualAt time.Time) string {
	return fmt.Sprintf("%s:%d:%d", YIELD_KEY_PREFIX, positionID, lastAccrualAt.UnixNano())
}

// CommissionKey returns the idempotency key of the commission paid at level for a source transaction
func CommissionKey(sourceTransactionID uint64, level int) string {
	return fmt.Sprintf("%s:%d:%d", COMMISSION_KEY_PREFIX, sourceTransactionID, level)
}

// CheckKeyStrength reports whether an external idempotency key deviates from the natural
// transaction-hash format, and why. Flagged keys are still accepted.
func CheckKeyStrength(key string) (flagged bool, reason string) {
	switch {
	case hexHashPattern.MatchString(key):
		return false, ""
	case len(key) == 44 && base64HashPattern.MatchString(key):
		return false, ""
	case len(key) == 0:
		return true, "empty key"
	case len(key) < 32:
		return true, fmt.Sprintf("short key (%d chars), not a transaction hash", len(key))
	default:
		return true, "key is not a 64-char hex or 44-char base64 transaction hash"
	}
}
