// Package daily derives the daily challenge target and stores its results.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Target returns the hidden value for a date: low + HMAC(salt, YYYY-MM-DD) % (high-low).
// Everyone playing on the same UTC day with the same salt gets the same value.
// Returns low when the span is empty.
func Target(date time.Time, salt string, low, high int) int {
	if high <= low {
		return low
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return low + int(n%uint64(high-low))
}
