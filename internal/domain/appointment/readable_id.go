package appointment

import (
	"fmt"
	"strings"
	"time"
)

// FormatReadableID derives the human-facing appointment code:
// first three characters of the salon id upper-cased, the reference date as
// yymmdd, and the per-salon sequence number padded to three digits.
//
//	abc123.., 7, 2024-03-05  ->  "ABC-240305-007"
//
// The code is persisted once at booking time with the booking date as
// reference; recomputing it later with a different date yields a different
// code for the same appointment.
func FormatReadableID(salonID string, number int, ref time.Time) string {
	prefix := salonID
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%s-%s-%03d",
		strings.ToUpper(prefix),
		ref.Format("060102"),
		number,
	)
}

// EnsureReadableID backfills the code for rows created before it was
// persisted. Such rows get the original recompute-at-read behavior, keyed on
// the current date.
func EnsureReadableID(readableID, salonID string, number int, now time.Time) string {
	if readableID != "" {
		return readableID
	}
	return FormatReadableID(salonID, number, now)
}
