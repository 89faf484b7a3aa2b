package model

import (
	"fmt"
	"time"
)

// FormatCreatedAt renders t the way the legacy client stored it, e.g.
// "2026. 8. 31. 오후 03:04:05". Feed ordering is a plain string compare
// over this value, so the format must stay byte-stable even though it
// is not lexicographically monotonic across month/day boundaries.
func FormatCreatedAt(t time.Time) string {
	meridiem := "오전"
	hour := t.Hour()
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		meridiem = "오후"
	case hour > 12:
		meridiem = "오후"
		hour -= 12
	}

	return fmt.Sprintf("%d. %d. %d. %s %02d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), meridiem, hour, t.Minute(), t.Second())
}
