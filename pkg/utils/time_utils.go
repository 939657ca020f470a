package utils

import (
	"fmt"
	"time"
)

// Korea time location (KST, +09:00)
var krLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Seoul"); err == nil {
		return loc
	}
	return time.FixedZone("KST", 9*3600)
}()

// Convert an epoch value in seconds to KST.
// Returns zero time if t<=0 to let callers decide how to render.
func FromUnixSecondsKST(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).In(krLoc)
}

func FormatRFC3339KST(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(krLoc).Format(time.RFC3339)
}

const minutesPerDay = 24 * 60

// ParseClock parses a wall-clock "HH:MM" string into minutes since midnight.
// Exactly two digits on each side of the colon; anything else is rejected.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidStartTime
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidStartTime
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, ErrInvalidStartTime
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM", wrapping past 24h.
// Itineraries are single-day, so no date rollover is carried.
func FormatClock(minutes int) string {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
