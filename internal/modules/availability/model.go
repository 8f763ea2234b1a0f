// README: Weekly availability slot definitions.
package availability

import (
	"errors"
	"strings"
	"time"

	"rideshare/internal/types"
)

var (
	ErrInvalidRange = errors.New("invalid slot range")
	ErrInvalidDay   = errors.New("invalid day of week")
)

// Slot is a recurring weekly window during which a driver accepts requests.
// Minutes are minutes-of-day; the window covers [StartMinute, EndMinute).
type Slot struct {
	ID          int64
	DriverID    types.ID
	Day         time.Weekday
	StartMinute int
	EndMinute   int
}

var dayNames = map[string]time.Weekday{
	"MON": time.Monday,
	"TUE": time.Tuesday,
	"WED": time.Wednesday,
	"THU": time.Thursday,
	"FRI": time.Friday,
	"SAT": time.Saturday,
	"SUN": time.Sunday,
}

// ParseDay converts the wire form ("MON".."SUN") to a weekday.
func ParseDay(s string) (time.Weekday, error) {
	d, ok := dayNames[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return 0, ErrInvalidDay
	}
	return d, nil
}

// FormatDay renders a weekday in the wire form.
func FormatDay(d time.Weekday) string {
	for name, day := range dayNames {
		if day == d {
			return name
		}
	}
	return ""
}
