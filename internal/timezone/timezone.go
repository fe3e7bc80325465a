package timezone

import (
	"fmt"
	"time"
)

const DefaultTimezone = "Asia/Ho_Chi_Minh"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	// no tzdata available; Vietnam has no DST
	return time.FixedZone("ICT", 7*60*60)
}

// Clock is the store's notion of "now". Appointment dates and times are
// interpreted in its location.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(tz string) Clock {
	return Clock{loc: Location(tz), now: time.Now}
}

// Fixed returns a clock frozen at t, for tests.
func Fixed(t time.Time, tz string) Clock {
	return Clock{loc: Location(tz), now: func() time.Time { return t }}
}

func (c Clock) Location() *time.Location {
	if c.loc == nil {
		return Location(DefaultTimezone)
	}
	return c.loc
}

func (c Clock) Now() time.Time {
	if c.now == nil {
		return time.Now().In(c.Location())
	}
	return c.now().In(c.Location())
}

// Today is the current calendar date in the store's location.
func (c Clock) Today() string {
	return c.Now().Format("2006-01-02")
}

// At combines a YYYY-MM-DD date and an HH:MM:SS time in the store's location.
func (c Clock) At(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", date+" "+clock, c.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("combine %s %s: %w", date, clock, err)
	}
	return t, nil
}
