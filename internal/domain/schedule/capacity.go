package schedule

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("invalid date, want YYYY-MM-DD")

// Remaining computes how many more reservations a slot accepts. Never
// negative, even if existing bookings already exceed the configured maximum
// (the maximum may have been lowered after bookings were taken).
func Remaining(maxReservations, countedReservations int) int {
	remaining := maxReservations - countedReservations
	if remaining < 0 {
		return 0
	}
	return remaining
}

// BucketKey identifies a slot bucket by both of its wall-clock boundaries,
// so two slots sharing a start time keep separate counts.
func BucketKey(start, end string) string {
	return start + "-" + end
}

// DayWindow returns the [start, end) instants covering one calendar date in
// the given location. Capacity counting buckets reservations by the tenant's
// local day, so the window is timezone-dependent.
func DayWindow(date string, loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	return day, day.AddDate(0, 0, 1), nil
}

// Weekday resolves the day-of-week of a calendar date.
func Weekday(date string) (time.Weekday, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, ErrInvalidDate
	}
	return day.Weekday(), nil
}

// MinuteOfDay returns the wall-clock minute of an instant in the given
// location. Used to find the slot bucket a booking instant belongs to.
func MinuteOfDay(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	return local.Hour()*60 + local.Minute()
}

// LocalDate formats an instant as the tenant-local calendar date.
func LocalDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
