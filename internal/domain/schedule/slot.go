package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidWallClock = errors.New("invalid wall-clock time")
	ErrInvalidSlot      = errors.New("slot must be a weekly template or a date override, not both")
)

// Slot is one configured bookable window for a restaurant: either a weekly
// template (DayOfWeek set) or a one-off override for a specific date (Date
// set). Start and end are wall-clock "15:04" strings with no date attached.
type Slot struct {
	ID              uuid.UUID
	RestaurantID    uuid.UUID
	DayOfWeek       *int // 0 (Sunday) – 6
	Date            *string
	Start           string
	End             string
	MaxReservations int
	Active          bool
	Default         bool
}

func (s Slot) Validate() error {
	if (s.DayOfWeek == nil) == (s.Date == nil) {
		return ErrInvalidSlot
	}
	if s.DayOfWeek != nil && (*s.DayOfWeek < 0 || *s.DayOfWeek > 6) {
		return ErrInvalidSlot
	}
	if _, err := ParseWallClock(s.Start); err != nil {
		return err
	}
	if _, err := ParseWallClock(s.End); err != nil {
		return err
	}
	return nil
}

// IsOverride reports whether the slot is a specific-date override rather
// than a weekly template.
func (s Slot) IsOverride() bool {
	return s.Date != nil
}

// Contains reports whether a local wall-clock minute falls inside
// [start, end). Used to derive the slot bucket at booking time.
func (s Slot) Contains(minuteOfDay int) bool {
	start, err := ParseWallClock(s.Start)
	if err != nil {
		return false
	}
	end, err := ParseWallClock(s.End)
	if err != nil {
		return false
	}
	return minuteOfDay >= start && minuteOfDay < end
}

// DisplayStart formats the start time as a 12-hour display string,
// e.g. "18:00" -> "6:00 PM".
func (s Slot) DisplayStart() string {
	return DisplayWallClock(s.Start)
}

// ParseWallClock parses "15:04" into minutes since midnight.
func ParseWallClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		// Some stores keep seconds on time columns.
		t, err = time.Parse("15:04:05", value)
		if err != nil {
			return 0, ErrInvalidWallClock
		}
	}
	return t.Hour()*60 + t.Minute(), nil
}

// DisplayWallClock renders a "15:04" wall-clock string as "h:mm AM/PM".
// Invalid input is returned unchanged rather than dropped.
func DisplayWallClock(value string) string {
	minutes, err := ParseWallClock(value)
	if err != nil {
		return value
	}
	hour := minutes / 60
	min := minutes % 60
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, min, suffix)
}

// ForDate selects the slots applicable to one calendar date: specific-date
// overrides for that date win; otherwise the weekly templates for its
// weekday apply. Inactive slots never apply. The result is sorted by start
// time.
func ForDate(slots []Slot, date string, weekday time.Weekday) []Slot {
	var overrides, templates []Slot
	for _, s := range slots {
		if !s.Active {
			continue
		}
		switch {
		case s.Date != nil && *s.Date == date:
			overrides = append(overrides, s)
		case s.DayOfWeek != nil && *s.DayOfWeek == int(weekday):
			templates = append(templates, s)
		}
	}

	selected := templates
	if len(overrides) > 0 {
		selected = overrides
	}

	sort.Slice(selected, func(i, j int) bool {
		a, _ := ParseWallClock(selected[i].Start)
		b, _ := ParseWallClock(selected[j].Start)
		return a < b
	})
	return selected
}
