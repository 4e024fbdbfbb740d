package availability

import (
	"fmt"
	"strings"
	"time"
)

// Default values applied when a settings field is missing or zero.
const (
	DefaultSearchRangeDays = 14
	DefaultMeetingDuration = 30 * time.Minute
)

// DefaultDailyStart and DefaultDailyEnd bound the default daily search window.
var (
	DefaultDailyStart = TimeOfDay(11 * 60) // 11:00
	DefaultDailyEnd   = TimeOfDay(18 * 60) // 18:00
)

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses a "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time of day %q: out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// TimeOfDayOf extracts the wall-clock minutes of an instant.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// Hour returns the hour component.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// On returns the instant at this time of day on the calendar date of d,
// in d's location.
func (t TimeOfDay) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, d.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// WeekdaySet is a set of weekdays eligible for slot generation.
// The zero value is the empty set.
type WeekdaySet uint8

// NewWeekdaySet builds a set from the given weekdays.
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

// ParseWeekday parses a weekday name, full ("monday") or three-letter
// ("mon"), case-insensitively.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

// ParseWeekdays builds a WeekdaySet from weekday names.
func ParseWeekdays(names []string) (WeekdaySet, error) {
	var set WeekdaySet
	for _, n := range names {
		d, err := ParseWeekday(n)
		if err != nil {
			return 0, err
		}
		set |= 1 << uint(d)
	}
	return set, nil
}

// Has reports whether d is in the set.
func (s WeekdaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// Days returns the members of the set in Sunday-first order.
func (s WeekdaySet) Days() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Settings holds the search criteria for one availability search. Settings
// are immutable per search: the engine never mutates them, and a search is a
// pure function of (Settings, SearchWindow, source data, now).
type Settings struct {
	// SearchRangeDays is how many days ahead of "now" to search.
	SearchRangeDays int

	// DailyStart and DailyEnd bound the recurring daily window slots are
	// generated in. All-day events are expanded to this window as well.
	DailyStart TimeOfDay
	DailyEnd   TimeOfDay

	// MeetingDuration is the length of each candidate slot. The generator
	// steps by the same amount, so slots never overlap.
	MeetingDuration time.Duration

	// ActiveWeekdays are the weekdays eligible for slot generation.
	ActiveWeekdays WeekdaySet

	// ExcludeKeywords removes events whose title contains any entry,
	// case-insensitively, before reconciliation.
	ExcludeKeywords []string
}

// DefaultSettings returns the documented default search criteria:
// 14 days ahead, 11:00-18:00, 30 minute meetings, Monday through Friday,
// no excluded keywords.
func DefaultSettings() Settings {
	return Settings{
		SearchRangeDays: DefaultSearchRangeDays,
		DailyStart:      DefaultDailyStart,
		DailyEnd:        DefaultDailyEnd,
		MeetingDuration: DefaultMeetingDuration,
		ActiveWeekdays: NewWeekdaySet(
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday),
	}
}

// Normalize returns a copy of s with zero-valued fields replaced by their
// documented defaults. Callers loading settings from a flat config record
// use this to fill in missing fields. Only zero counts as missing: negative
// values pass through so Validate can reject them.
func (s Settings) Normalize() Settings {
	d := DefaultSettings()
	if s.SearchRangeDays == 0 {
		s.SearchRangeDays = d.SearchRangeDays
	}
	if s.DailyStart == 0 && s.DailyEnd == 0 {
		s.DailyStart = d.DailyStart
		s.DailyEnd = d.DailyEnd
	}
	if s.MeetingDuration == 0 {
		s.MeetingDuration = d.MeetingDuration
	}
	if s.ActiveWeekdays == 0 {
		s.ActiveWeekdays = d.ActiveWeekdays
	}
	return s
}

// Validate checks that the settings describe a usable search.
func (s Settings) Validate() error {
	if s.SearchRangeDays <= 0 {
		return fmt.Errorf("search range must be positive, got %d days", s.SearchRangeDays)
	}
	if s.DailyEnd <= s.DailyStart {
		return fmt.Errorf("daily window end %s must be after start %s", s.DailyEnd, s.DailyStart)
	}
	if s.MeetingDuration <= 0 {
		return fmt.Errorf("meeting duration must be positive, got %s", s.MeetingDuration)
	}
	if s.ActiveWeekdays == 0 {
		return fmt.Errorf("at least one active weekday is required")
	}
	return nil
}

// SearchWindow is the absolute time range one search covers.
type SearchWindow struct {
	TimeMin time.Time
	TimeMax time.Time
}

// WindowFrom derives the search window from "now": TimeMin is the next full
// hour, TimeMax is the end of the day rangeDays ahead.
func WindowFrom(now time.Time, rangeDays int) SearchWindow {
	min := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location()).Add(time.Hour)
	max := now.AddDate(0, 0, rangeDays)
	max = time.Date(max.Year(), max.Month(), max.Day(), 23, 59, 59, 0, max.Location())
	return SearchWindow{TimeMin: min, TimeMax: max}
}
