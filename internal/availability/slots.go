package availability

import (
	"iter"
	"time"
)

// Candidates returns a lazy, finite, restartable sequence of candidate slots
// for the given window and settings. Each ranging over the sequence restarts
// it from the beginning; no state survives between iterations.
//
// The cursor starts at TimeMin normalized to DailyStart on its calendar
// date, or the next day's DailyStart if that lies before TimeMin. Days whose
// weekday is not active are skipped, slots that would end after DailyEnd or
// cross a calendar date advance the cursor to the next day, and slots
// entirely at or before "now" are suppressed. The step equals the meeting
// duration, so emitted slots are contiguous and never overlap.
//
// The loop compares the cursor's calendar date against TimeMax's calendar
// date, not the exact instant, so a final day whose TimeMax falls mid-day
// still yields its full daily slot set. Observed behavior, preserved as is.
func Candidates(win SearchWindow, s Settings, now time.Time) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		cursor := s.DailyStart.On(win.TimeMin)
		if cursor.Before(win.TimeMin) {
			cursor = s.DailyStart.On(cursor.AddDate(0, 0, 1))
		}

		maxDate := dateOf(win.TimeMax)
		for !dateOf(cursor).After(maxDate) {
			if !s.ActiveWeekdays.Has(cursor.Weekday()) {
				cursor = s.DailyStart.On(cursor.AddDate(0, 0, 1))
				continue
			}

			slotEnd := cursor.Add(s.MeetingDuration)
			if TimeOfDayOf(slotEnd) > s.DailyEnd || slotEnd.Day() != cursor.Day() {
				cursor = s.DailyStart.On(cursor.AddDate(0, 0, 1))
				continue
			}

			if cursor.After(now) {
				if !yield(Slot{Start: cursor, End: slotEnd}) {
					return
				}
			}

			cursor = cursor.Add(s.MeetingDuration)
		}
	}
}

// dateOf truncates an instant to midnight of its calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
