package availability

// ConflictsInRange selects, from the filtered canonical busy set, the
// entries that fall inside the search criteria: their time-of-day range
// intersects [DailyStart, DailyEnd) regardless of date, and their weekday is
// active. The result is purely informational ("what is already booked in
// range") and independent of whether an entry conflicts with any slot.
func ConflictsInRange(busy []BusyInterval, s Settings) []BusyInterval {
	var out []BusyInterval
	for _, iv := range busy {
		startMin := TimeOfDayOf(iv.Start)
		endMin := TimeOfDayOf(iv.End)
		if startMin >= s.DailyEnd || endMin <= s.DailyStart {
			continue
		}
		if !s.ActiveWeekdays.Has(iv.Start.Weekday()) {
			continue
		}
		out = append(out, iv)
	}
	return out
}
