package availability

import "strings"

// ShouldExclude reports whether an event title matches any exclude keyword.
// Matching is a case-insensitive substring test. An empty title or an empty
// keyword list never excludes, and empty keywords are ignored.
func ShouldExclude(title string, keywords []string) bool {
	if title == "" || len(keywords) == 0 {
		return false
	}
	lower := strings.ToLower(title)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// FilterEvents removes events whose title matches an exclude keyword.
// The input slice is not modified.
func FilterEvents(events []RawEvent, keywords []string) []RawEvent {
	if len(keywords) == 0 {
		return events
	}
	kept := make([]RawEvent, 0, len(events))
	for _, ev := range events {
		if !ShouldExclude(ev.Title, keywords) {
			kept = append(kept, ev)
		}
	}
	return kept
}
