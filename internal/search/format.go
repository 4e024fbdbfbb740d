package search

import (
	"fmt"
	"strings"

	"github.com/mochizo/meetslot/internal/availability"
)

const (
	dayHeadingFormat = "Mon, Jan 2 2006"
	clockFormat      = "15:04"
)

// FormatResult renders a search result as human-readable text, slots
// grouped by day. Free slots come first, then partial slots with their
// conflict annotations.
func FormatResult(r *Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Availability for %d participant(s), %s to %s\n",
		len(r.Participants),
		r.Window.TimeMin.Format("2006-01-02 15:04"),
		r.Window.TimeMax.Format("2006-01-02 15:04"),
	)

	if r.Degraded() {
		b.WriteString("\nWarning: some calendar data could not be fetched:\n")
		for _, se := range r.SourceErrors {
			fmt.Fprintf(&b, "  - %s\n", se.Error())
		}
	}

	b.WriteString("\nFree slots:\n")
	if len(r.Free) == 0 {
		b.WriteString("  none\n")
	} else {
		writeSlotsByDay(&b, r.Free)
	}

	if len(r.Partial) > 0 {
		b.WriteString("\nPartially available (fewest conflicts first):\n")
		for _, slot := range r.Partial {
			fmt.Fprintf(&b, "  %s %s - %s: %d busy (%s)\n",
				slot.Start.Format(dayHeadingFormat),
				slot.Start.Format(clockFormat),
				slot.End.Format(clockFormat),
				slot.ConflictCount,
				strings.Join(slot.ConflictingParticipants, ", "),
			)
			for _, iv := range slot.ConflictingIntervals {
				fmt.Fprintf(&b, "      %s - %s  %s\n",
					iv.Start.Format(clockFormat),
					iv.End.Format(clockFormat),
					iv.Title,
				)
			}
		}
	}

	return b.String()
}

// FormatConflicts renders the busy intervals inside the search window,
// grouped by day.
func FormatConflicts(conflicts []availability.BusyInterval) string {
	if len(conflicts) == 0 {
		return "No conflicts inside the daily window.\n"
	}

	var b strings.Builder
	b.WriteString("Conflicts inside the daily window:\n")

	var lastDay string
	for _, iv := range conflicts {
		day := iv.Start.Format(dayHeadingFormat)
		if day != lastDay {
			fmt.Fprintf(&b, "%s\n", day)
			lastDay = day
		}
		fmt.Fprintf(&b, "  %s - %s  %s (%s)\n",
			iv.Start.Format(clockFormat),
			iv.End.Format(clockFormat),
			iv.Title,
			iv.Participant,
		)
	}

	return b.String()
}

// writeSlotsByDay prints slots grouped under day headings.
func writeSlotsByDay(b *strings.Builder, slots []availability.Slot) {
	var lastDay string
	for _, slot := range slots {
		day := slot.Start.Format(dayHeadingFormat)
		if day != lastDay {
			fmt.Fprintf(b, "%s\n", day)
			lastDay = day
		}
		fmt.Fprintf(b, "  %s - %s\n",
			slot.Start.Format(clockFormat),
			slot.End.Format(clockFormat),
		)
	}
}
