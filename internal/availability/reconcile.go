package availability

import (
	"errors"
)

// Placeholder titles assigned during reconciliation, matching what the
// detailed source would have shown for the event.
const (
	TitleUntitled = "(no title)"
	TitleAllDay   = "(all-day)"
	TitleBusy     = "(busy)"
)

// ErrNoBusyData is returned by Reconcile when the primary source failed for
// every participant, leaving no usable occupancy data to classify against.
var ErrNoBusyData = errors.New("no occupancy data available for any participant")

// ResponseDeclined is the response status that suppresses an event for the
// participant who declined it.
const ResponseDeclined = "declined"

// ParticipantData carries one participant's raw results from both sources.
// A nil error with an empty Busy slice means the participant is genuinely
// free; a non-nil error means that source failed for this participant.
type ParticipantData struct {
	Participant string
	Busy        []Interval
	PrimaryErr  error
	Events      []RawEvent
	EventsErr   error
}

// Reconcile merges the two per-participant feeds into one canonical busy set.
//
// The primary source is authoritative for the free/busy boundary but carries
// no titles and may omit provisional commitments (tentative or unanswered
// invitations) that the detailed source still lists. Reconciliation:
//
//  1. seeds the canonical set with all primary intervals (origin=primary),
//  2. drops detailed events that are cancelled, transparent, or declined by
//     the participant,
//  3. expands all-day events into the configured daily window,
//  4. resolves titles by first-overlap-wins against the participant's
//     primary intervals,
//  5. inserts unmatched detailed events as new intervals (origin=secondary),
//  6. gives any still-untitled interval the "(busy)" placeholder.
//
// A detailed-source failure for one participant is non-fatal; that
// participant's set is primary-only. A primary-source failure leaves the
// participant with no busy data at all. If the primary source failed for
// every participant, Reconcile returns ErrNoBusyData.
func Reconcile(data []ParticipantData, s Settings) ([]BusyInterval, error) {
	primaryOK := false
	for _, d := range data {
		if d.PrimaryErr == nil {
			primaryOK = true
			break
		}
	}
	if len(data) > 0 && !primaryOK {
		return nil, ErrNoBusyData
	}

	var canonical []BusyInterval
	for _, d := range data {
		if d.PrimaryErr != nil {
			continue
		}
		canonical = append(canonical, reconcileParticipant(d, s)...)
	}

	for i := range canonical {
		if canonical[i].Title == "" {
			canonical[i].Title = TitleBusy
		}
	}
	return canonical, nil
}

func reconcileParticipant(d ParticipantData, s Settings) []BusyInterval {
	participant := NormalizeParticipant(d.Participant)

	intervals := make([]BusyInterval, 0, len(d.Busy))
	for _, b := range d.Busy {
		intervals = append(intervals, BusyInterval{
			Participant: participant,
			Start:       b.Start,
			End:         b.End,
			Origin:      OriginPrimary,
		})
	}

	if d.EventsErr != nil {
		// Detailed source failed; degrade to primary-only.
		return intervals
	}

	for _, ev := range d.Events {
		if ev.Cancelled || ev.Transparent || ev.ResponseStatus == ResponseDeclined {
			continue
		}

		start, end, title := ev.Start, ev.End, ev.Title
		if ev.AllDay {
			start = s.DailyStart.On(ev.Start)
			end = s.DailyEnd.On(ev.Start)
			if title == "" {
				title = TitleAllDay
			}
		} else if title == "" {
			title = TitleUntitled
		}
		if !start.Before(end) {
			continue
		}

		// Title resolution is first-overlap-wins: the first primary interval
		// that intersects the event takes its title (if still untitled) and
		// scanning stops there.
		matched := false
		for i := range intervals {
			iv := &intervals[i]
			if iv.Origin != OriginPrimary {
				continue
			}
			if overlaps(start, end, iv.Start, iv.End) {
				if iv.Title == "" {
					iv.Title = title
				}
				matched = true
				break
			}
		}

		if !matched {
			// Not in the primary feed: a provisional commitment the FreeBusy
			// query skipped. Treat it as busy, at the acknowledged risk of
			// over-blocking.
			intervals = append(intervals, BusyInterval{
				Participant: participant,
				Start:       start,
				End:         end,
				Title:       title,
				Origin:      OriginSecondary,
			})
		}
	}

	return intervals
}
