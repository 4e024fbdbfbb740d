package availability

import (
	"strings"
	"time"
)

// Origin identifies which source produced a canonical busy interval.
type Origin string

const (
	// OriginPrimary marks intervals seeded from the FreeBusy query.
	// The primary source is authoritative for occupancy but carries no titles.
	OriginPrimary Origin = "primary"

	// OriginSecondary marks intervals recovered from the Events API that had
	// no overlapping FreeBusy interval, typically provisional commitments
	// (tentative or unanswered invitations) the FreeBusy query omits.
	OriginSecondary Origin = "secondary"
)

// Interval is a half-open busy time range [Start, End) without metadata,
// as returned by the primary occupancy source.
type Interval struct {
	Start time.Time
	End   time.Time
}

// BusyInterval is a reconciled, canonical occupied time range for one
// participant. Start < End always holds. Title may be empty until
// reconciliation resolves it; after Reconcile it never is.
type BusyInterval struct {
	Participant string
	Start       time.Time
	End         time.Time
	Title       string
	Origin      Origin
}

// RawEvent is a single event from the detailed source, pre-reconciliation.
// For all-day events AllDay is true and Start holds midnight of the event
// date; End is ignored until reconciliation expands the event into the
// configured daily window.
type RawEvent struct {
	Participant    string
	Start          time.Time
	End            time.Time
	AllDay         bool
	Title          string
	Cancelled      bool
	Transparent    bool
	ResponseStatus string // "", "needsAction", "declined", "tentative", "accepted"
}

// Slot is a fixed-duration candidate meeting time range, annotated by the
// classifier with the participants whose busy intervals overlap it.
// End - Start always equals the configured meeting duration, and
// ConflictCount is strictly less than the number of participants for any
// slot the classifier emits.
type Slot struct {
	Start                   time.Time
	End                     time.Time
	ConflictCount           int
	ConflictingParticipants []string
	ConflictingIntervals    []BusyInterval
}

// NormalizeParticipant canonicalizes a participant identifier (a calendar
// address). Participants are compared case-insensitively throughout.
func NormalizeParticipant(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// ValidParticipant reports whether id has the shape of an email address:
// one "@", a non-empty local part, and a domain containing a dot.
func ValidParticipant(id string) bool {
	if strings.ContainsAny(id, " \t") {
		return false
	}
	at := strings.IndexByte(id, '@')
	if at <= 0 || at != strings.LastIndexByte(id, '@') {
		return false
	}
	domain := id[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

// SplitList splits a comma-separated list into trimmed entries, dropping
// empties. ASCII, ideographic and fullwidth commas all separate entries.
func SplitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '、' || r == '，'
	})
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
