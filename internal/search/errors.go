package search

import (
	"errors"
	"fmt"
)

// ErrSuperseded is returned by Run when a newer search replaced this one
// before it finished. The caller should discard the invocation entirely.
var ErrSuperseded = errors.New("search superseded by a newer invocation")

// ErrNoParticipants is returned when a search is started without any
// valid participant.
var ErrNoParticipants = errors.New("no participants to search for")

// errNoFreeBusyEntry marks a participant the FreeBusy response did not
// mention at all.
var errNoFreeBusyEntry = errors.New("participant missing from freebusy response")

// SourceFetchError records a non-fatal failure of one busy data source
// for one participant. The search completes without that data.
type SourceFetchError struct {
	Participant string
	Source      string // "freebusy" or "events"
	Err         error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("%s fetch failed for %s: %v", e.Source, e.Participant, e.Err)
}

func (e *SourceFetchError) Unwrap() error {
	return e.Err
}
