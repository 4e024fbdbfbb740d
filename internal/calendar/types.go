package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/mochizo/meetslot/internal/availability"
)

// FreeBusyResult holds the outcome of a FreeBusy query for one participant.
// Err is set when the API reported a per-calendar error for this participant,
// in which case Busy is empty.
type FreeBusyResult struct {
	Participant string
	Busy        []availability.Interval
	Err         error
}

// MeetingInput describes a meeting to write back to the calendar.
type MeetingInput struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
	Attendees   []string
}

// CreatedMeeting summarizes an event created by RegisterMeetings.
type CreatedMeeting struct {
	ID       string
	Title    string
	Start    time.Time
	End      time.Time
	HTMLLink string
}

// CalendarInfo represents information about a calendar.
type CalendarInfo struct {
	ID          string
	Summary     string
	Description string
	TimeZone    string
	Primary     bool
	AccessRole  string // "owner", "writer", "reader", "freeBusyReader"
}

// toRawEvent converts a Google Calendar event into the availability
// package's raw event form. The participant is the calendar the event
// was listed from; the response status is taken from the attendee entry
// marked as self, so the owner's own answer to the invite is what counts.
func toRawEvent(participant string, event *calendar.Event) availability.RawEvent {
	raw := availability.RawEvent{
		Participant: participant,
		Title:       event.Summary,
		Cancelled:   event.Status == "cancelled",
		Transparent: event.Transparency == "transparent",
	}

	if event.Start != nil {
		if event.Start.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
				raw.Start = t
			}
		} else if event.Start.Date != "" {
			raw.AllDay = true
			if t, err := time.Parse("2006-01-02", event.Start.Date); err == nil {
				raw.Start = t
			}
		}
	}

	if event.End != nil {
		if event.End.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.End.DateTime); err == nil {
				raw.End = t
			}
		} else if event.End.Date != "" {
			if t, err := time.Parse("2006-01-02", event.End.Date); err == nil {
				raw.End = t
			}
		}
	}

	for _, att := range event.Attendees {
		if att.Self {
			raw.ResponseStatus = att.ResponseStatus
			break
		}
	}

	return raw
}

// toCalendarInfo converts a Google Calendar list entry to CalendarInfo.
func toCalendarInfo(entry *calendar.CalendarListEntry) CalendarInfo {
	return CalendarInfo{
		ID:          entry.Id,
		Summary:     entry.Summary,
		Description: entry.Description,
		TimeZone:    entry.TimeZone,
		Primary:     entry.Primary,
		AccessRole:  entry.AccessRole,
	}
}
