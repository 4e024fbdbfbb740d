package calendar

import (
	"testing"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

func TestToRawEvent_Timed(t *testing.T) {
	event := &gcal.Event{
		Summary: "Design review",
		Status:  "confirmed",
		Start:   &gcal.EventDateTime{DateTime: "2026-09-07T13:00:00Z"},
		End:     &gcal.EventDateTime{DateTime: "2026-09-07T14:00:00Z"},
		Attendees: []*gcal.EventAttendee{
			{Email: "other@example.com", ResponseStatus: "declined"},
			{Email: "me@example.com", Self: true, ResponseStatus: "accepted"},
		},
	}

	raw := toRawEvent("me@example.com", event)

	if raw.Participant != "me@example.com" {
		t.Errorf("Participant = %q, want me@example.com", raw.Participant)
	}
	if raw.Title != "Design review" {
		t.Errorf("Title = %q, want Design review", raw.Title)
	}
	if raw.AllDay {
		t.Error("timed event should not be marked all-day")
	}
	if raw.Cancelled || raw.Transparent {
		t.Error("confirmed opaque event should not be suppressible")
	}
	// The self attendee's answer wins, not another attendee's
	if raw.ResponseStatus != "accepted" {
		t.Errorf("ResponseStatus = %q, want accepted", raw.ResponseStatus)
	}
	want := time.Date(2026, 9, 7, 13, 0, 0, 0, time.UTC)
	if !raw.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", raw.Start, want)
	}
}

func TestToRawEvent_AllDay(t *testing.T) {
	event := &gcal.Event{
		Summary: "Conference",
		Start:   &gcal.EventDateTime{Date: "2026-09-07"},
		End:     &gcal.EventDateTime{Date: "2026-09-08"},
	}

	raw := toRawEvent("me@example.com", event)

	if !raw.AllDay {
		t.Error("date-only event should be marked all-day")
	}
	if raw.Start.Hour() != 0 || raw.Start.Day() != 7 {
		t.Errorf("Start = %v, want midnight on the 7th", raw.Start)
	}
}

func TestToRawEvent_CancelledAndTransparent(t *testing.T) {
	cancelled := toRawEvent("me@example.com", &gcal.Event{
		Status: "cancelled",
		Start:  &gcal.EventDateTime{DateTime: "2026-09-07T13:00:00Z"},
		End:    &gcal.EventDateTime{DateTime: "2026-09-07T14:00:00Z"},
	})
	if !cancelled.Cancelled {
		t.Error("cancelled event should be marked cancelled")
	}

	transparent := toRawEvent("me@example.com", &gcal.Event{
		Transparency: "transparent",
		Start:        &gcal.EventDateTime{DateTime: "2026-09-07T13:00:00Z"},
		End:          &gcal.EventDateTime{DateTime: "2026-09-07T14:00:00Z"},
	})
	if !transparent.Transparent {
		t.Error("transparent event should be marked transparent")
	}
}

func TestToRawEvent_NoSelfAttendee(t *testing.T) {
	event := &gcal.Event{
		Summary: "Solo block",
		Start:   &gcal.EventDateTime{DateTime: "2026-09-07T13:00:00Z"},
		End:     &gcal.EventDateTime{DateTime: "2026-09-07T14:00:00Z"},
	}

	raw := toRawEvent("me@example.com", event)
	if raw.ResponseStatus != "" {
		t.Errorf("ResponseStatus = %q, want empty for event without attendees", raw.ResponseStatus)
	}
}

func TestToCalendarInfo(t *testing.T) {
	entry := &gcal.CalendarListEntry{
		Id:         "me@example.com",
		Summary:    "Work",
		TimeZone:   "Europe/Berlin",
		Primary:    true,
		AccessRole: "owner",
	}

	info := toCalendarInfo(entry)
	if info.ID != "me@example.com" {
		t.Errorf("ID = %q, want me@example.com", info.ID)
	}
	if !info.Primary {
		t.Error("expected primary calendar")
	}
	if info.TimeZone != "Europe/Berlin" {
		t.Errorf("TimeZone = %q, want Europe/Berlin", info.TimeZone)
	}
}

func TestHasToken(t *testing.T) {
	// Test that HasToken returns a boolean without error
	result := HasToken()
	_ = result
}

func TestHasTokenForAccount(t *testing.T) {
	result := HasTokenForAccount("test-account")
	_ = result

	// Test with empty account name
	result = HasTokenForAccount("")
	if result {
		t.Error("Expected false for empty account name")
	}
}

func TestHasTokenForAccountWithProvider_Nil(t *testing.T) {
	if HasTokenForAccountWithProvider("default", nil) {
		t.Error("nil provider should never report a token")
	}
}

func TestMeetingInput_Structure(t *testing.T) {
	input := MeetingInput{
		Title:     "Sync",
		Start:     time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC),
		End:       time.Date(2026, 9, 7, 11, 30, 0, 0, time.UTC),
		Attendees: []string{"a@example.com", "b@example.com"},
	}

	if input.End.Sub(input.Start) != 30*time.Minute {
		t.Error("expected a 30 minute meeting")
	}
	if len(input.Attendees) != 2 {
		t.Errorf("expected 2 attendees, got %d", len(input.Attendees))
	}
}
