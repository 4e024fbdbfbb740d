package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/mochizo/meetslot/internal/availability"
	"github.com/mochizo/meetslot/internal/google"
	"github.com/mochizo/meetslot/internal/instrumentation"
)

// Client wraps the Google Calendar service
type Client struct {
	svc           *calendar.Service
	account       string // The account this client is associated with
	tokenProvider google.TokenProvider
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccountWithProvider checks if a valid OAuth token exists for the specified account
func HasTokenForAccountWithProvider(account string, provider google.TokenProvider) bool {
	if provider == nil {
		return false
	}
	return provider.HasTokenForAccount(account)
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	provider := google.NewFileTokenProvider()
	return HasTokenForAccountWithProvider(account, provider)
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return HasTokenForAccount("default")
}

// GetAuthURLForAccount returns the OAuth authorization URL for the specified account
func GetAuthURLForAccount(account string) string {
	return google.GetAuthURLForAccount(account)
}

// NewClientForAccountWithProvider creates a new Calendar client with OAuth2 authentication for a specific account
// The OAuth token is retrieved from the provided token provider
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	// Get token from the provided provider
	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	// Create OAuth2 config and token source
	conf := google.GetOAuthConfig()
	tokenSource := conf.TokenSource(ctx, token)

	// Create HTTP client with the token
	client := oauth2.NewClient(ctx, tokenSource)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	baseTransport := &http.Transport{
		ForceAttemptHTTP2: false,
	}
	transport.Base = baseTransport

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:           svc,
		account:       account,
		tokenProvider: tokenProvider,
	}, nil
}

// NewClientForAccount creates a new Calendar client with OAuth2 authentication for a specific account
// Uses the default file-based token provider
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	provider := google.NewFileTokenProvider()
	return NewClientForAccountWithProvider(ctx, account, provider)
}

// NewClient creates a new Calendar client with OAuth2 authentication for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// NewClientWithProvider creates a new Calendar client with OAuth2 authentication for the default account
// using the provided token provider
func NewClientWithProvider(ctx context.Context, provider google.TokenProvider) (*Client, error) {
	return NewClientForAccountWithProvider(ctx, "default", provider)
}

// QueryFreeBusy runs a single batched FreeBusy query covering all
// participants. The result always contains one entry per requested
// participant; a participant the API reported an error for carries that
// error instead of busy data. A participant missing from the response
// entirely is treated the same way.
//
// The returned error is non-nil only when the query itself failed, in
// which case no per-participant results are available.
func (c *Client) QueryFreeBusy(ctx context.Context, timeMin, timeMax time.Time, participants []string) ([]FreeBusyResult, error) {
	spanCtx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.SourceFreeBusy, "query")
	defer span.End()

	items := make([]*calendar.FreeBusyRequestItem, len(participants))
	for i, id := range participants {
		items[i] = &calendar.FreeBusyRequestItem{Id: id}
	}

	query := &calendar.FreeBusyRequest{
		TimeMin: timeMin.Format(time.RFC3339),
		TimeMax: timeMax.Format(time.RFC3339),
		Items:   items,
	}

	result, err := c.svc.Freebusy.Query(query).Context(spanCtx).Do()
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, fmt.Errorf("failed to query freebusy: %w", err)
	}

	results := make([]FreeBusyResult, 0, len(participants))
	for _, participant := range participants {
		res := FreeBusyResult{Participant: participant}

		cal, ok := result.Calendars[participant]
		if !ok {
			res.Err = fmt.Errorf("no freebusy data returned for %s", participant)
			results = append(results, res)
			continue
		}

		if len(cal.Errors) > 0 {
			reasons := make([]string, 0, len(cal.Errors))
			for _, calErr := range cal.Errors {
				reasons = append(reasons, calErr.Reason)
			}
			sort.Strings(reasons)
			res.Err = fmt.Errorf("freebusy lookup failed for %s: %v", participant, reasons)
			results = append(results, res)
			continue
		}

		for _, busy := range cal.Busy {
			start, startErr := time.Parse(time.RFC3339, busy.Start)
			end, endErr := time.Parse(time.RFC3339, busy.End)
			if startErr != nil || endErr != nil {
				continue
			}
			res.Busy = append(res.Busy, availability.Interval{Start: start, End: end})
		}

		results = append(results, res)
	}

	instrumentation.SetSpanSuccess(span)
	return results, nil
}

// ListRawEvents lists the events of one participant's calendar within a
// time range, expanded to single instances in start order. The result is
// the raw event form the reconciler consumes; suppression of declined,
// cancelled and transparent entries happens there, not here.
func (c *Client) ListRawEvents(ctx context.Context, participant string, timeMin, timeMax time.Time) ([]availability.RawEvent, error) {
	spanCtx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.SourceEvents, "list")
	defer span.End()

	events, err := c.svc.Events.List(participant).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(250).
		Context(spanCtx).
		Do()
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, fmt.Errorf("failed to list events for %s: %w", participant, err)
	}

	raw := make([]availability.RawEvent, 0, len(events.Items))
	for _, event := range events.Items {
		raw = append(raw, toRawEvent(participant, event))
	}

	instrumentation.SetSpanSuccess(span)
	return raw, nil
}

// RegisterMeetings creates one calendar event per slot on the calendar
// owner's primary calendar. Invitations are suppressed so no attendee is
// notified by the write-back. Creation continues past individual failures;
// the returned error joins every slot that could not be created.
func (c *Client) RegisterMeetings(ctx context.Context, input MeetingInput, slots []availability.Slot) ([]CreatedMeeting, error) {
	var created []CreatedMeeting
	var errs []error

	for _, slot := range slots {
		meeting := input
		meeting.Start = slot.Start
		meeting.End = slot.End

		m, err := c.registerMeeting(ctx, meeting)
		if err != nil {
			errs = append(errs, fmt.Errorf("slot %s: %w", slot.Start.Format(time.RFC3339), err))
			continue
		}
		created = append(created, *m)
	}

	return created, errors.Join(errs...)
}

func (c *Client) registerMeeting(ctx context.Context, input MeetingInput) (*CreatedMeeting, error) {
	spanCtx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.SourceEvents, "insert")
	defer span.End()

	tz := input.TimeZone
	if tz == "" {
		tz = "UTC"
	}

	event := &calendar.Event{
		Summary:     input.Title,
		Description: input.Description,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: tz,
		},
		End: &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: tz,
		},
	}

	for _, email := range input.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{
			Email: email,
		})
	}

	result, err := c.svc.Events.Insert("primary", event).
		SendUpdates("none").
		Context(spanCtx).
		Do()
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	m := &CreatedMeeting{
		ID:       result.Id,
		Title:    result.Summary,
		Start:    input.Start,
		End:      input.End,
		HTMLLink: result.HtmlLink,
	}

	instrumentation.SetSpanSuccess(span)
	return m, nil
}

// ListCalendars lists all calendars accessible to the user
func (c *Client) ListCalendars(ctx context.Context) ([]CalendarInfo, error) {
	list, err := c.svc.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	var calendars []CalendarInfo
	for _, entry := range list.Items {
		calendars = append(calendars, toCalendarInfo(entry))
	}

	return calendars, nil
}

// GetPrimaryCalendar retrieves information about the primary calendar
func (c *Client) GetPrimaryCalendar(ctx context.Context) (*CalendarInfo, error) {
	entry, err := c.svc.CalendarList.Get("primary").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get primary calendar: %w", err)
	}

	info := toCalendarInfo(entry)
	return &info, nil
}
