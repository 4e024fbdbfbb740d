package availability_tools

import (
	"context"
	"fmt"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mochizo/meetslot/internal/availability"
	"github.com/mochizo/meetslot/internal/calendar"
	"github.com/mochizo/meetslot/internal/server"
)

// getCalendarClient retrieves or creates a calendar client for the specified account
func getCalendarClient(ctx context.Context, account string, sc *server.ServerContext) (*calendar.Client, error) {
	client := sc.CalendarClientForAccount(account)
	if client == nil {
		// Check if token exists before trying to create client
		if !calendar.HasTokenForAccount(account) {
			authURL := calendar.GetAuthURLForAccount(account)
			return nil, fmt.Errorf(`Google OAuth token not found for account "%s". To authorize access:

1. Visit this URL in your browser:
   %s

2. Sign in with your Google account
3. Grant access to Google Calendar
4. Copy the authorization code

5. Provide the authorization code to your AI agent
   The agent will use the google_save_auth_code tool with account="%s" to complete authentication.

Note: You only need to authorize once. The tokens will be automatically refreshed.`, account, authURL, account)
		}

		var err error
		client, err = calendar.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Calendar client for account %s: %w", account, err)
		}
		sc.SetCalendarClientForAccount(account, client)
	}
	return client, nil
}

// splitList splits a comma-separated argument into trimmed entries,
// dropping empties. Ideographic and fullwidth commas separate too.
func splitList(s string) []string {
	return availability.SplitList(s)
}

// settingsFromArgs overlays request arguments on the server's configured
// search settings.
func settingsFromArgs(args map[string]any, base availability.Settings) (availability.Settings, error) {
	s := base

	if v, ok := args["durationMinutes"].(float64); ok && v > 0 {
		s.MeetingDuration = time.Duration(v) * time.Minute
	}
	if v, ok := args["rangeDays"].(float64); ok && v > 0 {
		s.SearchRangeDays = int(v)
	}
	if v, ok := args["dailyStart"].(string); ok && v != "" {
		t, err := availability.ParseTimeOfDay(v)
		if err != nil {
			return s, err
		}
		s.DailyStart = t
	}
	if v, ok := args["dailyEnd"].(string); ok && v != "" {
		t, err := availability.ParseTimeOfDay(v)
		if err != nil {
			return s, err
		}
		s.DailyEnd = t
	}
	if v, ok := args["excludeKeywords"].(string); ok && v != "" {
		s.ExcludeKeywords = splitList(v)
	}
	if v, ok := args["activeWeekdays"].(string); ok && v != "" {
		set, err := availability.ParseWeekdays(splitList(v))
		if err != nil {
			return s, err
		}
		s.ActiveWeekdays = set
	}

	s = s.Normalize()
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// RegisterAvailabilityTools registers all availability-related tools with the MCP server
func RegisterAvailabilityTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := RegisterSearchTools(s, sc); err != nil {
		return fmt.Errorf("failed to register search tools: %w", err)
	}

	if err := RegisterFreeBusyTools(s, sc); err != nil {
		return fmt.Errorf("failed to register freebusy tools: %w", err)
	}

	if err := RegisterMeetingTools(s, sc); err != nil {
		return fmt.Errorf("failed to register meeting tools: %w", err)
	}

	return nil
}
