package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mochizo/meetslot/internal/server"
)

// RegisterUserResources registers resources describing the server's
// configured accounts and search defaults.
func RegisterUserResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Register calendar profile resource
	profileResource := mcp.NewResource(
		"user://calendar/primary",
		"Primary Calendar",
		mcp.WithResourceDescription("The primary calendar of the default authenticated Google account"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(profileResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handlePrimaryCalendar(ctx, request, sc)
	})

	// Register calendar list resource
	listResource := mcp.NewResource(
		"user://calendar/list",
		"Accessible Calendars",
		mcp.WithResourceDescription("All calendars the default authenticated Google account can read"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(listResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleCalendarList(ctx, request, sc)
	})

	// Register search defaults resource
	settingsResource := mcp.NewResource(
		"user://availability/settings",
		"Availability Search Defaults",
		mcp.WithResourceDescription("The default search criteria applied when a tool request omits them"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(settingsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleSearchDefaults(ctx, request, sc)
	})

	return nil
}

// handlePrimaryCalendar returns information about the default account's
// primary calendar.
func handlePrimaryCalendar(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	client := sc.CalendarClient()
	if client == nil {
		return nil, fmt.Errorf("no Calendar client available for the default account")
	}

	info, err := client.GetPrimaryCalendar(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get primary calendar: %w", err)
	}

	profileData := map[string]any{
		"account":     client.Account(),
		"id":          info.ID,
		"summary":     info.Summary,
		"timeZone":    info.TimeZone,
		"description": "Primary calendar used for meeting write-back",
	}

	jsonData, err := json.MarshalIndent(profileData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleCalendarList returns every calendar the default account can
// access, with the access role so an agent can tell which ones accept
// write-back.
func handleCalendarList(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	client := sc.CalendarClient()
	if client == nil {
		return nil, fmt.Errorf("no Calendar client available for the default account")
	}

	calendars, err := client.ListCalendars(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	entries := make([]map[string]any, 0, len(calendars))
	for _, c := range calendars {
		entries = append(entries, map[string]any{
			"id":         c.ID,
			"summary":    c.Summary,
			"timeZone":   c.TimeZone,
			"primary":    c.Primary,
			"accessRole": c.AccessRole,
		})
	}

	listData := map[string]any{
		"account":   client.Account(),
		"calendars": entries,
	}

	jsonData, err := json.MarshalIndent(listData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal calendar list: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleSearchDefaults returns the server's default search criteria.
func handleSearchDefaults(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	settings := sc.Settings()

	weekdays := make([]string, 0, 7)
	for _, d := range settings.ActiveWeekdays.Days() {
		weekdays = append(weekdays, d.String())
	}

	settingsData := map[string]any{
		"searchRangeDays": settings.SearchRangeDays,
		"dailyStart":      settings.DailyStart.String(),
		"dailyEnd":        settings.DailyEnd.String(),
		"durationMinutes": int(settings.MeetingDuration.Minutes()),
		"activeWeekdays":  weekdays,
		"excludeKeywords": settings.ExcludeKeywords,
		"description":     "Defaults applied when a search request omits a criterion",
	}

	jsonData, err := json.MarshalIndent(settingsData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
