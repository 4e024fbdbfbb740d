package availability_tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mochizo/meetslot/internal/availability"
	"github.com/mochizo/meetslot/internal/calendar"
	"github.com/mochizo/meetslot/internal/instrumentation"
	"github.com/mochizo/meetslot/internal/server"
	"github.com/mochizo/meetslot/internal/tools/batch"
	"github.com/mochizo/meetslot/internal/tools/common"
)

// RegisterMeetingTools registers the meeting write-back tool with the MCP server
func RegisterMeetingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	registerMeetingTool := mcp.NewTool("availability_register_meeting",
		mcp.WithDescription("Create a calendar event in one or more chosen slots on the account's primary calendar. No invitations are sent."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title"),
		),
		mcp.WithString("description",
			mcp.Description("Event description"),
		),
		mcp.WithString("slots",
			mcp.Required(),
			mcp.Description("Slot start time(s) in RFC3339 format (e.g., '2026-09-07T12:00:00Z'). Accepts a single string or an array of strings."),
		),
		mcp.WithNumber("durationMinutes",
			mcp.Description("Meeting duration in minutes (default: 30)"),
		),
		mcp.WithString("timeZone",
			mcp.Description("Time zone for the event (default: UTC)"),
		),
		mcp.WithString("attendees",
			mcp.Description("Comma-separated attendee email addresses to record on the event"),
		),
	)

	s.AddTool(registerMeetingTool, common.InstrumentedToolHandlerWithService(
		"availability_register_meeting", "events", "insert", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRegisterMeeting(ctx, request, sc)
		}))

	return nil
}

// calendarMeetingInput assembles the write-back input from the optional
// request arguments.
func calendarMeetingInput(args map[string]any, title string) calendar.MeetingInput {
	input := calendar.MeetingInput{Title: title}

	if v, ok := args["description"].(string); ok {
		input.Description = v
	}
	if v, ok := args["timeZone"].(string); ok {
		input.TimeZone = v
	}
	if v, ok := args["attendees"].(string); ok && v != "" {
		input.Attendees = splitList(v)
	}

	return input
}

func handleRegisterMeeting(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	slotStarts, err := batch.ParseStringOrArray(args["slots"], "slots")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	duration := sc.Settings().MeetingDuration
	if v, ok := args["durationMinutes"].(float64); ok && v > 0 {
		duration = time.Duration(v) * time.Minute
	}

	for _, startStr := range slotStarts {
		if _, err := time.Parse(time.RFC3339, startStr); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid slot start time %q: %v", startStr, err)), nil
		}
	}

	input := calendarMeetingInput(args, title)

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	metrics := sc.Metrics()

	results := batch.ProcessBatch(slotStarts, func(startStr string) (string, error) {
		start, _ := time.Parse(time.RFC3339, startStr)
		slot := availability.Slot{Start: start, End: start.Add(duration)}

		created, err := client.RegisterMeetings(ctx, input, []availability.Slot{slot})
		if err != nil {
			metrics.RecordMeetingRegistered(ctx, instrumentation.StatusError)
			return "", err
		}

		metrics.RecordMeetingRegistered(ctx, instrumentation.StatusSuccess)
		m := created[0]
		return fmt.Sprintf("%s - %s %s %s",
			m.Start.Format("2006-01-02 15:04"),
			m.End.Format("15:04"),
			m.Title,
			m.HTMLLink,
		), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}
