package availability_tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mochizo/meetslot/internal/availability"
	"github.com/mochizo/meetslot/internal/search"
	"github.com/mochizo/meetslot/internal/server"
	"github.com/mochizo/meetslot/internal/tools/common"
)

// RegisterSearchTools registers the availability search tool with the MCP server
func RegisterSearchTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	searchTool := mcp.NewTool("availability_search",
		mcp.WithDescription("Find meeting slots where all participants are free, plus partially free slots ranked by how few participants are busy"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("participants",
			mcp.Required(),
			mcp.Description("Comma-separated list of participant email addresses whose calendars are checked"),
		),
		mcp.WithNumber("durationMinutes",
			mcp.Description("Meeting duration in minutes (default: 30)"),
		),
		mcp.WithNumber("rangeDays",
			mcp.Description("How many days ahead to search (default: 14)"),
		),
		mcp.WithString("dailyStart",
			mcp.Description("Start of the daily search window, HH:MM (default: 11:00)"),
		),
		mcp.WithString("dailyEnd",
			mcp.Description("End of the daily search window, HH:MM (default: 18:00)"),
		),
		mcp.WithString("excludeKeywords",
			mcp.Description("Comma-separated keywords; events whose title contains one are ignored"),
		),
		mcp.WithString("activeWeekdays",
			mcp.Description("Comma-separated weekday names eligible for slots, e.g. 'mon,tue,wed' (default: Monday-Friday)"),
		),
		mcp.WithBoolean("includeConflicts",
			mcp.Description("Also list the busy intervals inside the daily window (default: false)"),
		),
	)

	s.AddTool(searchTool, common.InstrumentedToolHandlerWithService(
		"availability_search", "freebusy", "query", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearch(ctx, request, sc)
		}))

	return nil
}

func handleSearch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	participantsStr, ok := args["participants"].(string)
	if !ok || participantsStr == "" {
		return mcp.NewToolResultError("participants is required"), nil
	}
	participants := splitList(participantsStr)

	settings, err := settingsFromArgs(args, sc.Settings())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid search criteria: %v", err)), nil
	}

	if _, err := getCalendarClient(ctx, account, sc); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	searcher := sc.SearcherForAccount(account)
	if searcher == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no searcher available for account %q", account)), nil
	}

	result, err := searcher.Run(ctx, participants, settings)
	if err != nil {
		switch {
		case errors.Is(err, search.ErrSuperseded):
			return mcp.NewToolResultError("Search was superseded by a newer request; use the newer result"), nil
		case errors.Is(err, availability.ErrNoBusyData):
			return mcp.NewToolResultError("No busy data could be fetched for any participant; check the calendar addresses"), nil
		default:
			return mcp.NewToolResultError(fmt.Sprintf("Search failed: %v", err)), nil
		}
	}

	out := search.FormatResult(result)
	if include, _ := args["includeConflicts"].(bool); include {
		out += "\n" + search.FormatConflicts(result.Conflicts)
	}

	return mcp.NewToolResultText(out), nil
}
