package resources

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mochizo/meetslot/internal/availability"
	"github.com/mochizo/meetslot/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(context.Background(), availability.DefaultSettings())
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestRegisterUserResources(t *testing.T) {
	s := mcpserver.NewMCPServer("test", "0.0.0")
	if err := RegisterUserResources(s, newTestServerContext(t)); err != nil {
		t.Fatalf("RegisterUserResources() error = %v", err)
	}
}

func TestHandleSearchDefaults(t *testing.T) {
	sc := newTestServerContext(t)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "user://availability/settings"

	contents, err := handleSearchDefaults(context.Background(), req, sc)
	if err != nil {
		t.Fatalf("handleSearchDefaults() error = %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("len(contents) = %d, want 1", len(contents))
	}

	text, ok := contents[0].(*mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] is %T, want *mcp.TextResourceContents", contents[0])
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(text.Text), &data); err != nil {
		t.Fatalf("settings resource is not valid JSON: %v", err)
	}
	if got := data["durationMinutes"]; got != float64(30) {
		t.Errorf("durationMinutes = %v, want 30", got)
	}
	if days, ok := data["activeWeekdays"].([]any); !ok || len(days) != 5 {
		t.Errorf("activeWeekdays = %v, want five weekday names", data["activeWeekdays"])
	}
}

func TestHandleCalendarListWithoutClient(t *testing.T) {
	// Point the token lookup at an empty cache so no client can exist.
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	sc := newTestServerContext(t)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "user://calendar/list"

	if _, err := handleCalendarList(context.Background(), req, sc); err == nil {
		t.Error("handleCalendarList() expected error without an authenticated client")
	}
}
