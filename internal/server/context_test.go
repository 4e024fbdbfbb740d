package server

import (
	"context"
	"testing"
	"time"

	"github.com/mochizo/meetslot/internal/availability"
)

func TestNewServerContext(t *testing.T) {
	sc, err := NewServerContext(context.Background(), availability.DefaultSettings())
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if sc.IsShutdown() {
		t.Error("new server context reports shutdown")
	}
	if sc.Settings().MeetingDuration != 30*time.Minute {
		t.Errorf("Settings().MeetingDuration = %v, want 30m", sc.Settings().MeetingDuration)
	}
	if sc.Metrics() == nil {
		t.Error("Metrics() returned nil")
	}
}

func TestNewServerContextInvalidSettings(t *testing.T) {
	bad := availability.DefaultSettings()
	bad.MeetingDuration = -5 * time.Minute

	if _, err := NewServerContext(context.Background(), bad); err == nil {
		t.Error("NewServerContext() with invalid settings expected error, got nil")
	}
}

func TestServerContextShutdown(t *testing.T) {
	sc, err := NewServerContext(context.Background(), availability.DefaultSettings())
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if err := sc.Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("IsShutdown() = false after Shutdown()")
	}
	select {
	case <-sc.Context().Done():
	default:
		t.Error("context not cancelled after Shutdown()")
	}

	// Shutdown is idempotent.
	if err := sc.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}

func TestCalendarClientForAccountWithoutToken(t *testing.T) {
	sc, err := NewServerContext(context.Background(), availability.DefaultSettings())
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	// Invalid account names never have tokens.
	if client := sc.CalendarClientForAccount("../escape"); client != nil {
		t.Error("CalendarClientForAccount() returned client for invalid account")
	}
	if s := sc.SearcherForAccount("../escape"); s != nil {
		t.Error("SearcherForAccount() returned searcher for invalid account")
	}
}
