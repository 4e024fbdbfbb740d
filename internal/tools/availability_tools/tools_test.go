package availability_tools

import (
	"testing"
	"time"

	"github.com/mochizo/meetslot/internal/availability"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single entry",
			input:    "a@example.com",
			expected: []string{"a@example.com"},
		},
		{
			name:     "multiple entries with spaces",
			input:    "a@example.com, b@example.com ,c@example.com",
			expected: []string{"a@example.com", "b@example.com", "c@example.com"},
		},
		{
			name:     "empty entries dropped",
			input:    "a@example.com,, ,b@example.com",
			expected: []string{"a@example.com", "b@example.com"},
		},
		{
			name:     "ideographic and fullwidth commas",
			input:    "standup、1on1，lunch",
			expected: []string{"standup", "1on1", "lunch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitList(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitList() = %v, expected %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitList()[%d] = %v, expected %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestSettingsFromArgs(t *testing.T) {
	base := availability.DefaultSettings()

	t.Run("no overrides keeps defaults", func(t *testing.T) {
		s, err := settingsFromArgs(map[string]any{}, base)
		if err != nil {
			t.Fatalf("settingsFromArgs() error = %v", err)
		}
		if s.MeetingDuration != base.MeetingDuration {
			t.Errorf("MeetingDuration = %v, expected %v", s.MeetingDuration, base.MeetingDuration)
		}
		if s.SearchRangeDays != base.SearchRangeDays {
			t.Errorf("SearchRangeDays = %v, expected %v", s.SearchRangeDays, base.SearchRangeDays)
		}
	})

	t.Run("overrides applied", func(t *testing.T) {
		args := map[string]any{
			"durationMinutes": float64(60),
			"rangeDays":       float64(7),
			"dailyStart":      "09:30",
			"dailyEnd":        "17:00",
			"excludeKeywords": "focus, blocker",
		}
		s, err := settingsFromArgs(args, base)
		if err != nil {
			t.Fatalf("settingsFromArgs() error = %v", err)
		}
		if s.MeetingDuration != 60*time.Minute {
			t.Errorf("MeetingDuration = %v, expected 1h", s.MeetingDuration)
		}
		if s.SearchRangeDays != 7 {
			t.Errorf("SearchRangeDays = %v, expected 7", s.SearchRangeDays)
		}
		if s.DailyStart.String() != "09:30" {
			t.Errorf("DailyStart = %v, expected 09:30", s.DailyStart)
		}
		if s.DailyEnd.String() != "17:00" {
			t.Errorf("DailyEnd = %v, expected 17:00", s.DailyEnd)
		}
		if len(s.ExcludeKeywords) != 2 || s.ExcludeKeywords[0] != "focus" || s.ExcludeKeywords[1] != "blocker" {
			t.Errorf("ExcludeKeywords = %v, expected [focus blocker]", s.ExcludeKeywords)
		}
	})

	t.Run("active weekdays", func(t *testing.T) {
		s, err := settingsFromArgs(map[string]any{"activeWeekdays": "sat,sun"}, base)
		if err != nil {
			t.Fatalf("settingsFromArgs() error = %v", err)
		}
		if !s.ActiveWeekdays.Has(time.Saturday) || !s.ActiveWeekdays.Has(time.Sunday) {
			t.Errorf("ActiveWeekdays = %v, expected weekend only", s.ActiveWeekdays.Days())
		}
		if s.ActiveWeekdays.Has(time.Monday) {
			t.Error("Monday should have been replaced by the override")
		}
	})

	t.Run("invalid weekday name", func(t *testing.T) {
		if _, err := settingsFromArgs(map[string]any{"activeWeekdays": "mon,funday"}, base); err == nil {
			t.Error("expected error for unknown weekday name")
		}
	})

	t.Run("invalid time of day", func(t *testing.T) {
		if _, err := settingsFromArgs(map[string]any{"dailyStart": "25:00"}, base); err == nil {
			t.Error("expected error for out-of-range dailyStart")
		}
	})

	t.Run("inverted daily window", func(t *testing.T) {
		args := map[string]any{
			"dailyStart": "18:00",
			"dailyEnd":   "09:00",
		}
		if _, err := settingsFromArgs(args, base); err == nil {
			t.Error("expected error for inverted daily window")
		}
	})
}
