package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/mochizo/meetslot/internal/availability"
)

// initConfig loads configuration from the config file and environment.
// File settings live in ~/.config/meetslot/config.yaml; every key can
// also be set via a MEETSLOT_ environment variable.
func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if home := homeDir(); home != "" {
		viper.AddConfigPath(filepath.Join(home, ".config", "meetslot"))
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("MEETSLOT")
	viper.AutomaticEnv()

	viper.SetDefault("search.range_days", availability.DefaultSearchRangeDays)
	viper.SetDefault("search.daily_start", availability.DefaultDailyStart.String())
	viper.SetDefault("search.daily_end", availability.DefaultDailyEnd.String())
	viper.SetDefault("search.duration_minutes", int(availability.DefaultMeetingDuration.Minutes()))
	viper.SetDefault("search.exclude_keywords", []string{})
	viper.SetDefault("search.active_weekdays", []string{})

	// A missing config file is fine, defaults apply.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("failed to read config file", slog.String("error", err.Error()))
		}
	}
}

// settingsFromConfig builds the search settings from the loaded
// configuration. Invalid time strings fall back to the defaults.
func settingsFromConfig() availability.Settings {
	s := availability.DefaultSettings()

	if v := viper.GetInt("search.range_days"); v > 0 {
		s.SearchRangeDays = v
	}
	if v := viper.GetInt("search.duration_minutes"); v > 0 {
		s.MeetingDuration = time.Duration(v) * time.Minute
	}
	if v := viper.GetString("search.daily_start"); v != "" {
		if t, err := availability.ParseTimeOfDay(v); err == nil {
			s.DailyStart = t
		} else {
			slog.Warn("invalid search.daily_start in config", slog.String("value", v))
		}
	}
	if v := viper.GetString("search.daily_end"); v != "" {
		if t, err := availability.ParseTimeOfDay(v); err == nil {
			s.DailyEnd = t
		} else {
			slog.Warn("invalid search.daily_end in config", slog.String("value", v))
		}
	}
	if v := viper.GetStringSlice("search.exclude_keywords"); len(v) > 0 {
		s.ExcludeKeywords = v
	}
	if v := viper.GetStringSlice("search.active_weekdays"); len(v) > 0 {
		if set, err := availability.ParseWeekdays(v); err == nil {
			s.ActiveWeekdays = set
		} else {
			slog.Warn("invalid search.active_weekdays in config", slog.String("error", err.Error()))
		}
	}

	return s.Normalize()
}

// setupLogging configures the process-wide logger. Debug mode lowers
// the level; output always goes to stderr so stdio transports stay clean.
func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	// Windows fallback
	return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
}
