package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/mochizo/meetslot/internal/availability"
	"github.com/mochizo/meetslot/internal/calendar"
	"github.com/mochizo/meetslot/internal/search"
)

func newSearchCmd() *cobra.Command {
	var (
		account         string
		durationMinutes int
		rangeDays       int
		dailyStart      string
		dailyEnd        string
		excludeKeywords []string
		weekdays        []string
		showConflicts   bool
	)

	cmd := &cobra.Command{
		Use:   "search PARTICIPANT...",
		Short: "Find meeting slots where all participants are free",
		Long: `Search the calendars of the given participants for meeting slots where
everyone is free, and list partially free slots ranked by how few
participants are busy.

Participants are calendar email addresses. Defaults for the search
criteria come from the config file (~/.config/meetslot/config.yaml) or
MEETSLOT_ environment variables; flags override both.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			participants := collectParticipants(args)
			if len(participants) == 0 {
				return fmt.Errorf("no valid participants given")
			}

			settings := settingsFromConfig()
			if cmd.Flags().Changed("duration") {
				settings.MeetingDuration = time.Duration(durationMinutes) * time.Minute
			}
			if cmd.Flags().Changed("range-days") {
				settings.SearchRangeDays = rangeDays
			}
			if cmd.Flags().Changed("daily-start") {
				t, err := availability.ParseTimeOfDay(dailyStart)
				if err != nil {
					return err
				}
				settings.DailyStart = t
			}
			if cmd.Flags().Changed("daily-end") {
				t, err := availability.ParseTimeOfDay(dailyEnd)
				if err != nil {
					return err
				}
				settings.DailyEnd = t
			}
			if cmd.Flags().Changed("exclude") {
				settings.ExcludeKeywords = excludeKeywords
			}
			if cmd.Flags().Changed("weekdays") {
				set, err := availability.ParseWeekdays(weekdays)
				if err != nil {
					return err
				}
				settings.ActiveWeekdays = set
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			if !calendar.HasTokenForAccount(account) {
				return fmt.Errorf("no stored token for account %q; run 'meetslot auth --account %s' first", account, account)
			}

			ctx := context.Background()
			client, err := calendar.NewClientForAccount(ctx, account)
			if err != nil {
				return fmt.Errorf("failed to create Calendar client for account %s: %w", account, err)
			}

			searcher := search.NewSearcher(client, client, search.WithLogger(slog.Default()))
			result, err := searcher.Run(ctx, participants, settings)
			if err != nil {
				return err
			}

			fmt.Print(search.FormatResult(result))
			if showConflicts {
				fmt.Print("\n" + search.FormatConflicts(result.Conflicts))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	cmd.Flags().IntVar(&durationMinutes, "duration", 30, "Meeting duration in minutes")
	cmd.Flags().IntVar(&rangeDays, "range-days", availability.DefaultSearchRangeDays, "How many days ahead to search")
	cmd.Flags().StringVar(&dailyStart, "daily-start", availability.DefaultDailyStart.String(), "Start of the daily search window (HH:MM)")
	cmd.Flags().StringVar(&dailyEnd, "daily-end", availability.DefaultDailyEnd.String(), "End of the daily search window (HH:MM)")
	cmd.Flags().StringSliceVar(&excludeKeywords, "exclude", nil, "Keywords; events whose title contains one are ignored")
	cmd.Flags().StringSliceVar(&weekdays, "weekdays", nil, "Weekday names eligible for slots, e.g. mon,tue,wed (default: Monday-Friday)")
	cmd.Flags().BoolVar(&showConflicts, "show-conflicts", false, "Also list the busy intervals inside the daily window")

	return cmd
}

// collectParticipants flattens positional arguments into participant
// addresses, allowing comma-separated lists inside a single argument.
func collectParticipants(args []string) []string {
	var participants []string
	for _, arg := range args {
		participants = append(participants, parseCommaSeparatedList(arg)...)
	}
	return participants
}

// parseCommaSeparatedList parses a comma-separated string into a slice,
// trimming whitespace from each element and filtering out empty strings.
// Fullwidth and ideographic commas separate entries too. Returns nil if
// the input is empty or contains only whitespace/commas.
func parseCommaSeparatedList(s string) []string {
	result := availability.SplitList(s)
	if len(result) == 0 {
		return nil
	}
	return result
}
