package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mochizo/meetslot/internal/availability"
	"github.com/mochizo/meetslot/internal/calendar"
)

func newRegisterCmd() *cobra.Command {
	var (
		account         string
		title           string
		description     string
		durationMinutes int
		timeZone        string
		attendees       []string
	)

	cmd := &cobra.Command{
		Use:   "register SLOT_START...",
		Short: "Create calendar events in chosen slots",
		Long: `Create one calendar event per slot on the account's primary calendar.
Slot starts are RFC3339 timestamps, typically copied from search output.
No invitations are sent; attendees are only recorded on the event.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("--title is required")
			}

			duration := settingsFromConfig().MeetingDuration
			if cmd.Flags().Changed("duration") {
				duration = time.Duration(durationMinutes) * time.Minute
			}
			if duration <= 0 {
				return fmt.Errorf("meeting duration must be positive")
			}

			var slots []availability.Slot
			for _, arg := range args {
				start, err := time.Parse(time.RFC3339, arg)
				if err != nil {
					return fmt.Errorf("invalid slot start time %q: %w", arg, err)
				}
				slots = append(slots, availability.Slot{Start: start, End: start.Add(duration)})
			}

			if !calendar.HasTokenForAccount(account) {
				return fmt.Errorf("no stored token for account %q; run 'meetslot auth --account %s' first", account, account)
			}

			ctx := context.Background()
			client, err := calendar.NewClientForAccount(ctx, account)
			if err != nil {
				return fmt.Errorf("failed to create Calendar client for account %s: %w", account, err)
			}

			input := calendar.MeetingInput{
				Title:       title,
				Description: description,
				TimeZone:    timeZone,
				Attendees:   attendees,
			}

			created, err := client.RegisterMeetings(ctx, input, slots)
			for _, m := range created {
				fmt.Printf("Created %s - %s  %s\n  %s\n",
					m.Start.Format("2006-01-02 15:04"),
					m.End.Format("15:04"),
					m.Title,
					m.HTMLLink,
				)
			}
			if err != nil {
				return fmt.Errorf("some meetings could not be created: %w", err)
			}

			fmt.Printf("Created %d meeting(s)\n", len(created))
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	cmd.Flags().StringVar(&title, "title", "", "Event title (required)")
	cmd.Flags().StringVar(&description, "description", "", "Event description")
	cmd.Flags().IntVar(&durationMinutes, "duration", 30, "Meeting duration in minutes")
	cmd.Flags().StringVar(&timeZone, "time-zone", "", "Time zone for the event (default: UTC)")
	cmd.Flags().StringSliceVar(&attendees, "attendees", nil, "Attendee email addresses to record on the event")

	return cmd
}
