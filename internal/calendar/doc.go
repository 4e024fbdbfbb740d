// Package calendar provides access to the Google Calendar APIs used by
// meetslot's availability search.
//
// The package exposes the three operations the search pipeline needs:
//
//   - QueryFreeBusy: one batched FreeBusy query covering all participants,
//     the authoritative source of busy intervals
//   - ListRawEvents: per-participant event listings that enrich busy
//     intervals with titles and invite responses
//   - RegisterMeetings: write-back of chosen slots as calendar events,
//     with attendee notifications suppressed
//
// Clients authenticate per account via the google package's token store.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClient(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := client.QueryFreeBusy(ctx, win.TimeMin, win.TimeMax, participants)
//	if err != nil {
//	    log.Fatal(err)
//	}
package calendar
