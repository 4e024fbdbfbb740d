// Package availability implements the meeting availability engine.
//
// The engine reconciles busy-interval data from two independently queried
// Google Calendar sources (the FreeBusy API and the Events API) into one
// canonical per-participant busy set, enumerates fixed-duration candidate
// slots inside a recurring daily window, and classifies each slot as free,
// partially conflicted, or fully blocked.
//
// All functions in this package are pure and deterministic: the current time
// is always an explicit parameter, settings are immutable values, and no
// state survives between searches. Times are compared as local wall-clock
// values in whatever location the caller supplies.
//
// Example usage:
//
//	settings := availability.DefaultSettings()
//	win := availability.WindowFrom(now, settings.SearchRangeDays)
//	busy, err := availability.Reconcile(data, settings)
//	if err != nil {
//	    return err
//	}
//	free, partial := availability.Classify(
//	    availability.Candidates(win, settings, now), busy, len(participants))
//	availability.RankPartial(partial)
package availability
