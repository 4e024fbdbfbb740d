package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mochizo/meetslot/internal/availability"
	"github.com/mochizo/meetslot/internal/calendar"
	"github.com/mochizo/meetslot/internal/instrumentation"
	"github.com/mochizo/meetslot/internal/logging"
)

// BusySource supplies the authoritative busy intervals for a set of
// participants in one batched query.
type BusySource interface {
	QueryFreeBusy(ctx context.Context, timeMin, timeMax time.Time, participants []string) ([]calendar.FreeBusyResult, error)
}

// EventSource supplies the detailed event listing for one participant.
type EventSource interface {
	ListRawEvents(ctx context.Context, participant string, timeMin, timeMax time.Time) ([]availability.RawEvent, error)
}

// Result holds the outcome of a completed availability search.
type Result struct {
	// Window is the absolute time range the search covered.
	Window availability.SearchWindow

	// Participants are the normalized, deduplicated calendar identifiers
	// the search ran against.
	Participants []string

	// Free are slots without any conflict, in chronological order.
	Free []availability.Slot

	// Partial are slots where some but not all participants are busy,
	// ranked by conflict count and start time.
	Partial []availability.Slot

	// Conflicts are the reconciled busy intervals that fall inside the
	// daily search window on active weekdays.
	Conflicts []availability.BusyInterval

	// SourceErrors lists per-participant source failures the search
	// survived. A FreeBusy failure here means the participant
	// contributed no busy data at all.
	SourceErrors []*SourceFetchError
}

// Degraded reports whether any busy data source failed for any
// participant.
func (r *Result) Degraded() bool {
	return len(r.SourceErrors) > 0
}

// Searcher runs availability searches against a pair of busy data
// sources. The zero value is not usable; construct with NewSearcher.
type Searcher struct {
	busy    BusySource
	events  EventSource
	logger  *slog.Logger
	metrics *instrumentation.Metrics
	now     func() time.Time

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets the logger used during searches.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder used during searches.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(s *Searcher) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Searcher) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSearcher creates a Searcher reading from the given sources. Both
// sources are usually the same calendar client.
func NewSearcher(busy BusySource, events EventSource, opts ...Option) *Searcher {
	s := &Searcher{
		busy:    busy,
		events:  events,
		logger:  slog.Default(),
		metrics: &instrumentation.Metrics{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// begin registers a new search generation and cancels the previous one.
func (s *Searcher) begin(ctx context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	s.gen++
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	return ctx, s.gen
}

// current reports whether gen is still the live search generation.
func (s *Searcher) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == gen
}

// Run executes one availability search. Participants are normalized and
// deduplicated before fetching; the reported participant count for
// classification is the deduplicated one.
//
// Run returns ErrSuperseded if a newer Run call started before this one
// finished, and availability.ErrNoBusyData if the FreeBusy source failed
// for every participant.
func (s *Searcher) Run(ctx context.Context, participants []string, settings availability.Settings) (*Result, error) {
	start := s.now()

	settings = settings.Normalize()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	participants = dedupe(participants)
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	ctx, gen := s.begin(ctx)

	spanCtx, span := instrumentation.StartSearchSpan(ctx,
		instrumentation.NewSpanAttributeBuilder().
			WithParticipants(len(participants)).
			WithRangeDays(settings.SearchRangeDays).
			Build()...)
	defer span.End()

	logger := logging.WithOperation(s.logger, "search.run")
	logger.Debug("starting availability search",
		logging.Participants(len(participants)),
		slog.Int("range_days", settings.SearchRangeDays),
	)

	win := availability.WindowFrom(start, settings.SearchRangeDays)

	data, sourceErrs, err := s.fetch(spanCtx, win, participants)
	if err != nil {
		if !s.current(gen) || ctx.Err() != nil {
			s.metrics.RecordSearchSuperseded(spanCtx)
			return nil, ErrSuperseded
		}
		instrumentation.SetSpanError(span, err)
		s.metrics.RecordSearch(spanCtx, instrumentation.StatusError, s.now().Sub(start))
		return nil, err
	}

	for i := range data {
		data[i].Events = availability.FilterEvents(data[i].Events, settings.ExcludeKeywords)
	}

	busy, err := availability.Reconcile(data, settings)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		s.metrics.RecordSearch(spanCtx, instrumentation.StatusError, s.now().Sub(start))
		return nil, err
	}

	free, partial := availability.Classify(
		availability.Candidates(win, settings, start),
		busy,
		len(participants),
	)
	availability.RankPartial(partial)

	result := &Result{
		Window:       win,
		Participants: participants,
		Free:         free,
		Partial:      partial,
		Conflicts:    availability.ConflictsInRange(busy, settings),
		SourceErrors: sourceErrs,
	}

	// A search that lost the race is stale even if it finished cleanly.
	if !s.current(gen) {
		s.metrics.RecordSearchSuperseded(spanCtx)
		return nil, ErrSuperseded
	}

	elapsed := s.now().Sub(start)
	s.metrics.RecordSearch(spanCtx, instrumentation.StatusSuccess, elapsed)
	s.metrics.RecordSlotsFound(spanCtx, "free", len(free))
	s.metrics.RecordSlotsFound(spanCtx, "partial", len(partial))
	instrumentation.SetSpanSuccess(span)

	logger.Info("availability search completed",
		logging.Participants(len(participants)),
		slog.Int("free_slots", len(free)),
		slog.Int("partial_slots", len(partial)),
		slog.Int("source_errors", len(sourceErrs)),
		slog.Duration(logging.KeyDuration, elapsed),
	)

	return result, nil
}

// fetch gathers busy data from both sources concurrently: one batched
// FreeBusy query and one Events listing per participant. Individual
// source failures are collected, not returned; only a failure of the
// whole FreeBusy call or a cancelled context aborts the fetch.
func (s *Searcher) fetch(ctx context.Context, win availability.SearchWindow, participants []string) ([]availability.ParticipantData, []*SourceFetchError, error) {
	data := make([]availability.ParticipantData, len(participants))
	for i, p := range participants {
		data[i].Participant = p
	}

	var mu sync.Mutex
	var sourceErrs []*SourceFetchError

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		results, err := s.busy.QueryFreeBusy(gctx, win.TimeMin, win.TimeMax, participants)
		if err != nil {
			// The batched query is the backbone of the search. If the
			// call itself failed there is nothing to reconcile.
			return err
		}

		byParticipant := make(map[string]calendar.FreeBusyResult, len(results))
		for _, r := range results {
			byParticipant[availability.NormalizeParticipant(r.Participant)] = r
		}

		mu.Lock()
		defer mu.Unlock()
		for i, p := range participants {
			r, ok := byParticipant[p]
			if !ok || r.Err != nil {
				fetchErr := r.Err
				if !ok {
					fetchErr = errNoFreeBusyEntry
				}
				data[i].PrimaryErr = fetchErr
				sourceErrs = append(sourceErrs, &SourceFetchError{
					Participant: p,
					Source:      logging.SourceFreeBusy,
					Err:         fetchErr,
				})
				continue
			}
			data[i].Busy = r.Busy
		}
		return nil
	})

	for i, p := range participants {
		g.Go(func() error {
			events, err := s.events.ListRawEvents(gctx, p, win.TimeMin, win.TimeMax)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// Secondary source: its loss only costs titles and
				// suppression detail, never the search.
				data[i].EventsErr = err
				sourceErrs = append(sourceErrs, &SourceFetchError{
					Participant: p,
					Source:      logging.SourceEvents,
					Err:         err,
				})
				s.logger.Warn("events listing failed, continuing without titles",
					logging.ParticipantHash(p),
					logging.Err(err),
				)
				return nil
			}
			data[i].Events = events
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return data, sourceErrs, nil
}

// dedupe normalizes participant identifiers and drops duplicates, empty
// entries and anything not shaped like an email address, preserving
// first-seen order.
func dedupe(participants []string) []string {
	seen := make(map[string]struct{}, len(participants))
	out := make([]string, 0, len(participants))
	for _, p := range participants {
		n := availability.NormalizeParticipant(p)
		if !availability.ValidParticipant(n) {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
