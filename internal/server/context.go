package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mochizo/meetslot/internal/availability"
	"github.com/mochizo/meetslot/internal/calendar"
	"github.com/mochizo/meetslot/internal/instrumentation"
	"github.com/mochizo/meetslot/internal/search"
)

// ServerContext holds the shared state of the MCP server: per-account
// calendar clients, the searchers built on top of them, and the
// configured search settings.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	calendarClients map[string]*calendar.Client // account name to client
	searchers       map[string]*search.Searcher // account name to searcher

	settings availability.Settings
	logger   *slog.Logger
	metrics  *instrumentation.Metrics

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context with the given search
// settings. Calendar clients are created lazily per account on first use.
func NewServerContext(ctx context.Context, settings availability.Settings) (*ServerContext, error) {
	settings = settings.Normalize()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		calendarClients: make(map[string]*calendar.Client),
		searchers:       make(map[string]*search.Searcher),
		settings:        settings,
		logger:          slog.Default(),
		metrics:         &instrumentation.Metrics{},
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Settings returns the configured search settings.
func (sc *ServerContext) Settings() availability.Settings {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.settings
}

// SetLogger sets the logger used by searchers created from this context.
func (sc *ServerContext) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.logger = logger
}

// SetMetrics sets the metrics recorder used by tool handlers and searchers.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	if m == nil {
		return
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder. Never nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// CalendarClientForAccount returns the Calendar client for a specific
// account, creating and caching it on first use. Returns nil if the
// account has no token.
func (sc *ServerContext) CalendarClientForAccount(account string) *calendar.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.calendarClients[account]; ok {
		return client
	}

	if !calendar.HasTokenForAccount(account) {
		return nil
	}

	client, err := calendar.NewClientForAccount(sc.ctx, account)
	if err != nil {
		sc.logger.Warn("failed to create Calendar client",
			slog.String("account", account),
			slog.String("error", err.Error()),
		)
		return nil
	}

	sc.calendarClients[account] = client
	return client
}

// CalendarClient returns the Calendar client for the default account
func (sc *ServerContext) CalendarClient() *calendar.Client {
	return sc.CalendarClientForAccount("default")
}

// SetCalendarClientForAccount sets the Calendar client for a specific account
func (sc *ServerContext) SetCalendarClientForAccount(account string, client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calendarClients[account] = client
	// A replaced client invalidates the searcher built on the old one.
	delete(sc.searchers, account)
}

// SearcherForAccount returns the availability searcher for an account,
// building it from the account's calendar client on first use. The
// client must already exist or be creatable from a stored token.
func (sc *ServerContext) SearcherForAccount(account string) *search.Searcher {
	client := sc.CalendarClientForAccount(account)
	if client == nil {
		return nil
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	if s, ok := sc.searchers[account]; ok {
		return s
	}

	s := search.NewSearcher(client, client,
		search.WithLogger(sc.logger),
		search.WithMetrics(sc.metrics),
	)
	sc.searchers[account] = s
	return s
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
