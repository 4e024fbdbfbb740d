package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency and DRY
const (
	attrStatus    = "status"
	attrOperation = "operation"
	attrSource    = "source"
	attrResult    = "result"
	attrTool      = "tool"
	attrKind      = "kind"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// Availability search metrics
	searchesTotal   metric.Int64Counter
	searchDuration  metric.Float64Histogram
	searchesDropped metric.Int64Counter
	slotsFound      metric.Int64Histogram

	// Google API metrics
	googleAPIOperationsTotal   metric.Int64Counter
	googleAPIOperationDuration metric.Float64Histogram

	// OAuth metrics
	oauthAuthTotal         metric.Int64Counter
	oauthTokenRefreshTotal metric.Int64Counter

	// MCP Tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// Write-back metrics
	meetingsRegisteredTotal metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	// Search metrics
	m.searchesTotal, err = meter.Int64Counter(
		"availability_searches_total",
		metric.WithDescription("Total number of availability searches"),
		metric.WithUnit("{search}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create availability_searches_total counter: %w", err)
	}

	m.searchDuration, err = meter.Float64Histogram(
		"availability_search_duration_seconds",
		metric.WithDescription("Availability search duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create availability_search_duration_seconds histogram: %w", err)
	}

	m.searchesDropped, err = meter.Int64Counter(
		"availability_searches_superseded_total",
		metric.WithDescription("Searches abandoned because a newer search replaced them"),
		metric.WithUnit("{search}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create availability_searches_superseded_total counter: %w", err)
	}

	m.slotsFound, err = meter.Int64Histogram(
		"availability_slots_found",
		metric.WithDescription("Number of slots found per search, by slot kind"),
		metric.WithUnit("{slot}"),
		metric.WithExplicitBucketBoundaries(0, 1, 5, 10, 25, 50, 100, 250, 500),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create availability_slots_found histogram: %w", err)
	}

	// Google API Metrics
	m.googleAPIOperationsTotal, err = meter.Int64Counter(
		"google_api_operations_total",
		metric.WithDescription("Total number of Google API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create google_api_operations_total counter: %w", err)
	}

	m.googleAPIOperationDuration, err = meter.Float64Histogram(
		"google_api_operation_duration_seconds",
		metric.WithDescription("Google API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create google_api_operation_duration_seconds histogram: %w", err)
	}

	// OAuth Metrics
	m.oauthAuthTotal, err = meter.Int64Counter(
		"oauth_auth_total",
		metric.WithDescription("Total number of OAuth authentication attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_auth_total counter: %w", err)
	}

	m.oauthTokenRefreshTotal, err = meter.Int64Counter(
		"oauth_token_refresh_total",
		metric.WithDescription("Total number of OAuth token refresh attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_token_refresh_total counter: %w", err)
	}

	// MCP Tool Metrics
	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	m.meetingsRegisteredTotal, err = meter.Int64Counter(
		"meetings_registered_total",
		metric.WithDescription("Total number of meetings written back to the calendar"),
		metric.WithUnit("{meeting}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create meetings_registered_total counter: %w", err)
	}

	return m, nil
}

// RecordSearch records an availability search with status and duration.
func (m *Metrics) RecordSearch(ctx context.Context, status string, duration time.Duration) {
	if m.searchesTotal == nil || m.searchDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrStatus, status),
	}

	m.searchesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.searchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordSearchSuperseded records a search that was abandoned because a newer
// invocation replaced it.
func (m *Metrics) RecordSearchSuperseded(ctx context.Context) {
	if m.searchesDropped == nil {
		return // Instrumentation not initialized
	}

	m.searchesDropped.Add(ctx, 1)
}

// RecordSlotsFound records how many slots of a kind ("free" or "partial") a
// search produced.
func (m *Metrics) RecordSlotsFound(ctx context.Context, kind string, count int) {
	if m.slotsFound == nil {
		return // Instrumentation not initialized
	}

	m.slotsFound.Record(ctx, int64(count), metric.WithAttributes(
		attribute.String(attrKind, kind),
	))
}

// RecordGoogleAPIOperation records a Google API operation with source,
// operation, status, and duration.
//
// Parameters:
//   - source: Busy data source ("freebusy" or "events")
//   - operation: Operation type (query, list, insert)
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the operation
func (m *Metrics) RecordGoogleAPIOperation(ctx context.Context, source, operation, status string, duration time.Duration) {
	if m.googleAPIOperationsTotal == nil || m.googleAPIOperationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrSource, source),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.googleAPIOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.googleAPIOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordOAuthAuth records an OAuth authentication attempt with result.
// Result should be one of: "success", "failure"
func (m *Metrics) RecordOAuthAuth(ctx context.Context, result string) {
	if m.oauthAuthTotal == nil {
		return // Instrumentation not initialized
	}

	m.oauthAuthTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrResult, result),
	))
}

// RecordOAuthTokenRefresh records an OAuth token refresh attempt with result.
// Result should be one of: "success", "failure", "expired"
func (m *Metrics) RecordOAuthTokenRefresh(ctx context.Context, result string) {
	if m.oauthTokenRefreshTotal == nil {
		return // Instrumentation not initialized
	}

	m.oauthTokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrResult, result),
	))
}

// RecordToolInvocation records an MCP tool invocation with tool name, status, and duration.
//
// Parameters:
//   - toolName: Name of the MCP tool (e.g., "availability_search")
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the tool execution
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordMeetingRegistered records a meeting written back to the calendar.
func (m *Metrics) RecordMeetingRegistered(ctx context.Context, status string) {
	if m.meetingsRegisteredTotal == nil {
		return // Instrumentation not initialized
	}

	m.meetingsRegisteredTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrStatus, status),
	))
}
