// Package instrumentation provides OpenTelemetry instrumentation for the
// meetslot availability finder.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for searches, Google API calls, and OAuth operations
//   - Distributed tracing for search runs and API calls
//   - Prometheus metrics export via /metrics endpoint on a dedicated port
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Availability Search Metrics:
//   - availability_searches_total: Counter of searches by status
//   - availability_search_duration_seconds: Histogram of search durations
//   - availability_searches_superseded_total: Counter of searches abandoned by a newer invocation
//   - availability_slots_found: Histogram of slots produced per search, by kind (free/partial)
//
// Google API Metrics:
//   - google_api_operations_total: Counter of Google API operations by source, operation, status
//   - google_api_operation_duration_seconds: Histogram of Google API operation durations
//
// OAuth Authentication Metrics:
//   - oauth_auth_total: Counter of OAuth authentication events by result
//   - oauth_token_refresh_total: Counter of token refresh attempts by result
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//
// Write-back Metrics:
//   - meetings_registered_total: Counter of meetings written back to the calendar
//
// # Tracing
//
// Distributed tracing spans are created for:
//   - Availability search runs (availability.search)
//   - MCP tool invocations (tool.<name>)
//   - Google API calls (google.<source>.<operation>)
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: meetslot)
//
// # Example Usage
//
//	// Initialize instrumentation
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "meetslot",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	// Get metrics recorder
//	recorder := provider.Metrics()
//
//	// Record a search
//	recorder.RecordSearch(ctx, "success", time.Since(start))
//
//	// Record a Google API operation
//	recorder.RecordGoogleAPIOperation(ctx, "freebusy", "query", "success", time.Since(start))
package instrumentation
