// Package server provides the MCP server context and the operational
// HTTP endpoints that run alongside it.
//
// # Key Components
//
// ServerContext manages per-account Calendar clients and the
// availability searchers built on top of them, with lazy initialization
// and caching. Clients are created from tokens stored on disk by the
// auth command.
//
// MetricsServer serves Prometheus metrics on a dedicated port, kept
// separate from the MCP transport so that scraping never interferes
// with tool traffic.
//
// HealthChecker exposes liveness and readiness handlers suitable for
// Kubernetes probes; readiness flips once the server context is
// shutting down.
package server
