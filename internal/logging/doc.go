// Package logging provides structured logging utilities for meetslot.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - PII sanitization (participant email anonymization)
//   - Consistent attribute naming across the codebase
//   - Logger adapter interface for flexibility
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "search.run")
//	logger.Info("search completed",
//	    logging.Participants(3),
//	    logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Debug("fetching events",
//	    logging.ParticipantHash(email))
//
// # Security Considerations
//
// This package is designed with security in mind:
//   - Participant emails are hashed to prevent PII leakage while allowing correlation
//   - Tokens are never logged directly
package logging
