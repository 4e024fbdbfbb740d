// Package cmd implements the command-line interface for meetslot.
//
// This package provides the following commands:
//   - search: Find meeting slots where all participants are free
//   - register: Create calendar events in chosen slots
//   - auth: Authorize Google Calendar access for an account
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
package cmd
