// Package resources provides MCP resources for exposing account and
// configuration data. Resources are read-only data sources that MCP
// clients can fetch, such as the calendars of the authenticated account
// and the server's default search criteria.
package resources
