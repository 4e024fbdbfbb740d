// Package availability_tools provides the MCP tools for finding and
// booking meeting slots.
//
// Tools registered:
//   - availability_search: find free and partially free slots for a
//     set of participants over the configured search range
//   - availability_query_freebusy: raw free/busy lookup for a set of
//     calendars in an explicit time range
//   - availability_register_meeting: create calendar events in chosen
//     slots on the authorized account's primary calendar
//
// All tools accept an optional account argument so multiple Google
// accounts can be used side by side. Search criteria not given in the
// request fall back to the server's configured defaults.
package availability_tools
