// Package search orchestrates availability searches end to end.
//
// A Searcher fans out to the two busy data sources (one batched FreeBusy
// query, one Events listing per participant), reconciles the results into
// busy intervals, and classifies candidate slots into free and partial
// ones. Source failures below the FreeBusy query degrade the result
// instead of failing it; they are reported alongside the slots.
//
// Only one search is live per Searcher at a time. Starting a new search
// cancels the previous one, which then returns ErrSuperseded. Stale
// results are never returned.
package search
