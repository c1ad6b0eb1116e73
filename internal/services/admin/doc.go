// Package admin implements the operator pages for arenas and events.
//
// It renders server-side HTML over the events REST backend: reads happen per
// request, writes redirect back to the list so every view reflects the
// backend after a mutation.
package admin
