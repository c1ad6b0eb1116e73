// Package metrics provides operational metrics collection.
//
// # Metric Categories
//
//   - Backend calls: count by operation and outcome, latency histogram
//   - HTTP requests: count by route and status class
//
// The Recorder registers its collectors with a caller-supplied registry so
// tests can use an isolated registry. A nil Recorder discards observations.
package metrics
