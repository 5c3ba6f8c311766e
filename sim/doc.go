// Package sim implements pageflight's core page-load time estimator: a
// discrete-event simulation of a dependency graph of network requests and
// CPU tasks under a given set of network conditions.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - node.go: the dependency graph (Node, Record, Graph)
//   - connection.go: per-connection TCP/TLS transfer-time arithmetic
//   - scheduler.go: the admit/rebalance/advance/complete event loop
//
// config.go holds the tunable parameters (RTT, throughput, concurrency
// cap) and the named network-condition presets. errors.go defines the two
// sentinel errors the core can return. timeline.go defines the
// per-node-timing output used by tests and reporting.
//
// Estimate is the package's single entry point: it is a pure function
// from (graph, config) to (elapsed time, per-node timeline) — no I/O, no
// wall-clock timing, no shared mutation, no logging inside the loop.
package sim
