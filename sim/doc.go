// Package sim provides the Monte Carlo discrete-event engine that estimates
// the availability of a system built from redundant component groups.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - component.go: failure rate and repair time parameters, exponential draws
//   - system.go: redundancy groups and failed-set bookkeeping
//   - event.go: failure/repair events and the deterministic event queue
//   - simulator.go: the per-trial event loop and metric accounting
//   - runner.go: repetition of independent trials, optionally in parallel
//
// # Architecture
//
// The sim package owns all numeric logic; collaborators live elsewhere:
//   - sim/sla/: threshold checks against averaged metrics
//   - sim/trace/: opt-in recording of downtime intervals and events
//   - sim/export/: Prometheus textfile export of averaged metrics
//   - cmd/: configuration loading, presets and report printing
//
// Time is measured in hours throughout. Rates are failures per hour and
// costs are in the currency of the configuration.
package sim
