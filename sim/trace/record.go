// Package trace provides opt-in recording of what happened inside a trial.
// This package has no dependencies on sim/ and stores pure data types.
package trace

// DowntimeRecord captures one maximal span during which the system was down.
type DowntimeRecord struct {
	Start      float64 // hours since trial start
	End        float64 // hours since trial start
	OpenAtEnd  bool    // true if the span was closed by the trial boundary
	DownGroups []int   // groups fully failed at the moment the span opened
}

// Duration returns the length of the downtime span.
func (r DowntimeRecord) Duration() float64 {
	return r.End - r.Start
}

// EventRecord captures a single processed failure or repair event.
type EventRecord struct {
	Time        float64
	Kind        string // "failure" or "repair"
	Component   string
	Operational bool // system status after the event was applied
}
