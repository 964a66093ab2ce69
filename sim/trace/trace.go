package trace

// TraceLevel controls the verbosity of trial tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelIntervals captures downtime intervals only.
	TraceLevelIntervals TraceLevel = "intervals"
	// TraceLevelEvents captures downtime intervals and every processed event.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelIntervals: true,
	TraceLevelEvents:    true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Enabled reports whether the level records anything.
func (l TraceLevel) Enabled() bool {
	return l == TraceLevelIntervals || l == TraceLevelEvents
}

// TrialTrace collects records during one trial.
type TrialTrace struct {
	Level     TraceLevel
	Trial     int
	Intervals []DowntimeRecord
	Events    []EventRecord
}

// NewTrialTrace creates a TrialTrace ready for recording.
func NewTrialTrace(level TraceLevel, trial int) *TrialTrace {
	return &TrialTrace{
		Level:     level,
		Trial:     trial,
		Intervals: make([]DowntimeRecord, 0),
		Events:    make([]EventRecord, 0),
	}
}

// RecordInterval appends a downtime record.
func (t *TrialTrace) RecordInterval(record DowntimeRecord) {
	t.Intervals = append(t.Intervals, record)
}

// RecordEvent appends an event record. Only the events level keeps events.
func (t *TrialTrace) RecordEvent(record EventRecord) {
	if t.Level != TraceLevelEvents {
		return
	}
	t.Events = append(t.Events, record)
}
