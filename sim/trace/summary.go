package trace

// TraceSummary aggregates statistics from a TrialTrace.
type TraceSummary struct {
	Intervals       int
	OpenAtEnd       int
	TotalDowntime   float64
	LongestDowntime float64
	MeanDowntime    float64
	EventsRecorded  int
	Failures        int
	Repairs         int
	FailuresByName  map[string]int // component name → failure count
}

// Summarize computes aggregate statistics from a TrialTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(t *TrialTrace) *TraceSummary {
	summary := &TraceSummary{
		FailuresByName: make(map[string]int),
	}
	if t == nil {
		return summary
	}

	summary.Intervals = len(t.Intervals)
	for _, iv := range t.Intervals {
		d := iv.Duration()
		summary.TotalDowntime += d
		if d > summary.LongestDowntime {
			summary.LongestDowntime = d
		}
		if iv.OpenAtEnd {
			summary.OpenAtEnd++
		}
	}
	if summary.Intervals > 0 {
		summary.MeanDowntime = summary.TotalDowntime / float64(summary.Intervals)
	}

	summary.EventsRecorded = len(t.Events)
	for _, ev := range t.Events {
		switch ev.Kind {
		case "failure":
			summary.Failures++
			summary.FailuresByName[ev.Component]++
		case "repair":
			summary.Repairs++
		}
	}
	return summary
}
