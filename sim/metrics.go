// Collects per-trial metrics into parallel result sequences and derives
// the averages consumed by SLA checks and reports.

package sim

import "sync"

// Results holds one entry per completed trial in each sequence.
// Index i of every sequence belongs to the same trial.
type Results struct {
	Duration float64 // trial duration in hours

	Availability   []float64
	BreakCount     []int
	TotalBreakTime []float64
	MaxBreakTime   []float64
	RevenueLost    []float64

	OperationalTime   []float64
	DowntimeIntervals []int

	mu sync.Mutex
}

// NewResults creates empty result sequences for trials of the given duration.
func NewResults(duration float64, capacity int) *Results {
	return &Results{
		Duration:          duration,
		Availability:      make([]float64, 0, capacity),
		BreakCount:        make([]int, 0, capacity),
		TotalBreakTime:    make([]float64, 0, capacity),
		MaxBreakTime:      make([]float64, 0, capacity),
		RevenueLost:       make([]float64, 0, capacity),
		OperationalTime:   make([]float64, 0, capacity),
		DowntimeIntervals: make([]int, 0, capacity),
	}
}

// Append records all metrics of one trial at once. Safe for concurrent use.
func (r *Results) Append(tr TrialResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Availability = append(r.Availability, tr.Availability)
	r.BreakCount = append(r.BreakCount, tr.BreakCount)
	r.TotalBreakTime = append(r.TotalBreakTime, tr.TotalBreakTime)
	r.MaxBreakTime = append(r.MaxBreakTime, tr.MaxBreakTime)
	r.RevenueLost = append(r.RevenueLost, tr.RevenueLost)
	r.OperationalTime = append(r.OperationalTime, tr.OperationalTime)
	r.DowntimeIntervals = append(r.DowntimeIntervals, tr.DowntimeIntervals)
}

// Len returns the number of recorded trials.
func (r *Results) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Availability)
}

// Trial returns the record of trial i.
func (r *Results) Trial(i int) TrialResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return TrialResult{
		Availability:      r.Availability[i],
		BreakCount:        r.BreakCount[i],
		TotalBreakTime:    r.TotalBreakTime[i],
		MaxBreakTime:      r.MaxBreakTime[i],
		RevenueLost:       r.RevenueLost[i],
		OperationalTime:   r.OperationalTime[i],
		DowntimeIntervals: r.DowntimeIntervals[i],
	}
}

// Averages are the cross-trial means checked against SLA thresholds.
type Averages struct {
	Availability      float64 `json:"availability"`
	Breaks            float64 `json:"breaks"`
	MaxBreakTime      float64 `json:"max_break_time"`
	TotalBreakTime    float64 `json:"total_break_time"`
	AverageRepairTime float64 `json:"average_repair_time"` // downtime per downtime interval, 0 if none
	CostPerYear       float64 `json:"cost_per_year"`       // mean revenue lost scaled to HoursPerYear
	RevenueLost       float64 `json:"revenue_lost"`
}

// Averages computes the cross-trial means. Returns zero values for no trials.
func (r *Results) Averages() Averages {
	r.mu.Lock()
	defer r.mu.Unlock()

	var avg Averages
	if len(r.Availability) == 0 {
		return avg
	}
	avg.Availability = CalculateMean(r.Availability)
	avg.Breaks = CalculateMean(r.BreakCount)
	avg.MaxBreakTime = CalculateMean(r.MaxBreakTime)
	avg.TotalBreakTime = CalculateMean(r.TotalBreakTime)
	avg.RevenueLost = CalculateMean(r.RevenueLost)

	downtime, intervals := 0.0, 0
	for i, d := range r.TotalBreakTime {
		downtime += d
		intervals += r.DowntimeIntervals[i]
	}
	if intervals > 0 {
		avg.AverageRepairTime = downtime / float64(intervals)
	}
	if r.Duration > 0 {
		avg.CostPerYear = avg.RevenueLost * HoursPerYear / r.Duration
	}
	return avg
}

// Summary holds the distribution of every core metric across trials.
type Summary struct {
	Availability   Distribution `json:"availability"`
	BreakCount     Distribution `json:"break_count"`
	TotalBreakTime Distribution `json:"total_break_time"`
	MaxBreakTime   Distribution `json:"max_break_time"`
	RevenueLost    Distribution `json:"revenue_lost"`
}

// Summary computes a Distribution for each core metric.
func (r *Results) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Summary{
		Availability:   NewDistribution(r.Availability),
		BreakCount:     NewDistribution(toFloat64s(r.BreakCount)),
		TotalBreakTime: NewDistribution(r.TotalBreakTime),
		MaxBreakTime:   NewDistribution(r.MaxBreakTime),
		RevenueLost:    NewDistribution(r.RevenueLost),
	}
}
