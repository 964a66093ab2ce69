// Package sla checks averaged simulation metrics against service-level
// thresholds. Only thresholds that were supplied are evaluated.
package sla

import (
	"fmt"

	"github.com/yevsky/NiDUC/sim"
)

// Thresholds is one named SLA tier. A nil field means "not required".
type Thresholds struct {
	Name              string   `yaml:"name" json:"name"`
	Availability      *float64 `yaml:"availability,omitempty" json:"availability,omitempty"`             // minimum
	MaxBreaks         *int     `yaml:"max_breaks,omitempty" json:"max_breaks,omitempty"`                 // maximum
	MaxBreakTime      *float64 `yaml:"max_break_time,omitempty" json:"max_break_time,omitempty"`         // maximum, hours
	TotalBreakTime    *float64 `yaml:"total_break_time,omitempty" json:"total_break_time,omitempty"`     // maximum, hours
	AverageRepairTime *float64 `yaml:"average_repair_time,omitempty" json:"average_repair_time,omitempty"` // maximum, hours
	MaxCostPerYear    *float64 `yaml:"max_cost_per_year,omitempty" json:"max_cost_per_year,omitempty"`   // maximum
}

// Check is the outcome of one evaluated threshold.
type Check struct {
	Metric string
	Actual float64
	Limit  float64
	Min    bool // true if Limit is a lower bound
	Passed bool
}

func (c Check) String() string {
	op := "<="
	if c.Min {
		op = ">="
	}
	status := "ok"
	if !c.Passed {
		status = "FAIL"
	}
	return fmt.Sprintf("%s: %.6g %s %.6g [%s]", c.Metric, c.Actual, op, c.Limit, status)
}

// Report lists every evaluated threshold of a tier.
type Report struct {
	Name      string
	Compliant bool
	Checks    []Check
}

// Failed returns the checks that did not pass.
func (r Report) Failed() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

// Check evaluates the supplied thresholds against averaged metrics.
// A tier with no thresholds is trivially compliant.
func (t Thresholds) Check(avg sim.Averages) Report {
	r := Report{Name: t.Name, Compliant: true}
	add := func(metric string, actual, limit float64, min bool) {
		passed := actual <= limit
		if min {
			passed = actual >= limit
		}
		r.Checks = append(r.Checks, Check{Metric: metric, Actual: actual, Limit: limit, Min: min, Passed: passed})
		r.Compliant = r.Compliant && passed
	}

	if t.Availability != nil {
		add("availability", avg.Availability, *t.Availability, true)
	}
	if t.MaxBreaks != nil {
		add("max_breaks", avg.Breaks, float64(*t.MaxBreaks), false)
	}
	if t.MaxBreakTime != nil {
		add("max_break_time", avg.MaxBreakTime, *t.MaxBreakTime, false)
	}
	if t.TotalBreakTime != nil {
		add("total_break_time", avg.TotalBreakTime, *t.TotalBreakTime, false)
	}
	if t.AverageRepairTime != nil {
		add("average_repair_time", avg.AverageRepairTime, *t.AverageRepairTime, false)
	}
	if t.MaxCostPerYear != nil {
		add("max_cost_per_year", avg.CostPerYear, *t.MaxCostPerYear, false)
	}
	return r
}

// IsCompliant reports whether every supplied threshold holds.
func (t Thresholds) IsCompliant(avg sim.Averages) bool {
	return t.Check(avg).Compliant
}

// Validate rejects thresholds that no averaged metric can meet meaningfully.
func (t Thresholds) Validate() error {
	if t.Availability != nil && (*t.Availability < 0 || *t.Availability > 1) {
		return fmt.Errorf("%w: sla %q: availability threshold must be in [0, 1], got %v", sim.ErrInvalidConfig, t.Name, *t.Availability)
	}
	if t.MaxBreaks != nil && *t.MaxBreaks < 0 {
		return fmt.Errorf("%w: sla %q: max_breaks must be non-negative, got %d", sim.ErrInvalidConfig, t.Name, *t.MaxBreaks)
	}
	for _, f := range []struct {
		name  string
		value *float64
	}{
		{"max_break_time", t.MaxBreakTime},
		{"total_break_time", t.TotalBreakTime},
		{"average_repair_time", t.AverageRepairTime},
		{"max_cost_per_year", t.MaxCostPerYear},
	} {
		if f.value != nil && *f.value < 0 {
			return fmt.Errorf("%w: sla %q: %s must be non-negative, got %v", sim.ErrInvalidConfig, t.Name, f.name, *f.value)
		}
	}
	return nil
}

func float(v float64) *float64 { return &v }
func count(v int) *int         { return &v }

// Budget, Standard and Premium are the built-in SLA tiers.
var (
	Budget = Thresholds{
		Name:           "Budget",
		Availability:   float(0.90),
		MaxBreaks:      count(500),
		MaxBreakTime:   float(100),
		TotalBreakTime: float(500),
	}
	Standard = Thresholds{
		Name:           "Standard",
		Availability:   float(0.95),
		MaxBreaks:      count(20),
		MaxBreakTime:   float(50),
		TotalBreakTime: float(50),
	}
	Premium = Thresholds{
		Name:           "Premium",
		Availability:   float(0.975),
		MaxBreaks:      count(10),
		MaxBreakTime:   float(25),
		TotalBreakTime: float(25),
	}
)

// Tiers returns the built-in tiers from least to most demanding.
func Tiers() []Thresholds {
	return []Thresholds{Budget, Standard, Premium}
}
