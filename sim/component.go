package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// Component is one physical or logical unit that fails and gets repaired.
// It carries no clock: every draw is an independent exponential sample,
// which is valid because the exponential distribution is memoryless.
type Component struct {
	Name           string  // identification only; unique within a System
	FailureRate    float64 // expected failures per hour; <= 0 means never fails
	MeanRepairTime float64 // mean of the exponential repair duration in hours
	RepairCost     float64 // flat cost charged per failure event
}

// NewComponent creates a validated Component.
func NewComponent(name string, failureRate, meanRepairTime, repairCost float64) (*Component, error) {
	c := &Component{
		Name:           name,
		FailureRate:    failureRate,
		MeanRepairTime: meanRepairTime,
		RepairCost:     repairCost,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the numeric invariants of the component.
// A zero, negative or NaN failure rate is valid and means the component never fails.
func (c *Component) Validate() error {
	if math.IsInf(c.FailureRate, 1) {
		return fmt.Errorf("%w: component %q: failure rate must be finite", ErrInvalidConfig, c.Name)
	}
	if !(c.MeanRepairTime > 0) || math.IsInf(c.MeanRepairTime, 0) {
		return fmt.Errorf("%w: component %q: mean repair time must be a positive finite number, got %v",
			ErrInvalidConfig, c.Name, c.MeanRepairTime)
	}
	if !(c.RepairCost >= 0) || math.IsInf(c.RepairCost, 0) {
		return fmt.Errorf("%w: component %q: repair cost must be a non-negative finite number, got %v",
			ErrInvalidConfig, c.Name, c.RepairCost)
	}
	return nil
}

// NeverFails reports whether the component has an infinite time to failure.
func (c *Component) NeverFails() bool {
	return !(c.FailureRate > 0)
}

// FailureDuration draws the time until the next failure.
// Returns +Inf when the component never fails.
func (c *Component) FailureDuration(rng *rand.Rand) float64 {
	if c.NeverFails() {
		return math.Inf(1)
	}
	return rng.ExpFloat64() / c.FailureRate
}

// RepairDuration draws the time needed to repair the component.
func (c *Component) RepairDuration(rng *rand.Rand) (float64, error) {
	if !(c.MeanRepairTime > 0) {
		return 0, fmt.Errorf("%w: component %q: mean repair time must be positive, got %v",
			ErrInvalidConfig, c.Name, c.MeanRepairTime)
	}
	return rng.ExpFloat64() * c.MeanRepairTime, nil
}
