package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/yevsky/NiDUC/sim/trace"
)

// ErrInvalidConfig is wrapped by every validation failure of components,
// systems and run parameters.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrRandomSource reports a random draw that cannot be a valid duration.
var ErrRandomSource = errors.New("random source failure")

// HoursPerYear scales per-trial costs to an annual figure.
const HoursPerYear = 8760.0

// RunConfig groups the parameters of one multi-trial simulation run.
type RunConfig struct {
	Duration   float64          // length of every trial in hours (must be > 0)
	Trials     int              // number of independent trials (must be > 0)
	Seed       int64            // master seed; trial seeds derive from it
	Workers    int              // 0 or 1 = sequential, >1 = bounded parallel trials
	TraceLevel trace.TraceLevel // trace recording for the first trial ("" = none)
}

// Validate rejects run parameters that cannot produce a meaningful estimate.
func (c RunConfig) Validate() error {
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("%w: trial duration must be a positive finite number, got %v", ErrInvalidConfig, c.Duration)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("%w: number of trials must be positive, got %d", ErrInvalidConfig, c.Trials)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalidConfig, c.TraceLevel)
	}
	return nil
}
