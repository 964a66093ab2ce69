// sim/simulator.go
package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/yevsky/NiDUC/sim/trace"
)

// TrialResult holds the metrics of one simulated timeline.
type TrialResult struct {
	Availability      float64 // operational time / trial duration, in [0, 1]
	BreakCount        int     // component failure events
	TotalBreakTime    float64 // sum of system downtime intervals (hours)
	MaxBreakTime      float64 // longest system downtime interval, 0 if none
	RevenueLost       float64 // repair costs + downtime × revenue penalty per hour
	OperationalTime   float64 // hours the system was operational
	DowntimeIntervals int     // number of system downtime intervals
}

// Simulator drives single trials of one System over a fixed duration.
// A Simulator owns its random source and must not be shared between goroutines.
type Simulator struct {
	System   *System
	Duration float64
	Trace    *trace.TrialTrace // optional; nil disables recording

	rng   *rand.Rand
	queue *EventQueue

	lastEventTime   float64
	operationalTime float64
	repairCosts     float64
	breakCount      int
	downStart       float64
	downGroups      []int
	intervals       []float64
	logEvents       bool
}

// NewSimulator creates a Simulator for the given system, trial duration and random source.
func NewSimulator(system *System, duration float64, rng *rand.Rand) *Simulator {
	return &Simulator{
		System:   system,
		Duration: duration,
		rng:      rng,
		queue:    NewEventQueue(2 * system.NumComponents()),
	}
}

// reset prepares per-trial state. The failed set is cleared here so that
// no state leaks from one trial into the next.
func (sim *Simulator) reset() {
	sim.System.Reset()
	sim.queue.Reset()
	sim.lastEventTime = 0
	sim.operationalTime = 0
	sim.repairCosts = 0
	sim.breakCount = 0
	sim.downStart = 0
	sim.downGroups = nil
	sim.intervals = sim.intervals[:0]
	sim.logEvents = logrus.IsLevelEnabled(logrus.TraceLevel)
}

// RunTrial simulates one timeline from 0 to Duration and returns its metrics.
func (sim *Simulator) RunTrial() (TrialResult, error) {
	if !(sim.Duration > 0) || math.IsInf(sim.Duration, 0) {
		return TrialResult{}, fmt.Errorf("%w: trial duration must be a positive finite number, got %v", ErrInvalidConfig, sim.Duration)
	}
	sim.reset()

	for i := 0; i < sim.System.NumComponents(); i++ {
		id := ComponentID(i)
		d, err := checkDuration(sim.System.Component(id).FailureDuration(sim.rng))
		if err != nil {
			return TrialResult{}, err
		}
		if math.IsInf(d, 1) {
			continue
		}
		sim.queue.Schedule(Event{Time: d, Kind: EventFailure, Component: id})
	}

	for {
		ev, ok := sim.queue.PopNext()
		if !ok {
			break
		}
		now := ev.Time
		terminal := false
		if now >= sim.Duration {
			now = sim.Duration
			terminal = true
		}

		wasOperational := sim.System.IsOperational()
		if wasOperational {
			sim.operationalTime += now - sim.lastEventTime
		}
		sim.lastEventTime = now
		if terminal {
			break
		}

		var err error
		switch ev.Kind {
		case EventFailure:
			err = sim.handleFailure(now, ev.Component, wasOperational)
		case EventRepair:
			err = sim.handleRepair(now, ev.Component, wasOperational)
		}
		if err != nil {
			return TrialResult{}, err
		}
	}

	// the final partial interval, up to the trial boundary
	if sim.System.IsOperational() {
		sim.operationalTime += sim.Duration - sim.lastEventTime
	} else {
		sim.closeInterval(sim.Duration, true)
	}

	return sim.result(), nil
}

func (sim *Simulator) handleFailure(now float64, id ComponentID, wasOperational bool) error {
	c := sim.System.Component(id)
	sim.System.MarkFailed(id)
	sim.breakCount++
	sim.repairCosts += c.RepairCost

	operational := sim.System.IsOperational()
	if wasOperational && !operational {
		sim.downStart = now
		if sim.Trace != nil {
			sim.downGroups = sim.System.DownGroups()
		}
	}
	sim.recordEvent(now, EventFailure, c, operational)

	repair, err := c.RepairDuration(sim.rng)
	if err != nil {
		return err
	}
	if repair, err = checkDuration(repair); err != nil {
		return err
	}
	sim.queue.Schedule(Event{Time: now + repair, Kind: EventRepair, Component: id})
	return nil
}

func (sim *Simulator) handleRepair(now float64, id ComponentID, wasOperational bool) error {
	c := sim.System.Component(id)
	sim.System.MarkRepaired(id)

	operational := sim.System.IsOperational()
	if !wasOperational && operational {
		sim.closeInterval(now, false)
	}
	sim.recordEvent(now, EventRepair, c, operational)

	next, err := checkDuration(c.FailureDuration(sim.rng))
	if err != nil {
		return err
	}
	if !math.IsInf(next, 1) {
		sim.queue.Schedule(Event{Time: now + next, Kind: EventFailure, Component: id})
	}
	return nil
}

func (sim *Simulator) closeInterval(end float64, openAtEnd bool) {
	sim.intervals = append(sim.intervals, end-sim.downStart)
	if sim.Trace != nil {
		sim.Trace.RecordInterval(trace.DowntimeRecord{
			Start:      sim.downStart,
			End:        end,
			OpenAtEnd:  openAtEnd,
			DownGroups: sim.downGroups,
		})
	}
}

func (sim *Simulator) recordEvent(now float64, kind EventKind, c *Component, operational bool) {
	if sim.logEvents {
		logrus.Tracef("[t=%.4f] %s of %s, operational=%v", now, kind, c.Name, operational)
	}
	if sim.Trace != nil {
		sim.Trace.RecordEvent(trace.EventRecord{
			Time:        now,
			Kind:        kind.String(),
			Component:   c.Name,
			Operational: operational,
		})
	}
}

func (sim *Simulator) result() TrialResult {
	r := TrialResult{
		Availability:      math.Min(1, math.Max(0, sim.operationalTime/sim.Duration)),
		BreakCount:        sim.breakCount,
		OperationalTime:   sim.operationalTime,
		DowntimeIntervals: len(sim.intervals),
	}
	for _, d := range sim.intervals {
		r.TotalBreakTime += d
		if d > r.MaxBreakTime {
			r.MaxBreakTime = d
		}
	}
	r.RevenueLost = sim.repairCosts + (sim.Duration-sim.operationalTime)*sim.System.RevenuePenaltyPerHour
	return r
}

// checkDuration rejects draws that no exponential sample can produce.
func checkDuration(d float64) (float64, error) {
	if math.IsNaN(d) || d < 0 {
		return 0, fmt.Errorf("%w: drew invalid duration %v", ErrRandomSource, d)
	}
	return d, nil
}
