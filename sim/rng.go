package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results, whatever the worker count.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// SubsystemTrial returns the subsystem name for trial N.
func SubsystemTrial(trial int) string {
	return fmt.Sprintf("trial_%d", trial)
}

// TrialSeed derives the seed of one trial's private random source.
//
// Derivation formula: masterSeed XOR fnv1a64("trial_<N>")
func (k SimulationKey) TrialSeed(trial int) int64 {
	return int64(k) ^ fnv1a64(SubsystemTrial(trial))
}

// TrialRNG returns a freshly seeded random source for the trial.
// Each call returns a new *rand.Rand; callers own it exclusively.
func (k SimulationKey) TrialRNG(trial int) *rand.Rand {
	return rand.New(rand.NewSource(k.TrialSeed(trial)))
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
