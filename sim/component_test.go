package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent_FailureDuration_NeverFailsIsInfinite(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, rate := range []float64{0, -1, math.NaN()} {
		c := &Component{Name: "c", FailureRate: rate, MeanRepairTime: 1}
		assert.True(t, c.NeverFails(), "rate %v", rate)
		assert.True(t, math.IsInf(c.FailureDuration(rng), 1), "rate %v must give +Inf", rate)
	}
}

func TestComponent_FailureDuration_MeanMatchesRate(t *testing.T) {
	// GIVEN a component failing 0.01 times per hour
	rng := rand.New(rand.NewSource(42))
	c, err := NewComponent("c", 0.01, 5, 0)
	require.NoError(t, err)

	// WHEN many failure durations are drawn
	n := 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		d := c.FailureDuration(rng)
		if d < 0 {
			t.Fatalf("draw %d: negative duration %v", i, d)
		}
		sum += d
	}

	// THEN the sample mean approaches 1/rate
	mean := sum / float64(n)
	if math.Abs(mean-100)/100 > 0.05 {
		t.Errorf("failure duration mean = %.2f, want ≈ 100 (within 5%%)", mean)
	}
}

func TestComponent_RepairDuration_MeanMatchesParam(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c, err := NewComponent("c", 1, 5, 0)
	require.NoError(t, err)

	n := 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		d, err := c.RepairDuration(rng)
		require.NoError(t, err)
		sum += d
	}
	mean := sum / float64(n)
	if math.Abs(mean-5)/5 > 0.05 {
		t.Errorf("repair duration mean = %.3f, want ≈ 5 (within 5%%)", mean)
	}
}

func TestComponent_RepairDuration_NonPositiveMeanIsInvalid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, mean := range []float64{0, -2, math.NaN()} {
		c := &Component{Name: "broken", FailureRate: 1, MeanRepairTime: mean}
		_, err := c.RepairDuration(rng)
		assert.True(t, errors.Is(err, ErrInvalidConfig), "mean %v: got %v", mean, err)
	}
}

func TestComponent_DrawsAreIndependentOfHistory(t *testing.T) {
	// GIVEN two sources with the same seed
	a := rand.New(rand.NewSource(99))
	b := rand.New(rand.NewSource(99))
	c, _ := NewComponent("c", 0.5, 2, 0)

	// WHEN one component draws from both sources in the same order
	// THEN the draws match: the component holds no state between calls
	for i := 0; i < 10; i++ {
		assert.Equal(t, c.FailureDuration(a), c.FailureDuration(b))
	}
}

func TestNewComponent_Validation(t *testing.T) {
	tests := []struct {
		name       string
		rate       float64
		repair     float64
		cost       float64
		wantErr    bool
		errContain string
	}{
		{"valid", 0.01, 5, 100, false, ""},
		{"zero rate never fails", 0, 5, 0, false, ""},
		{"infinite rate", math.Inf(1), 5, 0, true, "failure rate"},
		{"zero repair time", 0.01, 0, 0, true, "mean repair time"},
		{"negative repair time", 0.01, -1, 0, true, "mean repair time"},
		{"infinite repair time", 0.01, math.Inf(1), 0, true, "mean repair time"},
		{"negative cost", 0.01, 5, -1, true, "repair cost"},
		{"NaN cost", 0.01, 5, math.NaN(), true, "repair cost"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewComponent("srv", tc.rate, tc.repair, tc.cost)
			if !tc.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "srv", c.Name)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
			assert.Contains(t, err.Error(), tc.errContain)
			assert.Contains(t, err.Error(), `"srv"`)
		})
	}
}
