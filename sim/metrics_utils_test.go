package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMean(t *testing.T) {
	assert.Equal(t, 0.0, CalculateMean([]float64{}))
	assert.Equal(t, 2.0, CalculateMean([]int{1, 2, 3}))
	assert.InDelta(t, 2.5, CalculateMean([]float64{2, 3}), 1e-12)
}

// TestDistribution_FromValues_ComputesCorrectStats verifies summary fields.
func TestDistribution_FromValues_ComputesCorrectStats(t *testing.T) {
	d := NewDistribution([]float64{5, 1, 3, 2, 4})

	assert.Equal(t, 5, d.Count)
	assert.Equal(t, 3.0, d.Mean)
	assert.Equal(t, 3.0, d.P50)
	assert.Equal(t, 5.0, d.P99)
	assert.Equal(t, 1.0, d.Min)
	assert.Equal(t, 5.0, d.Max)
	assert.InDelta(t, math.Sqrt(2.5), d.StdDev, 1e-12)
	assert.InDelta(t, 1.96*math.Sqrt(2.5)/math.Sqrt(5), d.CI95, 1e-12)
}

// TestDistribution_EmptyValues_ReturnsZero verifies edge case.
func TestDistribution_EmptyValues_ReturnsZero(t *testing.T) {
	assert.Equal(t, Distribution{}, NewDistribution(nil))
}

func TestDistribution_SingleValue_NoSpread(t *testing.T) {
	d := NewDistribution([]float64{7})
	assert.Equal(t, 7.0, d.Mean)
	assert.Equal(t, 0.0, d.StdDev)
	assert.Equal(t, 0.0, d.CI95)
}

func TestDistribution_DoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	NewDistribution(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestHistogram_CountsEveryValue(t *testing.T) {
	bins := Histogram([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10}, 5)

	require.Len(t, bins, 5)
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 10, total)
	assert.Equal(t, 0.0, bins[0].Lower)
	assert.Equal(t, 10.0, bins[4].Upper)
	assert.Equal(t, 2, bins[0].Count) // 0, 1
	assert.Equal(t, 2, bins[4].Count) // 8, 10
}

func TestHistogram_EdgeCases(t *testing.T) {
	assert.Nil(t, Histogram(nil, 3))
	assert.Nil(t, Histogram([]float64{1}, 0))

	bins := Histogram([]float64{0.5, 0.5, 0.5}, 10)
	require.Len(t, bins, 1)
	assert.Equal(t, 3, bins[0].Count)
}
