package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	require.Equal(t, 0.0, Mean(nil))
	require.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	require.Equal(t, -0.5, Mean([]float64{-2, 1}))
}

func TestVarianceAndStdDev(t *testing.T) {
	require.Equal(t, 0.0, Variance(nil))
	require.Equal(t, 0.0, Variance([]float64{4, 4, 4}))

	// Population variance of {1, 3} is 1.
	require.InDelta(t, 1.0, Variance([]float64{1, 3}), 1e-9)
	require.InDelta(t, 1.0, StdDev([]float64{1, 3}), 1e-9)
}

func TestConfidenceInterval95(t *testing.T) {
	low, high := ConfidenceInterval95([]float64{3})
	require.Equal(t, 3.0, low)
	require.Equal(t, 3.0, high)

	low, high = ConfidenceInterval95([]float64{1, 2, 3, 4, 5})
	require.Less(t, low, 3.0)
	require.Greater(t, high, 3.0)
	require.InDelta(t, 3.0, (low+high)/2, 1e-9)
}

func TestScoresToFloat(t *testing.T) {
	require.Equal(t, []float64{4, -2, 0}, ScoresToFloat([]int{4, -2, 0}))
	require.Empty(t, ScoresToFloat(nil))
}
