package distanceaccumulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceAccumulator(t *testing.T) {
	accumulator := NewDistanceAccumulator("member")
	accumulator.UpdateAccumulator(2, 10)
	accumulator.UpdateAccumulator(4, 20)

	avgDistance, err := accumulator.GetAverageDistance()
	require.NoError(t, err)
	assert.InDelta(t, 3.0, avgDistance, 1e-9)

	avgDuration, err := accumulator.GetAverageDuration()
	require.NoError(t, err)
	assert.InDelta(t, 15.0, avgDuration, 1e-9)

	speed, err := accumulator.GetAverageSpeed()
	require.NoError(t, err)
	assert.InDelta(t, 12.0, speed, 1e-9)
}

func TestDistanceAccumulatorEmpty(t *testing.T) {
	accumulator := NewDistanceAccumulator("casual")

	_, err := accumulator.GetAverageDistance()
	assert.ErrorIs(t, err, ErrEmptyAccumulator)

	_, err = accumulator.GetAverageSpeed()
	assert.ErrorIs(t, err, ErrEmptyAccumulator)
}

func TestDistanceAccumulatorMerge(t *testing.T) {
	first := NewDistanceAccumulator("member")
	first.UpdateAccumulator(1, 5)
	second := NewDistanceAccumulator("member")
	second.UpdateAccumulator(3, 15)

	merged, err := first.Merge(second)
	require.NoError(t, err)
	assert.Equal(t, 2, merged.Counter)
	assert.InDelta(t, 4.0, merged.TotalDistance, 1e-9)
	assert.InDelta(t, 20.0, merged.TotalDuration, 1e-9)

	_, err = first.Merge(NewDistanceAccumulator("casual"))
	assert.Error(t, err)
}
