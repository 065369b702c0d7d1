package queryhandlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds() {
		parsed, err := ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	parsed, err := ParseKind(" Hour_Weekday ")
	require.NoError(t, err)
	assert.Equal(t, KindHourWeekday, parsed)

	_, err = ParseKind("pie_of_the_day")
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	assert.Len(t, kinds, len(kindNames))
	assert.Equal(t, KindHourly, kinds[0])
	assert.Equal(t, KindSummary, kinds[len(kinds)-1])
	assert.Equal(t, "kind(0)", Kind(0).String())
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 0.0, Percentage(3, 0))
	assert.InDelta(t, 25.0, Percentage(1, 4), 1e-9)
}

func TestOptionsWithDefaults(t *testing.T) {
	assert.Equal(t, DefaultOptions(), Options{}.WithDefaults())

	options := Options{Seed: 7, ScatterSampleSize: 10}.WithDefaults()
	assert.Equal(t, int64(7), options.Seed)
	assert.Equal(t, 10, options.ScatterSampleSize)
	assert.Equal(t, 5000, options.DensitySampleSize)
	assert.Equal(t, 50, options.HistogramBins)
}
