package calibration

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"astrometers/internal/domain"
)

func TestPercentileValueSingleElement(t *testing.T) {
	assert.Equal(t, 5.0, percentileValue([]float64{5}, 50))
}

func TestPercentileValueInterpolates(t *testing.T) {
	sorted := []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	assert.InDelta(t, 50, percentileValue(sorted, 50), 0.001)
	assert.InDelta(t, 0, percentileValue(sorted, 1), 0.001)
	assert.InDelta(t, 100, percentileValue(sorted, 99), 0.001)
}

func TestPercentilesOfEmptyYieldsZeroTable(t *testing.T) {
	table := percentilesOf(nil)
	for _, key := range domain.PercentileKeys {
		assert.Equal(t, 0.0, table[key])
	}
}

func TestPercentilesOfIsMonotonic(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6, 10, 4, 7, 13, 8, 2, 19}
	table := percentilesOf(values)
	assert.True(t, table.IsMonotonic())
}

func TestRandomTimeBetweenStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		got := randomTimeBetween(rng, from, to)
		assert.False(t, got.Before(from))
		assert.True(t, got.Before(to))
	}
}

func TestRandomTimeBetweenDegenerateSpanReturnsFrom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	same := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, same, randomTimeBetween(rng, same, same))
}

func TestVersionStampFormat(t *testing.T) {
	v := versionStamp()
	assert.True(t, strings.HasPrefix(v, "v"))
	assert.Len(t, v, len("v20060102-150405"))
}
