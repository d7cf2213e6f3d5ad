package meters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astrometers/internal/domain"
	apperrors "astrometers/pkg/errors"
)

func flatTable(mid float64) domain.PercentileTable {
	return domain.PercentileTable{
		domain.P01: 0, domain.P05: mid * 0.1, domain.P10: mid * 0.2, domain.P25: mid * 0.4,
		domain.P50: mid, domain.P75: mid * 1.5, domain.P90: mid * 2, domain.P95: mid * 2.5, domain.P99: mid * 3,
	}
}

func signedTable(mid float64) domain.PercentileTable {
	return domain.PercentileTable{
		domain.P01: -mid * 3, domain.P05: -mid * 2, domain.P10: -mid * 1.5, domain.P25: -mid * 0.5,
		domain.P50: 0, domain.P75: mid * 0.5, domain.P90: mid * 1.5, domain.P95: mid * 2, domain.P99: mid * 3,
	}
}

func testChart(planet domain.Planet, longitude float64, house int) domain.Chart {
	return domain.Chart{
		Bodies: map[domain.Planet]domain.BodyPlacement{
			planet: domain.NewBodyPlacement(planet, longitude, house, 1.0, false, 10),
		},
		ChartRuler: domain.Mars,
		Exact:      true,
	}
}

func testCalibration() *domain.CalibrationTable {
	return &domain.CalibrationTable{
		Version: "test",
		Meters: map[string]domain.MeterCalibration{
			"love":                          {DTIPercentiles: flatTable(20), HQSPercentiles: signedTable(10)},
			domain.OverallIntensityMeterName: {DTIPercentiles: flatTable(20), HQSPercentiles: signedTable(10)},
			domain.OverallHarmonyMeterName:   {DTIPercentiles: flatTable(20), HQSPercentiles: signedTable(10)},
		},
	}
}

func testConfigs() map[string]domain.MeterConfig {
	var grid domain.StateLabelGrid
	for i := range grid {
		for j := range grid[i] {
			grid[i][j] = "state"
		}
	}
	return map[string]domain.MeterConfig{
		"love": {
			Name:         "love",
			Group:        domain.GroupEmotions,
			NatalPlanets: map[domain.Planet]bool{domain.Venus: true},
			StateLabels:  grid,
		},
	}
}

func TestComputeMeterUnknownMeter(t *testing.T) {
	natal := testChart(domain.Venus, 100, 5)
	transit := testChart(domain.Jupiter, 100, 1)
	_, err := ComputeMeter("not_a_meter", natal, transit, time.Now(), testCalibration(), testConfigs(), DefaultSensitivity)
	require.Error(t, err)
	assert.True(t, apperrors.IsMeterError(err))
}

func TestComputeMeterActiveAspect(t *testing.T) {
	natal := testChart(domain.Venus, 100, 5)
	transit := testChart(domain.Jupiter, 100, 1)
	date := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)

	reading, err := ComputeMeter("love", natal, transit, date, testCalibration(), testConfigs(), DefaultSensitivity)
	require.NoError(t, err)
	assert.Equal(t, "love", reading.Name)
	assert.Greater(t, reading.Intensity, 0.0)
	assert.Len(t, reading.TopAspects, 1)
}

func TestComputeMeterNoActiveAspectsIsQuiet(t *testing.T) {
	natal := testChart(domain.Venus, 100, 5)
	transit := testChart(domain.Jupiter, 55, 1) // 45 deg from Venus at 100: outside every aspect's orb
	date := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)

	reading, err := ComputeMeter("love", natal, transit, date, testCalibration(), testConfigs(), DefaultSensitivity)
	require.NoError(t, err)
	assert.Equal(t, QualityQuiet, reading.Quality)
	assert.Equal(t, 50.0, reading.Harmony)
}

func TestComputeAllMetersBuildsGroupsAndOverall(t *testing.T) {
	natal := testChart(domain.Venus, 100, 5)
	transit := testChart(domain.Jupiter, 100, 1)
	date := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)

	result, err := ComputeAllMeters(natal, transit, date, testCalibration(), testConfigs(), DefaultSensitivity)
	require.NoError(t, err)
	assert.Contains(t, result.Meters, "love")
	assert.Contains(t, result.Groups, domain.GroupEmotions)
	assert.Greater(t, result.AspectCount, 0)
}

func TestComputeAllMetersStaleCalibration(t *testing.T) {
	natal := testChart(domain.Venus, 100, 5)
	transit := testChart(domain.Jupiter, 100, 1)
	date := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)

	incomplete := &domain.CalibrationTable{Version: "test", Meters: map[string]domain.MeterCalibration{}}
	_, err := ComputeAllMeters(natal, transit, date, incomplete, testConfigs(), DefaultSensitivity)
	require.Error(t, err)
}

func TestComputeAllMetersInvalidChart(t *testing.T) {
	bad := domain.Chart{Bodies: map[domain.Planet]domain.BodyPlacement{
		domain.Venus: {Planet: domain.Venus, Longitude: 400, House: 5},
	}}
	transit := testChart(domain.Jupiter, 100, 1)
	_, err := ComputeAllMeters(bad, transit, time.Now(), testCalibration(), testConfigs(), DefaultSensitivity)
	require.Error(t, err)
}

func TestComputeTrendsNilYesterdayLeavesReadingsUntouched(t *testing.T) {
	natal := testChart(domain.Venus, 100, 5)
	transit := testChart(domain.Jupiter, 100, 1)
	date := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)

	today, err := ComputeAllMeters(natal, transit, date, testCalibration(), testConfigs(), DefaultSensitivity)
	require.NoError(t, err)

	result := ComputeTrends(today, nil)
	assert.Nil(t, result.Meters["love"].Trend)
}

func TestComputeTrendsAttachesTrendData(t *testing.T) {
	natal := testChart(domain.Venus, 100, 5)
	transitToday := testChart(domain.Jupiter, 100, 1)
	transitYesterday := testChart(domain.Jupiter, 95, 1)
	today, err := ComputeAllMeters(natal, transitToday, time.Now(), testCalibration(), testConfigs(), DefaultSensitivity)
	require.NoError(t, err)
	yesterday, err := ComputeAllMeters(natal, transitYesterday, time.Now(), testCalibration(), testConfigs(), DefaultSensitivity)
	require.NoError(t, err)

	result := ComputeTrends(today, &yesterday)
	require.NotNil(t, result.Meters["love"].Trend)
	require.NotNil(t, result.OverallIntensity.Trend)
}

// TestAggregateGroupDerivesStateFromGroupCell reproduces spec.md's S5
// scenario: a Mind group whose three members already carry normalized
// intensities (80, 60, 70) and harmonies (70, 50, 60). The group's state must
// come from the group-level (Moderate, Mixed) cell, not from any member's
// own state.
func TestAggregateGroupDerivesStateFromGroupCell(t *testing.T) {
	members := []MeterReading{
		{Name: "mental_clarity", Intensity: 80, Harmony: 70},
		{Name: "focus", Intensity: 60, Harmony: 50},
		{Name: "communication", Intensity: 70, Harmony: 60},
	}

	intensity, harmony, unified := AggregateGroup(members)
	assert.InDelta(t, 70, intensity, 0.001)
	assert.InDelta(t, 60, harmony, 0.001)
	assert.InDelta(t, 64.615, unified, 0.001)

	quality := ClassifyQuality(intensity, harmony)
	assert.Equal(t, QualityMixed, quality)

	label := overallStateLabels.Label(domain.IntensityBucketOf(intensity), domain.HarmonyBucketOf(harmony))
	assert.Equal(t, "Mixed currents", label)

	group := GroupReading{
		Name:       domain.GroupMind,
		Members:    []string{"mental_clarity", "focus", "communication"},
		Intensity:  intensity,
		Harmony:    harmony,
		Unified:    unified,
		Quality:    quality,
		StateLabel: label,
	}
	assert.Equal(t, "Mixed currents", group.StateLabel)
}
