package meters

// changeRateOf buckets a delta's magnitude per §3's thresholds.
func changeRateOf(delta float64) ChangeRate {
	abs := delta
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < 2:
		return RateStable
	case abs < 5.5:
		return RateSlow
	case abs < 10.5:
		return RateModerate
	default:
		return RateRapid
	}
}

// harmonyLikeTrend applies the harmony/unified direction rule: positive
// delta improves, negative worsens (§3).
func harmonyLikeTrend(today, yesterday float64) Trend {
	delta := today - yesterday
	dir := DirectionStable
	switch {
	case delta > 0:
		dir = DirectionImproving
	case delta < 0:
		dir = DirectionWorsening
	}
	return Trend{Previous: yesterday, Delta: delta, Direction: dir, ChangeRate: changeRateOf(delta)}
}

// intensityTrend applies the intensity direction rule: positive delta
// increases, negative decreases (§3).
func intensityTrend(today, yesterday float64) Trend {
	delta := today - yesterday
	dir := DirectionStable
	switch {
	case delta > 0:
		dir = DirectionIncreasing
	case delta < 0:
		dir = DirectionDecreasing
	}
	return Trend{Previous: yesterday, Delta: delta, Direction: dir, ChangeRate: changeRateOf(delta)}
}

// scalarTrends computes all three trend vectors for one meter or group
// reading against yesterday's counterpart (§4.10).
func scalarTrends(today, yesterday MeterReading) ScalarTrends {
	return ScalarTrends{
		Intensity: intensityTrend(today.Intensity, yesterday.Intensity),
		Harmony:   harmonyLikeTrend(today.Harmony, yesterday.Harmony),
		Unified:   harmonyLikeTrend(today.Unified, yesterday.Unified),
	}
}

// groupScalarTrends computes all three trend vectors for a group reading;
// group trends are computed on the group-level scalars directly, never
// averaged from member meters' trends (§4.10).
func groupScalarTrends(today, yesterday GroupReading) ScalarTrends {
	return ScalarTrends{
		Intensity: intensityTrend(today.Intensity, yesterday.Intensity),
		Harmony:   harmonyLikeTrend(today.Harmony, yesterday.Harmony),
		Unified:   harmonyLikeTrend(today.Unified, yesterday.Unified),
	}
}
