package meters

// HarmonicMean computes unified_score = 2*I*H / (I+H), defined as 0 when
// I+H is 0 (§4.9).
func HarmonicMean(intensity, harmony float64) float64 {
	if intensity+harmony == 0 {
		return 0
	}
	return 2 * intensity * harmony / (intensity + harmony)
}

// AggregateGroup computes a group's intensity/harmony/unified as the
// arithmetic mean of its member meters' already-normalized fields; values
// are never re-normalized (§4.9). An empty member set (no configured meter
// in the group) yields the neutral reading.
func AggregateGroup(members []MeterReading) (intensity, harmony, unified float64) {
	if len(members) == 0 {
		return 0, 50, 0
	}
	for _, m := range members {
		intensity += m.Intensity
		harmony += m.Harmony
	}
	n := float64(len(members))
	intensity /= n
	harmony /= n
	return intensity, harmony, HarmonicMean(intensity, harmony)
}
