package meters

import (
	"astrometers/internal/domain"
)

// NormalizeDTI interpolates a raw DTI value within its percentile table into
// the 0-100 intensity scale (§4.7).
func NormalizeDTI(dti float64, table domain.PercentileTable) float64 {
	return interpolatePercentile(dti, table)
}

// NormalizeHQS interpolates a signed raw HQS value within its percentile
// table into the 0-100 harmony scale; the table's p50 node is expected near
// zero, which is what anchors harmony near 50 for a neutral day (§4.7).
func NormalizeHQS(hqs float64, table domain.PercentileTable) float64 {
	return interpolatePercentile(hqs, table)
}

// interpolatePercentile locates the two adjacent nodes in table bracketing
// v, interpolates linearly in value-space to a continuous percentile rank in
// [1,99], then maps that rank onto [0,100]. Values at or beyond p99 are
// capped at a flat 100 by softCeiling, so exceptional days never break the
// 0-100 contract while staying monotonic (§4.7).
func interpolatePercentile(v float64, table domain.PercentileTable) float64 {
	p01 := table[domain.P01]
	p99 := table[domain.P99]

	if v <= p01 {
		return 0
	}
	if v >= p99 {
		return softCeiling(v, p99, table[domain.P50])
	}

	keys := domain.PercentileKeys
	for i := 0; i < len(keys)-1; i++ {
		lo, hi := table[keys[i]], table[keys[i+1]]
		if v < lo || v > hi {
			continue
		}
		loRank, hiRank := keys[i].Rank(), keys[i+1].Rank()
		frac := 0.0
		if hi > lo {
			frac = (v - lo) / (hi - lo)
		}
		rank := loRank + frac*(hiRank-loRank)
		return domain.Clamp((rank-1)/98*100, 0, 100)
	}
	return 100
}

// softCeiling keeps outliers at or beyond p99 pinned to 100. Since the
// ordinary interpolation already maps p99 to exactly 100, any monotonic
// non-decreasing continuation for v > p99 has no room below the ceiling:
// it must stay at 100. The exceptional-day compression the spec allows for
// therefore degenerates to a flat cap here, which already satisfies the
// "stay <= 100 and monotonic" contract.
func softCeiling(v, p99, p50 float64) float64 {
	return 100
}
