package domain

import "sort"

// PercentileKey identifies one of the nine calibration percentile nodes (§3).
type PercentileKey string

const (
	P01 PercentileKey = "p01"
	P05 PercentileKey = "p05"
	P10 PercentileKey = "p10"
	P25 PercentileKey = "p25"
	P50 PercentileKey = "p50"
	P75 PercentileKey = "p75"
	P90 PercentileKey = "p90"
	P95 PercentileKey = "p95"
	P99 PercentileKey = "p99"
)

// PercentileKeys lists the nine nodes in ascending order; the normalizer
// (C8) must interpolate across all of them, not just the endpoints.
var PercentileKeys = []PercentileKey{P01, P05, P10, P25, P50, P75, P90, P95, P99}

// percentileRank is the position, in [1,99], each key represents.
var percentileRank = map[PercentileKey]float64{
	P01: 1, P05: 5, P10: 10, P25: 25, P50: 50, P75: 75, P90: 90, P95: 95, P99: 99,
}

// Rank returns the percentile position, in [1,99], this key represents.
func (k PercentileKey) Rank() float64 { return percentileRank[k] }

// PercentileTable is a single DTI or HQS sub-table: percentile key -> raw
// value observed at that percentile across the backtest (§3).
type PercentileTable map[PercentileKey]float64

// IsMonotonic reports whether the table's values are non-decreasing by
// percentile key, the invariant required by §3 and enforced by §4.11's
// output contract.
func (t PercentileTable) IsMonotonic() bool {
	prev := -1.0
	first := true
	for _, k := range PercentileKeys {
		v, ok := t[k]
		if !ok {
			return false
		}
		if !first && v < prev {
			return false
		}
		prev, first = v, false
	}
	return true
}

// MeterCalibration bundles the DTI and HQS percentile tables for one meter.
type MeterCalibration struct {
	DTIPercentiles PercentileTable
	HQSPercentiles PercentileTable
}

// CalibrationTable is the process-wide, versioned percentile lookup the
// normalizer (C8) depends on (§3, §4.7, §4.11).
type CalibrationTable struct {
	Version string
	Meters  map[string]MeterCalibration
}

// MeterNames returns the sorted set of meter names present in the table,
// used to compare against the configured meter set (§4.11's output contract).
func (t CalibrationTable) MeterNames() []string {
	names := make([]string, 0, len(t.Meters))
	for name := range t.Meters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the per-meter monotonicity invariant across the whole
// table. It does not check the table against a meter-config set; that
// cross-check is CalibrationStale, handled by the caller (§7).
func (t CalibrationTable) Validate() error {
	for name, mc := range t.Meters {
		if !mc.DTIPercentiles.IsMonotonic() {
			return &NonMonotonicCalibrationError{Meter: name, Table: "dti_percentiles"}
		}
		if !mc.HQSPercentiles.IsMonotonic() {
			return &NonMonotonicCalibrationError{Meter: name, Table: "hqs_percentiles"}
		}
	}
	return nil
}

// NonMonotonicCalibrationError reports a calibration sub-table whose values
// are not non-decreasing by percentile.
type NonMonotonicCalibrationError struct {
	Meter string
	Table string
}

func (e *NonMonotonicCalibrationError) Error() string {
	return "calibration: " + e.Meter + "." + e.Table + " is not monotonic non-decreasing"
}
