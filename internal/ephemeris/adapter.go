package ephemeris

import (
	"time"

	"astrometers/internal/domain"
)

// HouseSystem selects the cusp-division algorithm used by ComputeChart (§4.1).
type HouseSystem string

const (
	Placidus      HouseSystem = "Placidus"
	Koch          HouseSystem = "Koch"
	Porphyrius    HouseSystem = "Porphyrius"
	Regiomontanus HouseSystem = "Regiomontanus"
	Campanus      HouseSystem = "Campanus"
	Equal         HouseSystem = "Equal"
	WholeSign     HouseSystem = "Whole Sign"
)

// Request describes the inputs to ComputeChart. UTC == nil means the
// caller has no birth time; per §4.1 the adapter then falls back to
// 12:00 UTC / (0,0) and marks the resulting chart Exact == false.
type Request struct {
	UTC         *time.Time
	Latitude    float64
	Longitude   float64
	HouseSystem HouseSystem
}

// Adapter is the narrow interface the core consumes around an external
// ephemeris library (§4.1). The core never imports swephgo directly; only
// the SwissEphemeris implementation in this package does.
type Adapter interface {
	// ComputeChart returns the chart for the given request. On failure it
	// returns an EphemerisUnavailableError.
	ComputeChart(req Request) (domain.Chart, error)

	// DailyMotion returns a planet's daily motion in degrees/day on date.
	DailyMotion(p domain.Planet, date time.Time) (float64, error)
}

// EphemerisUnavailableError wraps a failure from the upstream astronomy
// library, per §7's EphemerisUnavailable error kind.
type EphemerisUnavailableError struct {
	Cause error
}

func (e *EphemerisUnavailableError) Error() string {
	return "ephemeris unavailable: " + e.Cause.Error()
}

func (e *EphemerisUnavailableError) Unwrap() error { return e.Cause }
