package httpapi

import (
	"fmt"
	"time"

	"astrometers/internal/domain"
	"astrometers/internal/ephemeris"
)

// resolveChart turns a ChartInputRequest into a Chart via the ephemeris
// adapter. An empty UTCDateTime means birth time is unknown: the adapter
// falls back to noon UTC, (0,0), and the Solar House scheme (§4.1).
func resolveChart(adapter ephemeris.Adapter, req ChartInputRequest) (domain.Chart, error) {
	hs, err := parseHouseSystem(req.HouseSystem)
	if err != nil {
		return domain.Chart{}, err
	}

	if req.UTCDateTime == "" {
		return adapter.ComputeChart(ephemeris.Request{HouseSystem: hs})
	}

	t, err := parseTimestamp(req.UTCDateTime)
	if err != nil {
		return domain.Chart{}, err
	}
	return adapter.ComputeChart(ephemeris.Request{
		UTC:         &t,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		HouseSystem: hs,
	})
}

func parseHouseSystem(name string) (ephemeris.HouseSystem, error) {
	if name == "" {
		return ephemeris.Placidus, nil
	}
	switch ephemeris.HouseSystem(name) {
	case ephemeris.Placidus, ephemeris.Koch, ephemeris.Porphyrius,
		ephemeris.Regiomontanus, ephemeris.Campanus, ephemeris.Equal, ephemeris.WholeSign:
		return ephemeris.HouseSystem(name), nil
	default:
		return "", fmt.Errorf("unknown house system %q", name)
	}
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q, want RFC3339 or YYYY-MM-DD", s)
}
