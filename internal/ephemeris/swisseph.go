package ephemeris

import (
	"fmt"
	"time"

	"astrometers/internal/domain"
	"astrometers/internal/logging"

	"github.com/mshafiee/swephgo"
)

// swephID maps a domain.Planet to its swephgo body constant.
var swephID = map[domain.Planet]int{
	domain.Sun:       0,
	domain.Moon:      1,
	domain.Mercury:   2,
	domain.Venus:     3,
	domain.Mars:      4,
	domain.Jupiter:   5,
	domain.Saturn:    6,
	domain.Uranus:    7,
	domain.Neptune:   8,
	domain.Pluto:     9,
	domain.NorthNode: 10, // mean node
}

// houseSystemCode maps a HouseSystem to the swephgo single-character code.
func houseSystemCode(hs HouseSystem) rune {
	switch hs {
	case Koch:
		return 'K'
	case Porphyrius:
		return 'O'
	case Regiomontanus:
		return 'R'
	case Campanus:
		return 'C'
	case Equal:
		return 'E'
	case WholeSign:
		return 'W'
	default:
		return 'P' // Placidus
	}
}

// stationEpsilon is the per-planet threshold below which a daily motion is
// considered "at station" (§4.1). Venus through Pluto use 0.02 deg/day and
// Mercury a wider 0.05; a zero threshold (Sun, Moon, North Node) disables
// the check.
var stationEpsilon = map[domain.Planet]float64{
	domain.Sun:       0.0, // the Sun never stations
	domain.Moon:      0.0,
	domain.Mercury:   0.05,
	domain.Venus:     0.02,
	domain.Mars:      0.02,
	domain.Jupiter:   0.02,
	domain.Saturn:    0.02,
	domain.Uranus:    0.02,
	domain.Neptune:   0.02,
	domain.Pluto:     0.02,
	domain.NorthNode: 0.0,
}

// SwissEphemeris is the production Adapter, backed by swephgo (§4.1).
type SwissEphemeris struct {
	logger      *logging.Logger
	initialized bool
}

// NewSwissEphemeris initializes the underlying Swiss Ephemeris library.
func NewSwissEphemeris(logger *logging.Logger) (*SwissEphemeris, error) {
	e := &SwissEphemeris{logger: logger}
	swephgo.SetEphePath([]byte(""))

	testJD := swephgo.Julday(2000, 1, 1, 12.0, 1)
	xx := make([]float64, 6)
	serr := make([]byte, 256)
	if result := swephgo.Calc(testJD, 0, 0, xx, serr); result < 0 {
		return nil, &EphemerisUnavailableError{Cause: fmt.Errorf("swiss ephemeris init failed: %s", string(serr))}
	}

	e.initialized = true
	e.logger.Info().Msg("swiss ephemeris initialized")
	return e, nil
}

func (e *SwissEphemeris) julianDay(utc time.Time) float64 {
	hour := float64(utc.Hour()) + float64(utc.Minute())/60.0 + float64(utc.Second())/3600.0
	return swephgo.Julday(utc.Year(), int(utc.Month()), utc.Day(), hour, 1)
}

// calcLongitude returns longitude and daily motion (degrees/day) for a body.
func (e *SwissEphemeris) calcLongitude(jd float64, id int) (longitude, speed float64, err error) {
	xx := make([]float64, 6)
	serr := make([]byte, 256)
	if result := swephgo.Calc(jd, id, 0, xx, serr); result < 0 {
		return 0, 0, &EphemerisUnavailableError{Cause: fmt.Errorf("calc failed for body %d: %s", id, string(serr))}
	}
	return xx[0], xx[3], nil
}

// DailyMotion implements Adapter.
func (e *SwissEphemeris) DailyMotion(p domain.Planet, date time.Time) (float64, error) {
	if !e.initialized {
		return 0, &EphemerisUnavailableError{Cause: fmt.Errorf("ephemeris not initialized")}
	}
	id, ok := swephID[p]
	if !ok {
		return 0, &EphemerisUnavailableError{Cause: fmt.Errorf("unsupported planet %s", p)}
	}
	_, speed, err := e.calcLongitude(e.julianDay(date), id)
	return speed, err
}

// stationState scans a 5-day window around date to find whether the body's
// motion changes sign (a station) and, if so, the days to the nearest one.
func (e *SwissEphemeris) stationState(p domain.Planet, jd, speedToday float64) (atStation bool, daysFromStation float64, err error) {
	id := swephID[p]
	eps := stationEpsilon[p]
	if eps > 0 && absf(speedToday) < eps {
		return true, 0, nil
	}

	best := 999.0
	sign := signOf(speedToday)
	for day := 1; day <= 5; day++ {
		_, s, cerr := e.calcLongitude(jd+float64(day), id)
		if cerr != nil {
			return false, 0, cerr
		}
		if signOf(s) != sign {
			if float64(day) < best {
				best = float64(day)
			}
			break
		}
		_, s, cerr = e.calcLongitude(jd-float64(day), id)
		if cerr != nil {
			return false, 0, cerr
		}
		if signOf(s) != sign {
			if float64(day) < best {
				best = float64(day)
			}
		}
	}
	if best > 5 {
		return false, 5, nil
	}
	return true, best, nil
}

func signOf(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// ComputeChart implements Adapter (§4.1).
func (e *SwissEphemeris) ComputeChart(req Request) (domain.Chart, error) {
	if !e.initialized {
		return domain.Chart{}, &EphemerisUnavailableError{Cause: fmt.Errorf("ephemeris not initialized")}
	}

	exact := req.UTC != nil
	utc := time.Now().UTC()
	lat, lon := req.Latitude, req.Longitude
	if exact {
		utc = *req.UTC
	} else {
		utc = time.Date(utc.Year(), utc.Month(), utc.Day(), 12, 0, 0, 0, time.UTC)
		lat, lon = 0, 0
	}

	jd := e.julianDay(utc)

	var cusps [12]float64
	var ascendant, midheaven float64
	if exact {
		cuspsBuf := make([]float64, 13)
		ascmc := make([]float64, 10)
		hs := req.HouseSystem
		if hs == "" {
			hs = Placidus
		}
		if result := swephgo.Houses(jd, lat, lon, int(houseSystemCode(hs)), cuspsBuf, ascmc); result < 0 {
			return domain.Chart{}, &EphemerisUnavailableError{Cause: fmt.Errorf("house calculation failed")}
		}
		for i := 0; i < 12; i++ {
			cusps[i] = cuspsBuf[i+1]
		}
		ascendant, midheaven = cuspsBuf[1], cuspsBuf[10]
	}

	bodies := make(map[domain.Planet]domain.BodyPlacement, len(domain.Planets))
	sunLongitude := 0.0
	for _, p := range domain.Planets {
		id, ok := swephID[p]
		if !ok {
			continue
		}
		longitude, speed, err := e.calcLongitude(jd, id)
		if err != nil {
			return domain.Chart{}, err
		}
		if p == domain.Sun {
			sunLongitude = longitude
		}

		atStation, daysFromStation, serr := e.stationState(p, jd, speed)
		if serr != nil {
			return domain.Chart{}, serr
		}

		var house int
		if exact {
			house = houseForLongitude(longitude, cusps)
		}
		bodies[p] = domain.NewBodyPlacement(p, longitude, house, speed, atStation, daysFromStation)
	}

	var angles domain.ChartAngles
	var houseCusps [12]domain.HouseCusp
	var chartRuler domain.Planet

	if exact {
		for i := 0; i < 12; i++ {
			sign := domain.SignFromLongitude(cusps[i])
			houseCusps[i] = domain.HouseCusp{Number: i + 1, Cusp: cusps[i], Ruler: sign.Ruler()}
		}
		ascSign := domain.SignFromLongitude(ascendant)
		chartRuler = ascSign.Ruler()
		angles = domain.ChartAngles{
			Ascendant:  domain.Angle{Longitude: ascendant, Sign: ascSign},
			Midheaven:  domain.Angle{Longitude: midheaven, Sign: domain.SignFromLongitude(midheaven)},
			Descendant: domain.Angle{Longitude: domain.NormalizeAngle(ascendant + 180), Sign: domain.SignFromLongitude(domain.NormalizeAngle(ascendant + 180))},
			IC:         domain.Angle{Longitude: domain.NormalizeAngle(midheaven + 180), Sign: domain.SignFromLongitude(domain.NormalizeAngle(midheaven + 180))},
		}
	} else {
		// Solar house scheme: the Sun's sign is house 1, the next sign house 2, etc.
		sunSign := domain.SignFromLongitude(sunLongitude)
		for i := 0; i < 12; i++ {
			sign := domain.Sign((int(sunSign) + i) % 12)
			cusp := float64(sign) * 30.0
			houseCusps[i] = domain.HouseCusp{Number: i + 1, Cusp: cusp, Ruler: sign.Ruler()}
		}
		chartRuler = sunSign.Ruler()
		for p, b := range bodies {
			houseIdx := (int(b.Sign) - int(sunSign) + 12) % 12
			bodies[p] = domain.NewBodyPlacement(p, b.Longitude, houseIdx+1, b.DailyMotion, b.AtStation, b.DaysFromStation)
		}
		ascSign := sunSign
		angles = domain.ChartAngles{
			Ascendant: domain.Angle{Longitude: float64(ascSign) * 30.0, Sign: ascSign},
		}
	}

	return domain.Chart{
		Bodies:     bodies,
		Houses:     houseCusps,
		Angles:     angles,
		ChartRuler: chartRuler,
		Exact:      exact,
		Timestamp:  utc,
	}, nil
}

// houseForLongitude finds which of the twelve cusps a longitude falls within.
func houseForLongitude(longitude float64, cusps [12]float64) int {
	lon := domain.NormalizeAngle(longitude)
	for i := 0; i < 12; i++ {
		start := domain.NormalizeAngle(cusps[i])
		end := domain.NormalizeAngle(cusps[(i+1)%12])
		if start > end {
			if lon >= start || lon < end {
				return i + 1
			}
		} else if lon >= start && lon < end {
			return i + 1
		}
	}
	return 1
}
