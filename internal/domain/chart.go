package domain

import "time"

// BodyPlacement is one planet's position within a chart (§3).
type BodyPlacement struct {
	Planet       Planet
	Longitude    float64 // ecliptic longitude in degrees, [0,360)
	Sign         Sign
	SignDegree   float64 // degree within Sign, [0,30)
	House        int     // 1..12
	DailyMotion  float64 // degrees/day; negative means retrograde
	AtStation    bool
	DaysFromStation float64
}

// IsRetrograde reports whether the body's daily motion is negative.
func (b BodyPlacement) IsRetrograde() bool { return b.DailyMotion < 0 }

// NewBodyPlacement derives Sign/SignDegree from Longitude and fills the rest.
func NewBodyPlacement(p Planet, longitude float64, house int, dailyMotion float64, atStation bool, daysFromStation float64) BodyPlacement {
	lon := NormalizeAngle(longitude)
	return BodyPlacement{
		Planet:          p,
		Longitude:       lon,
		Sign:            SignFromLongitude(lon),
		SignDegree:      DegreeInSign(lon),
		House:           house,
		DailyMotion:     dailyMotion,
		AtStation:       atStation,
		DaysFromStation: daysFromStation,
	}
}

// Angle is one of the four chart angles (Ascendant/IC/Descendant/MC).
type Angle struct {
	Longitude float64
	Sign      Sign
}

// ChartAngles bundles the four chart angles.
type ChartAngles struct {
	Ascendant  Angle
	IC         Angle
	Descendant Angle
	Midheaven  Angle
}

// HouseCusp is one house's cusp longitude and traditional ruler.
type HouseCusp struct {
	Number int
	Cusp   float64
	Ruler  Planet
}

// Chart is an immutable natal or transit chart value (§3).
//
// Bodies is keyed by Planet for O(1) lookup; Houses is indexed 0..11 for
// house numbers 1..12.
type Chart struct {
	Bodies      map[Planet]BodyPlacement
	Houses      [12]HouseCusp
	Angles      ChartAngles
	ChartRuler  Planet
	Exact       bool // true iff birth time and location were known
	Timestamp   time.Time
}

// Body returns the placement for a planet and whether it is present.
func (c Chart) Body(p Planet) (BodyPlacement, bool) {
	b, ok := c.Bodies[p]
	return b, ok
}

// maxOrbTable implements the §4.2 max-orb rule: aspect type x
// (luminary-involved | outer-transit | otherwise).
type orbRow struct {
	luminary float64
	outer    float64
	otherwise float64
}

var maxOrbTable = map[AspectType]orbRow{
	Conjunction: {luminary: 10, outer: 6, otherwise: 8},
	Opposition:  {luminary: 10, outer: 6, otherwise: 8},
	Square:      {luminary: 8, outer: 5, otherwise: 7},
	Trine:       {luminary: 8, outer: 5, otherwise: 7},
	Sextile:     {luminary: 6, outer: 4, otherwise: 5},
}

// MaxOrb returns the maximum orb, in degrees, for an aspect type given the
// transiting planet and whether either body involved is a luminary (§4.2).
func MaxOrb(a AspectType, transit Planet, luminaryInvolved bool) float64 {
	row := maxOrbTable[a]
	switch {
	case luminaryInvolved:
		return row.luminary
	case transit.IsOuter():
		return row.outer
	default:
		return row.otherwise
	}
}
