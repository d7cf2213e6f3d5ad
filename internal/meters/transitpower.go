package meters

import "astrometers/internal/domain"

const (
	directionModExact      = 1.5
	directionModApplying   = 1.3
	directionModSeparating = 0.7
)

func directionMod(state AspectState) float64 {
	switch state {
	case Exact:
		return directionModExact
	case Applying:
		return directionModApplying
	default:
		return directionModSeparating
	}
}

// stationMod implements the station curve: 1.8 at exact station, decaying
// linearly to 1.2 at 5 days, 1.0 from 5 days on (§4.1, §4.4).
func stationMod(daysFromStation float64) float64 {
	switch {
	case daysFromStation <= 0:
		return 1.8
	case daysFromStation >= 5:
		return 1.0
	default:
		return 1.8 - (0.6/5.0)*daysFromStation
	}
}

// transitWeight scales Pi by the transiting body's class: outer planets move
// slowest and weigh heaviest, the Moon moves fastest and weighs lightest
// (§4.4).
func transitWeight(p domain.Planet) float64 {
	switch {
	case p.IsOuter():
		return 1.5
	case p.IsSocial():
		return 1.2
	case p == domain.Moon:
		return 0.8
	default:
		return 1.0
	}
}

// TransitPower computes Pi for an active aspect, before any meter-specific
// retrograde modifier is applied (§4.4).
func TransitPower(a Aspect) float64 {
	orbFactor := 0.0
	if a.MaxOrb > 0 {
		orbFactor = 1 - a.AbsOrb/a.MaxOrb
		if orbFactor < 0 {
			orbFactor = 0
		}
	}
	return a.Type.BaseIntensity() * orbFactor * directionMod(a.State) *
		stationMod(a.Transit.DaysFromStation) * transitWeight(a.Transit.Planet)
}
