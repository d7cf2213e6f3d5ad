package meters

import "astrometers/internal/domain"

// AspectState is the three-valued applying/exact/separating classification
// of an active aspect (§4.2).
type AspectState int

const (
	Applying AspectState = iota
	Exact
	Separating
)

func (s AspectState) String() string {
	switch s {
	case Exact:
		return "exact"
	case Separating:
		return "separating"
	default:
		return "applying"
	}
}

// exactThreshold is the deviation, in degrees, below which an aspect is
// reported as exact rather than applying (§4.2).
const exactThreshold = 0.5

// Aspect is one active natal x transit aspect found by the detector (§4.2, §3).
type Aspect struct {
	Transit   domain.BodyPlacement
	Natal     domain.BodyPlacement
	Type      domain.AspectType
	SignedOrb float64 // exact angle minus actual separation
	AbsOrb    float64
	MaxOrb    float64
	State     AspectState
}

// DetectAspects finds every active natal x transit aspect between the two
// charts (§4.2). Every (transit, natal) pair is considered, including a
// planet aspecting itself; a 0-deg conjunction to self is an ordinary,
// valid result when transit and natal share a longitude.
func DetectAspects(natal, transit domain.Chart) []Aspect {
	var found []Aspect
	for _, t := range transit.Bodies {
		for _, n := range natal.Bodies {
			if a, ok := bestAspect(t, n); ok {
				found = append(found, a)
			}
		}
	}
	return found
}

// bestAspect finds the tightest active aspect type for one (transit, natal)
// pair, applying the §4.2 tie-break: smallest deviation wins; on an exact
// tie, the higher base-intensity aspect wins (AspectTypes is already ordered
// by descending base intensity, so the first match at a given deviation is
// kept).
func bestAspect(t, n domain.BodyPlacement) (Aspect, bool) {
	sep := domain.AngularSeparation(t.Longitude, n.Longitude)
	luminaryInvolved := t.Planet.IsLuminary() || n.Planet.IsLuminary()

	var best domain.AspectType
	var bestDev float64
	have := false
	for _, at := range domain.AspectTypes {
		dev := absFloat(sep - at.ExactAngle())
		maxOrb := domain.MaxOrb(at, t.Planet, luminaryInvolved)
		if dev > maxOrb {
			continue
		}
		if !have || dev < bestDev {
			best, bestDev, have = at, dev, true
		}
	}
	if !have {
		return Aspect{}, false
	}

	return Aspect{
		Transit:   t,
		Natal:     n,
		Type:      best,
		SignedOrb: best.ExactAngle() - sep,
		AbsOrb:    bestDev,
		MaxOrb:    domain.MaxOrb(best, t.Planet, luminaryInvolved),
		State:     classifyState(t, n, best, bestDev),
	}, true
}

// classifyState projects tomorrow's separation from today's daily motion to
// decide whether the aspect is tightening (applying) or widening (separating)
// (§4.2). The natal body is fixed; only the transiting body moves.
func classifyState(t, n domain.BodyPlacement, a domain.AspectType, devToday float64) AspectState {
	if devToday <= exactThreshold {
		return Exact
	}
	tomorrowLon := domain.NormalizeAngle(t.Longitude + t.DailyMotion)
	tomorrowSep := domain.AngularSeparation(tomorrowLon, n.Longitude)
	devTomorrow := absFloat(tomorrowSep - a.ExactAngle())
	if devTomorrow < devToday {
		return Applying
	}
	return Separating
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
