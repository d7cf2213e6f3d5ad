package meters

import "astrometers/internal/domain"

// AspectQuality computes Qi, the signed polarity of an active aspect (§4.5).
func AspectQuality(a Aspect) float64 {
	switch a.Type {
	case domain.Trine, domain.Sextile:
		return 1.0
	case domain.Square, domain.Opposition:
		return -1.0
	case domain.Conjunction:
		return conjunctionQuality(a.Transit.Planet, a.Natal.Planet)
	default:
		return 0.0
	}
}

// conjunctionQuality applies the dynamic conjunction rule, in listed order,
// first match wins (§4.5).
func conjunctionQuality(t, n domain.Planet) float64 {
	switch {
	case t.IsBenefic() && n.IsBenefic():
		return 0.8
	case t.IsMalefic() && n.IsMalefic():
		return -0.8
	case (t.IsBenefic() && n.IsMalefic()) || (t.IsMalefic() && n.IsBenefic()):
		return 0.2
	case t.IsTransformational() || n.IsTransformational():
		return -0.3
	default:
		return 0.0
	}
}
