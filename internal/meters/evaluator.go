package meters

import (
	"sort"

	"astrometers/internal/domain"
)

// EvaluateMeter filters the active aspects for one meter (or, with filter
// false, takes the whole unfiltered set for an overall aggregate), computes
// each contribution's Wi/Pi/Qi, and sums raw DTI and boosted HQS (§4.6).
//
// Contributions are sorted into a stable order before summing so that
// floating-point totals are independent of aspect-enumeration order (§6).
func EvaluateMeter(cfg domain.MeterConfig, aspects []Aspect, chartRuler domain.Planet, sensitivity float64, filter bool) (dti, hqs float64, contributions []AspectContribution) {
	for _, a := range aspects {
		if filter && !cfg.Includes(a.Natal.Planet, a.Natal.House) {
			continue
		}

		w := Weightage(a.Natal, chartRuler, sensitivity)
		p := TransitPower(a)
		if mod, ok := cfg.RetrogradeModifier(a.Transit.Planet); ok && a.Transit.IsRetrograde() {
			p *= mod
		}
		q := AspectQuality(a)

		contributions = append(contributions, AspectContribution{
			Aspect: a, W: w, P: p, Q: q, DTI: w * p, HQS: w * p * q,
		})
	}

	sortContributions(contributions)

	for _, c := range contributions {
		dti += c.DTI
		hqs += harmonicBoost(c)
	}
	return dti, hqs, contributions
}

// harmonicBoost applies the §4.6 post-processing boost to one contribution's
// raw hqs. DTI is never boosted.
func harmonicBoost(c AspectContribution) float64 {
	raw := c.HQS
	multiplier := 1.0
	switch {
	case c.Aspect.Transit.Planet.IsBenefic() && c.Q > 0:
		multiplier = 2.0
	case c.Aspect.Transit.Planet.IsMalefic() && c.Q < 0:
		multiplier = 0.5
	}
	return raw * multiplier
}

// sortContributions orders contributions deterministically by transit then
// natal planet, independent of map iteration order upstream.
func sortContributions(cs []AspectContribution) {
	sort.SliceStable(cs, func(i, j int) bool {
		ti, tj := cs[i].Aspect.Transit.Planet, cs[j].Aspect.Transit.Planet
		if ti != tj {
			return ti < tj
		}
		return cs[i].Aspect.Natal.Planet < cs[j].Aspect.Natal.Planet
	})
}
