package meters

import "astrometers/internal/domain"

// ClassifyQuality derives the unified quality label from normalized
// intensity/harmony, in the listed rule order (§4.8).
func ClassifyQuality(intensity, harmony float64) Quality {
	switch {
	case harmony >= 70 && intensity >= 40:
		return QualityHarmonious
	case harmony < 30 && intensity >= 40:
		return QualityChallenging
	case intensity < 40:
		return QualityQuiet
	default:
		return QualityMixed
	}
}

// overallStateLabels is the 5x3 state grid used for the two overall
// aggregates, which have no per-meter config of their own.
var overallStateLabels = domain.StateLabelGrid{
	{"Still tension", "Calm skies", "Gentle ease"},
	{"Minor friction", "Steady day", "Mild favor"},
	{"Active strain", "Mixed currents", "Good flow"},
	{"Heavy pressure", "Charged mixed", "Strong support"},
	{"Peak turbulence", "Intense flux", "Peak harmony"},
}
