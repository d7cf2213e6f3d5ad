package domain

// MeterGroup is one of the five recognized thematic groupings (§3).
type MeterGroup string

const (
	GroupMind      MeterGroup = "mind"
	GroupEmotions  MeterGroup = "emotions"
	GroupBody      MeterGroup = "body"
	GroupSpirit    MeterGroup = "spirit"
	GroupGrowth    MeterGroup = "growth"
)

// Groups lists the five recognized groups in a stable order.
var Groups = []MeterGroup{GroupMind, GroupEmotions, GroupBody, GroupSpirit, GroupGrowth}

// IntensityBucket is one of the five intensity buckets used by the state
// lookup grid (§4.8).
type IntensityBucket int

const (
	IntensityQuiet IntensityBucket = iota
	IntensityMild
	IntensityModerate
	IntensityHigh
	IntensityExtreme
)

// IntensityBucketOf classifies a normalized intensity (0-100) into a bucket.
func IntensityBucketOf(intensity float64) IntensityBucket {
	switch {
	case intensity <= 30:
		return IntensityQuiet
	case intensity <= 50:
		return IntensityMild
	case intensity <= 70:
		return IntensityModerate
	case intensity <= 85:
		return IntensityHigh
	default:
		return IntensityExtreme
	}
}

// HarmonyBucket is one of the three harmony buckets used by the state
// lookup grid (§4.8).
type HarmonyBucket int

const (
	HarmonyChallenging HarmonyBucket = iota
	HarmonyMixed
	HarmonyHarmonious
)

// HarmonyBucketOf classifies a normalized harmony (0-100) into a bucket.
func HarmonyBucketOf(harmony float64) HarmonyBucket {
	switch {
	case harmony < 30:
		return HarmonyChallenging
	case harmony <= 70:
		return HarmonyMixed
	default:
		return HarmonyHarmonious
	}
}

// StateLabelGrid is the meter's 5x3 lookup of (intensity bucket, harmony
// bucket) -> short state label (§4.8, §6).
type StateLabelGrid [5][3]string

// Label returns the configured label for a bucket pair.
func (g StateLabelGrid) Label(i IntensityBucket, h HarmonyBucket) string {
	return g[i][h]
}

// MeterConfig declares one meter's filter, modifiers and state labels (§3, §6).
type MeterConfig struct {
	Name                 string
	Group                MeterGroup // empty for Overall Intensity/Harmony
	NatalPlanets         map[Planet]bool
	NatalHouses          map[int]bool
	RetrogradeModifiers  map[Planet]float64 // per-transit-planet multiplier on Pi when retrograde
	StateLabels          StateLabelGrid
}

// Includes reports whether an aspect whose natal body has the given planet
// and house should be counted toward this meter (§4.6 step 2).
func (m MeterConfig) Includes(natalPlanet Planet, natalHouse int) bool {
	if m.NatalPlanets[natalPlanet] {
		return true
	}
	return m.NatalHouses[natalHouse]
}

// RetrogradeModifier returns the configured modifier for a transiting planet,
// and whether one is configured at all.
func (m MeterConfig) RetrogradeModifier(transit Planet) (float64, bool) {
	v, ok := m.RetrogradeModifiers[transit]
	return v, ok
}

// OverallIntensityMeterName and OverallHarmonyMeterName are the two
// unfiltered aggregate "meters" computed from all active aspects (§4.6, §3).
const (
	OverallIntensityMeterName = "overall_intensity"
	OverallHarmonyMeterName   = "overall_harmony"
)

// CanonicalMeterNames lists the seventeen individual meters recognized by
// the reference configuration (§9: the meter set is data-driven; this list
// documents the canonical panel rather than hard-coding a count elsewhere).
var CanonicalMeterNames = []string{
	"mental_clarity", "focus", "communication",
	"love", "emotional_security", "mood",
	"vitality", "physical_drive", "health_sensitivity",
	"intuition", "purpose", "transformation",
	"growth_opportunity", "learning", "social_expansion",
	"luck", "discipline",
}

// GroupMembers maps each of the five groups to its canonical member meters.
var GroupMembers = map[MeterGroup][]string{
	GroupMind:     {"mental_clarity", "focus", "communication"},
	GroupEmotions: {"love", "emotional_security", "mood"},
	GroupBody:     {"vitality", "physical_drive", "health_sensitivity"},
	GroupSpirit:   {"intuition", "purpose", "transformation"},
	GroupGrowth:   {"growth_opportunity", "learning", "social_expansion", "luck", "discipline"},
}
