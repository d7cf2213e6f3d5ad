package meters

import (
	"sort"
	"time"

	"astrometers/internal/domain"
	apperrors "astrometers/pkg/errors"
)

// DefaultSensitivity is used by callers that do not customize sensitivity.
const DefaultSensitivity = 1.0

// TopKAspects is the number of top contributions kept per reading (§4.12).
const TopKAspects = 5

// ComputeMeter computes a single named meter's reading for one date (§4.12).
func ComputeMeter(name string, natal, transit domain.Chart, date time.Time, calibration *domain.CalibrationTable, configs map[string]domain.MeterConfig, sensitivity float64) (MeterReading, error) {
	if err := validateChart(natal); err != nil {
		return MeterReading{}, err
	}
	if err := validateChart(transit); err != nil {
		return MeterReading{}, err
	}

	cfg, ok := configs[name]
	if !ok {
		return MeterReading{}, apperrors.UnknownMeter(name)
	}
	calib, ok := calibration.Meters[name]
	if !ok {
		return MeterReading{}, apperrors.CalibrationMissing(name)
	}

	aspects := DetectAspects(natal, transit)
	return evaluateReading(name, cfg.Group, aspects, cfg, true, natal.ChartRuler, sensitivity, calib, date), nil
}

// ComputeAllMeters computes every configured meter exactly once, plus the
// five group aggregates and the two overall aggregates (§4.12). Either every
// meter succeeds or the call fails entirely; no partially filled reading is
// returned.
func ComputeAllMeters(natal, transit domain.Chart, date time.Time, calibration *domain.CalibrationTable, configs map[string]domain.MeterConfig, sensitivity float64) (AllMetersReading, error) {
	if err := validateChart(natal); err != nil {
		return AllMetersReading{}, err
	}
	if err := validateChart(transit); err != nil {
		return AllMetersReading{}, err
	}
	if err := staleCalibrationErr(configs, calibration); err != nil {
		return AllMetersReading{}, err
	}

	aspects := DetectAspects(natal, transit)

	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	sort.Strings(names)

	readings := make(map[string]MeterReading, len(names))
	for _, name := range names {
		cfg := configs[name]
		calib := calibration.Meters[name]
		readings[name] = evaluateReading(name, cfg.Group, aspects, cfg, true, natal.ChartRuler, sensitivity, calib, date)
	}

	groups := make(map[domain.MeterGroup]GroupReading, len(domain.Groups))
	for _, g := range domain.Groups {
		memberNames := domain.GroupMembers[g]
		members := make([]MeterReading, 0, len(memberNames))
		for _, mn := range memberNames {
			if mr, ok := readings[mn]; ok {
				members = append(members, mr)
			}
		}
		intensity, harmony, unified := AggregateGroup(members)
		groups[g] = GroupReading{
			Name:       g,
			Members:    memberNames,
			Intensity:  intensity,
			Harmony:    harmony,
			Unified:    unified,
			Quality:    ClassifyQuality(intensity, harmony),
			StateLabel: overallStateLabels.Label(domain.IntensityBucketOf(intensity), domain.HarmonyBucketOf(harmony)),
		}
	}

	dtiAll, hqsAll, contributionsAll := EvaluateMeter(domain.MeterConfig{}, aspects, natal.ChartRuler, sensitivity, false)
	overallIntensity := composeReading(domain.OverallIntensityMeterName, "", dtiAll, hqsAll, contributionsAll, calibration.Meters[domain.OverallIntensityMeterName], overallStateLabels, date)
	overallHarmony := composeReading(domain.OverallHarmonyMeterName, "", dtiAll, hqsAll, contributionsAll, calibration.Meters[domain.OverallHarmonyMeterName], overallStateLabels, date)

	return AllMetersReading{
		Date:             date,
		Meters:           readings,
		Groups:           groups,
		OverallIntensity: overallIntensity,
		OverallHarmony:   overallHarmony,
		AspectCount:      len(aspects),
		TopAspects:       topAspects(contributionsAll, TopKAspects),
		OverallQuality:   ClassifyQuality(overallIntensity.Intensity, overallHarmony.Harmony),
	}, nil
}

// ComputeTrends is a pure post-processing pass over two previously-produced
// readings (§4.12). If yesterday is nil, today is returned unchanged (every
// Trend stays nil); a meter or group absent from yesterday likewise keeps a
// nil trend.
func ComputeTrends(today AllMetersReading, yesterday *AllMetersReading) AllMetersReading {
	result := today
	if yesterday == nil {
		return result
	}

	result.Meters = make(map[string]MeterReading, len(today.Meters))
	for name, m := range today.Meters {
		if y, ok := yesterday.Meters[name]; ok {
			trends := scalarTrends(m, y)
			m.Trend = &trends
		}
		result.Meters[name] = m
	}

	result.Groups = make(map[domain.MeterGroup]GroupReading, len(today.Groups))
	for g, gr := range today.Groups {
		if y, ok := yesterday.Groups[g]; ok {
			trends := groupScalarTrends(gr, y)
			gr.Trend = &trends
		}
		result.Groups[g] = gr
	}

	oi := scalarTrends(today.OverallIntensity, yesterday.OverallIntensity)
	result.OverallIntensity = today.OverallIntensity
	result.OverallIntensity.Trend = &oi

	oh := scalarTrends(today.OverallHarmony, yesterday.OverallHarmony)
	result.OverallHarmony = today.OverallHarmony
	result.OverallHarmony.Trend = &oh

	return result
}

// evaluateReading runs the filtered evaluator for one meter and composes
// its reading.
func evaluateReading(name string, group domain.MeterGroup, aspects []Aspect, cfg domain.MeterConfig, filter bool, chartRuler domain.Planet, sensitivity float64, calib domain.MeterCalibration, date time.Time) MeterReading {
	dti, hqs, contributions := EvaluateMeter(cfg, aspects, chartRuler, sensitivity, filter)
	return composeReading(name, group, dti, hqs, contributions, calib, cfg.StateLabels, date)
}

// composeReading normalizes raw (dti, hqs) into the 0-100 scales, derives
// quality and state label, and picks the top-K contributions (§4.7-4.9,
// §4.12). No active aspects is a well-defined edge case, not an error
// (§4.12, §7 NoActiveAspects).
func composeReading(name string, group domain.MeterGroup, dti, hqs float64, contributions []AspectContribution, calib domain.MeterCalibration, labels domain.StateLabelGrid, date time.Time) MeterReading {
	if len(contributions) == 0 {
		return MeterReading{
			Name:       name,
			Group:      group,
			Date:       date,
			Harmony:    50,
			Quality:    QualityQuiet,
			StateLabel: labels.Label(domain.IntensityQuiet, domain.HarmonyMixed),
		}
	}

	intensity := domain.Clamp(NormalizeDTI(dti, calib.DTIPercentiles), 0, 100)
	harmony := domain.Clamp(NormalizeHQS(hqs, calib.HQSPercentiles), 0, 100)

	return MeterReading{
		Name:       name,
		Group:      group,
		Date:       date,
		DTI:        dti,
		HQS:        hqs,
		Intensity:  intensity,
		Harmony:    harmony,
		Unified:    HarmonicMean(intensity, harmony),
		Quality:    ClassifyQuality(intensity, harmony),
		StateLabel: labels.Label(domain.IntensityBucketOf(intensity), domain.HarmonyBucketOf(harmony)),
		TopAspects: topAspects(contributions, TopKAspects),
	}
}

// speedClass ranks a transit planet's "speed" for the top-K tie-break:
// outer planets are slowest and rank first (§4.12).
func speedClass(p domain.Planet) int {
	switch {
	case p.IsOuter():
		return 0
	case p.IsSocial():
		return 1
	case p == domain.Moon:
		return 3
	default:
		return 2 // inner
	}
}

// topAspects selects the K contributions with the largest |dti|, breaking
// ties by transit-planet speed class, then transit planet, then natal
// planet, alphabetically (§4.12).
func topAspects(contributions []AspectContribution, k int) []AspectContribution {
	sorted := make([]AspectContribution, len(contributions))
	copy(sorted, contributions)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := absFloat(sorted[i].DTI), absFloat(sorted[j].DTI)
		if di != dj {
			return di > dj
		}
		si, sj := speedClass(sorted[i].Aspect.Transit.Planet), speedClass(sorted[j].Aspect.Transit.Planet)
		if si != sj {
			return si < sj
		}
		ti, tj := sorted[i].Aspect.Transit.Planet.String(), sorted[j].Aspect.Transit.Planet.String()
		if ti != tj {
			return ti < tj
		}
		return sorted[i].Aspect.Natal.Planet.String() < sorted[j].Aspect.Natal.Planet.String()
	})
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}

// validateChart rejects a chart with an out-of-range longitude or house
// (§7 InvalidChart).
func validateChart(c domain.Chart) error {
	for p, b := range c.Bodies {
		if b.Longitude < 0 || b.Longitude >= 360 {
			return apperrors.InvalidChart(p.String() + " longitude out of [0,360)")
		}
		if b.House < 1 || b.House > 12 {
			return apperrors.InvalidChart(p.String() + " house out of 1..12")
		}
	}
	return nil
}

// staleCalibrationErr refuses to run when the configured meter set and the
// calibration table's meter set disagree by name (§4.11 output contract,
// §7 CalibrationStale).
func staleCalibrationErr(configs map[string]domain.MeterConfig, calib *domain.CalibrationTable) error {
	for name := range configs {
		if _, ok := calib.Meters[name]; !ok {
			return apperrors.CalibrationStale("missing percentiles for meter " + name)
		}
	}
	for _, special := range []string{domain.OverallIntensityMeterName, domain.OverallHarmonyMeterName} {
		if _, ok := calib.Meters[special]; !ok {
			return apperrors.CalibrationStale("missing percentiles for " + special)
		}
	}
	for name := range calib.Meters {
		if name == domain.OverallIntensityMeterName || name == domain.OverallHarmonyMeterName {
			continue
		}
		if _, ok := configs[name]; !ok {
			return apperrors.CalibrationStale("percentiles for unconfigured meter " + name)
		}
	}
	return nil
}
