package httpapi

import (
	"time"

	"astrometers/internal/meters"
)

func aspectDTO(c meters.AspectContribution) AspectDTO {
	return AspectDTO{
		Transit:         c.Aspect.Transit.Planet.String(),
		Natal:           c.Aspect.Natal.Planet.String(),
		AspectType:      c.Aspect.Type.String(),
		OrbDegrees:      c.Aspect.AbsOrb,
		Direction:       c.Aspect.State.String(),
		ContributionDTI: c.DTI,
	}
}

func aspectDTOs(cs []meters.AspectContribution) []AspectDTO {
	out := make([]AspectDTO, len(cs))
	for i, c := range cs {
		out[i] = aspectDTO(c)
	}
	return out
}

func trendDTO(t meters.Trend) TrendDTO {
	return TrendDTO{
		Previous:   t.Previous,
		Delta:      t.Delta,
		Direction:  string(t.Direction),
		ChangeRate: string(t.ChangeRate),
	}
}

func scalarTrendsDTO(t *meters.ScalarTrends) *ScalarTrendsDTO {
	if t == nil {
		return nil
	}
	return &ScalarTrendsDTO{
		Intensity: trendDTO(t.Intensity),
		Harmony:   trendDTO(t.Harmony),
		Unified:   trendDTO(t.Unified),
	}
}

func meterReadingDTO(r meters.MeterReading) MeterReadingDTO {
	return MeterReadingDTO{
		Name:  r.Name,
		Group: string(r.Group),
		Scores: ScoresDTO{
			UnifiedScore: r.Unified,
			Harmony:      r.Harmony,
			Intensity:    r.Intensity,
		},
		State: StateDTO{
			Label:   r.StateLabel,
			Quality: string(r.Quality),
		},
		Raw:        RawDTO{DTI: r.DTI, HQS: r.HQS},
		TopAspects: aspectDTOs(r.TopAspects),
		Trend:      scalarTrendsDTO(r.Trend),
	}
}

func groupReadingDTO(r meters.GroupReading) GroupReadingDTO {
	return GroupReadingDTO{
		Name:    string(r.Name),
		Members: r.Members,
		Scores: ScoresDTO{
			UnifiedScore: r.Unified,
			Harmony:      r.Harmony,
			Intensity:    r.Intensity,
		},
		State: StateDTO{
			Label:   r.StateLabel,
			Quality: string(r.Quality),
		},
		Trend: scalarTrendsDTO(r.Trend),
	}
}

func allMetersReadingDTO(r meters.AllMetersReading) AllMetersReadingDTO {
	meterDTOs := make(map[string]MeterReadingDTO, len(r.Meters))
	for name, m := range r.Meters {
		meterDTOs[name] = meterReadingDTO(m)
	}
	groupDTOs := make(map[string]GroupReadingDTO, len(r.Groups))
	for name, g := range r.Groups {
		groupDTOs[string(name)] = groupReadingDTO(g)
	}
	return AllMetersReadingDTO{
		Date:             r.Date.UTC().Format(time.RFC3339),
		Meters:           meterDTOs,
		Groups:           groupDTOs,
		OverallIntensity: meterReadingDTO(r.OverallIntensity),
		OverallHarmony:   meterReadingDTO(r.OverallHarmony),
		AspectCount:      r.AspectCount,
		TopAspects:       aspectDTOs(r.TopAspects),
		OverallQuality:   string(r.OverallQuality),
	}
}
