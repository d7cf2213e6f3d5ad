package calibration

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"astrometers/internal/domain"
	"astrometers/internal/ephemeris"
	"astrometers/internal/logging"
	"astrometers/internal/meters"
)

// SampleChart is one synthetic natal chart used as a calibration work unit.
type SampleChart struct {
	Natal domain.Chart
}

// Options configures one calibration run (§4.11).
type Options struct {
	SampleCharts int
	DateStart    time.Time
	DateEnd      time.Time
	Workers      int
}

// rawSamples accumulates raw DTI/HQS observations for one meter.
type rawSamples struct {
	dti []float64
	hqs []float64
}

// chartResult is one worker's locally-accumulated samples for an entire
// chart's date range, merged into the process-wide table after the fact.
type chartResult struct {
	samples map[string]*rawSamples
}

// Run generates N synthetic natal charts, sweeps each across [DateStart,
// DateEnd] computing unnormalized meter readings, and derives the resulting
// percentile table (§4.11). Work is distributed across Options.Workers
// goroutines, one chart per task; each worker accumulates into its own local
// buffers, merged only after every worker has finished (§5).
func Run(ctx context.Context, adapter ephemeris.Adapter, configs map[string]domain.MeterConfig, opts Options, logger *logging.Logger) (*domain.CalibrationTable, error) {
	charts, err := generateSampleCharts(adapter, opts)
	if err != nil {
		return nil, err
	}

	meterNames := make([]string, 0, len(configs)+2)
	for name := range configs {
		meterNames = append(meterNames, name)
	}
	meterNames = append(meterNames, domain.OverallIntensityMeterName, domain.OverallHarmonyMeterName)

	tasks := make(chan domain.Chart, len(charts))
	for _, c := range charts {
		tasks <- c.Natal
	}
	close(tasks)

	results := make(chan chartResult, opts.Workers*2)
	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go runWorker(ctx, adapter, configs, opts, tasks, results, &wg)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	merged := make(map[string]*rawSamples, len(meterNames))
	for _, name := range meterNames {
		merged[name] = &rawSamples{}
	}

	processed := 0
	for r := range results {
		for name, s := range r.samples {
			m := merged[name]
			m.dti = append(m.dti, s.dti...)
			m.hqs = append(m.hqs, s.hqs...)
		}
		processed++
		if logger != nil && processed%50 == 0 {
			logger.CalibrationLogger().
				Int("charts_done", processed).
				Int("charts_total", len(charts)).
				Msg("calibration progress")
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table := &domain.CalibrationTable{
		Version: versionStamp(),
		Meters:  make(map[string]domain.MeterCalibration, len(meterNames)),
	}
	for _, name := range meterNames {
		s := merged[name]
		table.Meters[name] = domain.MeterCalibration{
			DTIPercentiles: percentilesOf(s.dti),
			HQSPercentiles: percentilesOf(s.hqs),
		}
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func runWorker(ctx context.Context, adapter ephemeris.Adapter, configs map[string]domain.MeterConfig, opts Options, tasks <-chan domain.Chart, results chan<- chartResult, wg *sync.WaitGroup) {
	defer wg.Done()
	for natal := range tasks {
		select {
		case <-ctx.Done():
			return
		default:
		}
		results <- processChart(natal, adapter, configs, opts)
	}
}

// processChart sweeps one natal chart across the date range, accumulating
// raw per-meter DTI/HQS samples into a buffer local to this task.
func processChart(natal domain.Chart, adapter ephemeris.Adapter, configs map[string]domain.MeterConfig, opts Options) chartResult {
	local := make(map[string]*rawSamples, len(configs)+2)
	for name := range configs {
		local[name] = &rawSamples{}
	}
	local[domain.OverallIntensityMeterName] = &rawSamples{}
	local[domain.OverallHarmonyMeterName] = &rawSamples{}

	for d := opts.DateStart; !d.After(opts.DateEnd); d = d.AddDate(0, 0, 1) {
		day := d
		transit, err := adapter.ComputeChart(ephemeris.Request{UTC: &day})
		if err != nil {
			continue
		}
		aspects := meters.DetectAspects(natal, transit)

		for name, cfg := range configs {
			dti, hqs, _ := meters.EvaluateMeter(cfg, aspects, natal.ChartRuler, meters.DefaultSensitivity, true)
			s := local[name]
			s.dti = append(s.dti, dti)
			s.hqs = append(s.hqs, hqs)
		}

		dtiAll, hqsAll, _ := meters.EvaluateMeter(domain.MeterConfig{}, aspects, natal.ChartRuler, meters.DefaultSensitivity, false)
		local[domain.OverallIntensityMeterName].dti = append(local[domain.OverallIntensityMeterName].dti, dtiAll)
		local[domain.OverallIntensityMeterName].hqs = append(local[domain.OverallIntensityMeterName].hqs, hqsAll)
		local[domain.OverallHarmonyMeterName].dti = append(local[domain.OverallHarmonyMeterName].dti, dtiAll)
		local[domain.OverallHarmonyMeterName].hqs = append(local[domain.OverallHarmonyMeterName].hqs, hqsAll)
	}
	return chartResult{samples: local}
}

// generateSampleCharts draws N synthetic natal charts over plausible birth
// times and geographic locations (§4.11). The seed is fixed so a calibration
// run is reproducible given the same inputs.
func generateSampleCharts(adapter ephemeris.Adapter, opts Options) ([]SampleChart, error) {
	rng := rand.New(rand.NewSource(20260101))
	charts := make([]SampleChart, 0, opts.SampleCharts)
	earliestBirth := opts.DateStart.AddDate(-90, 0, 0)
	for i := 0; i < opts.SampleCharts; i++ {
		birth := randomTimeBetween(rng, earliestBirth, opts.DateStart)
		lat := rng.Float64()*180 - 90
		lon := rng.Float64()*360 - 180
		chart, err := adapter.ComputeChart(ephemeris.Request{UTC: &birth, Latitude: lat, Longitude: lon})
		if err != nil {
			return nil, err
		}
		charts = append(charts, SampleChart{Natal: chart})
	}
	return charts, nil
}

func randomTimeBetween(rng *rand.Rand, from, to time.Time) time.Time {
	span := to.Sub(from)
	if span <= 0 {
		return from
	}
	return from.Add(time.Duration(rng.Int63n(int64(span))))
}

// percentilesOf derives the nine reference percentiles from a raw sample
// set via linear-interpolated order statistics (§4.11).
func percentilesOf(values []float64) domain.PercentileTable {
	table := make(domain.PercentileTable, len(domain.PercentileKeys))
	if len(values) == 0 {
		for _, key := range domain.PercentileKeys {
			table[key] = 0
		}
		return table
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	for _, key := range domain.PercentileKeys {
		table[key] = percentileValue(sorted, key.Rank())
	}
	return table
}

func percentileValue(sorted []float64, rank float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := rank / 100 * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func versionStamp() string {
	return "v" + time.Now().UTC().Format("20060102-150405")
}
