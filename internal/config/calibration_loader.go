package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"astrometers/internal/domain"
)

// calibrationDoc is the on-disk YAML shape of the calibration table (§6).
type calibrationDoc struct {
	Version string                     `yaml:"version"`
	Meters  map[string]meterCalibDoc   `yaml:"meters"`
}

type meterCalibDoc struct {
	DTIPercentiles map[string]float64 `yaml:"dti_percentiles"`
	HQSPercentiles map[string]float64 `yaml:"hqs_percentiles"`
}

// LoadCalibrationTable reads the versioned calibration document at path and
// validates it (monotonic percentiles, §9) before returning it.
func LoadCalibrationTable(path string) (*domain.CalibrationTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading calibration table %s: %w", path, err)
	}

	var doc calibrationDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing calibration table %s: %w", path, err)
	}
	if doc.Version == "" {
		return nil, fmt.Errorf("calibration table %s: missing version", path)
	}

	meters := make(map[string]domain.MeterCalibration, len(doc.Meters))
	for name, m := range doc.Meters {
		dti, err := buildPercentileTable(name, "dti_percentiles", m.DTIPercentiles)
		if err != nil {
			return nil, err
		}
		hqs, err := buildPercentileTable(name, "hqs_percentiles", m.HQSPercentiles)
		if err != nil {
			return nil, err
		}
		meters[name] = domain.MeterCalibration{DTIPercentiles: dti, HQSPercentiles: hqs}
	}

	table := &domain.CalibrationTable{Version: doc.Version, Meters: meters}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func buildPercentileTable(meterName, field string, raw map[string]float64) (domain.PercentileTable, error) {
	table := make(domain.PercentileTable, len(domain.PercentileKeys))
	for _, key := range domain.PercentileKeys {
		v, ok := raw[string(key)]
		if !ok {
			return nil, fmt.Errorf("meter %s: %s missing node %q", meterName, field, key)
		}
		table[key] = v
	}
	return table, nil
}

// ValidateMeterSetMatchesCalibration reports whether every configured meter
// has a calibration entry and vice versa (§7 CALIBRATION_STALE).
func ValidateMeterSetMatchesCalibration(configs map[string]domain.MeterConfig, table *domain.CalibrationTable) error {
	var missing, extra []string
	for name := range configs {
		if _, ok := table.Meters[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range table.Meters {
		if name == domain.OverallIntensityMeterName || name == domain.OverallHarmonyMeterName {
			continue
		}
		if _, ok := configs[name]; !ok {
			extra = append(extra, name)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return fmt.Errorf("meter/calibration mismatch: missing=%v extra=%v", missing, extra)
}
