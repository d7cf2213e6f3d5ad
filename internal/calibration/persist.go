package calibration

import (
	"os"

	"gopkg.in/yaml.v3"

	"astrometers/internal/domain"
)

type calibrationYAML struct {
	Version string                          `yaml:"version"`
	Meters  map[string]meterCalibrationYAML `yaml:"meters"`
}

type meterCalibrationYAML struct {
	DTIPercentiles map[string]float64 `yaml:"dti_percentiles"`
	HQSPercentiles map[string]float64 `yaml:"hqs_percentiles"`
}

// SaveYAML writes table to path in the §6 calibration-document shape.
func SaveYAML(table *domain.CalibrationTable, path string) error {
	doc := calibrationYAML{Version: table.Version, Meters: make(map[string]meterCalibrationYAML, len(table.Meters))}
	for name, mc := range table.Meters {
		doc.Meters[name] = meterCalibrationYAML{
			DTIPercentiles: percentileMapOf(mc.DTIPercentiles),
			HQSPercentiles: percentileMapOf(mc.HQSPercentiles),
		}
	}

	raw, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

func percentileMapOf(t domain.PercentileTable) map[string]float64 {
	m := make(map[string]float64, len(domain.PercentileKeys))
	for _, key := range domain.PercentileKeys {
		m[string(key)] = t[key]
	}
	return m
}
