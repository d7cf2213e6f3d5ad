package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"astrometers/internal/domain"
)

// meterConfigDoc is the on-disk YAML shape of one meter config document (§6).
type meterConfigDoc struct {
	Name                string             `yaml:"name"`
	Group               string             `yaml:"group,omitempty"`
	NatalPlanets        []string           `yaml:"natal_planets"`
	NatalHouses         []int              `yaml:"natal_houses"`
	RetrogradeModifiers map[string]float64 `yaml:"retrograde_modifiers,omitempty"`
	StateLabels         map[string]string  `yaml:"state_labels"`
}

var planetByName = func() map[string]domain.Planet {
	m := make(map[string]domain.Planet, len(domain.Planets))
	for _, p := range domain.Planets {
		m[p.String()] = p
	}
	return m
}()

// intensityBucketNames x harmonyBucketNames enumerate the 15 required
// (intensity, harmony) cells,
// written "quiet/challenging", "quiet/mixed", ... "extreme/harmonious".
var intensityBucketNames = []string{"quiet", "mild", "moderate", "high", "extreme"}
var harmonyBucketNames = []string{"challenging", "mixed", "harmonious"}

// LoadMeterConfigs reads every *.yaml document in dir and returns the
// validated set of MeterConfigs, keyed by name (§6, §9 "rejected at load time").
func LoadMeterConfigs(dir string) (map[string]domain.MeterConfig, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading meter config dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	configs := make(map[string]domain.MeterConfig, len(paths))
	for _, p := range paths {
		cfg, err := loadOneMeterConfig(p)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", p, err)
		}
		if _, dup := configs[cfg.Name]; dup {
			return nil, fmt.Errorf("duplicate meter name %q across config files", cfg.Name)
		}
		configs[cfg.Name] = cfg
	}
	return configs, nil
}

func loadOneMeterConfig(path string) (domain.MeterConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.MeterConfig{}, err
	}
	var doc meterConfigDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return domain.MeterConfig{}, err
	}
	if doc.Name == "" {
		return domain.MeterConfig{}, fmt.Errorf("missing required field: name")
	}

	planets := make(map[domain.Planet]bool, len(doc.NatalPlanets))
	for _, name := range doc.NatalPlanets {
		p, ok := planetByName[name]
		if !ok {
			return domain.MeterConfig{}, fmt.Errorf("meter %s: unknown planet %q", doc.Name, name)
		}
		planets[p] = true
	}

	houses := make(map[int]bool, len(doc.NatalHouses))
	for _, h := range doc.NatalHouses {
		if h < 1 || h > 12 {
			return domain.MeterConfig{}, fmt.Errorf("meter %s: house %d out of range 1..12", doc.Name, h)
		}
		houses[h] = true
	}

	modifiers := make(map[domain.Planet]float64, len(doc.RetrogradeModifiers))
	for name, mult := range doc.RetrogradeModifiers {
		p, ok := planetByName[name]
		if !ok {
			return domain.MeterConfig{}, fmt.Errorf("meter %s: unknown planet %q in retrograde_modifiers", doc.Name, name)
		}
		modifiers[p] = mult
	}

	grid, err := buildStateLabelGrid(doc.Name, doc.StateLabels)
	if err != nil {
		return domain.MeterConfig{}, err
	}

	return domain.MeterConfig{
		Name:                doc.Name,
		Group:               domain.MeterGroup(doc.Group),
		NatalPlanets:        planets,
		NatalHouses:         houses,
		RetrogradeModifiers: modifiers,
		StateLabels:         grid,
	}, nil
}

func buildStateLabelGrid(meterName string, cells map[string]string) (domain.StateLabelGrid, error) {
	var grid domain.StateLabelGrid
	for i, iname := range intensityBucketNames {
		for h, hname := range harmonyBucketNames {
			key := iname + "/" + hname
			label, ok := cells[key]
			if !ok || label == "" {
				return grid, fmt.Errorf("meter %s: missing state label for cell %q", meterName, key)
			}
			grid[i][h] = label
		}
	}
	return grid, nil
}
