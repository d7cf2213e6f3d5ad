package main

import (
	"context"
	"log"
	"time"

	"astrometers/internal/calibration"
	"astrometers/internal/config"
	"astrometers/internal/ephemeris"
	"astrometers/internal/logging"
)

func main() {
	cfg := config.Load()

	logger := logging.NewLogger()
	logger.Info().
		Str("version", "v1.0.0").
		Str("service", "astrometers-calibrate").
		Msg("🚀 Starting calibration run")

	adapter, err := ephemeris.NewSwissEphemeris(logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize ephemeris")
		log.Fatalf("Failed to initialize ephemeris: %v", err)
	}

	meterConfigs, err := config.LoadMeterConfigs(cfg.Calibration.MeterConfigDir)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load meter configs")
		log.Fatalf("Failed to load meter configs: %v", err)
	}
	logger.Info().Int("count", len(meterConfigs)).Msg("meter configs loaded")

	dateEnd := time.Now().UTC()
	dateStart := dateEnd.AddDate(-cfg.Calibration.DateRangeYears, 0, 0)

	opts := calibration.Options{
		SampleCharts: cfg.Calibration.SampleCharts,
		DateStart:    dateStart,
		DateEnd:      dateEnd,
		Workers:      cfg.Calibration.Workers,
	}
	logger.Info().
		Int("sample_charts", opts.SampleCharts).
		Int("workers", opts.Workers).
		Str("date_start", opts.DateStart.Format("2006-01-02")).
		Str("date_end", opts.DateEnd.Format("2006-01-02")).
		Msg("🔭 Sweeping sample charts")

	table, err := calibration.Run(context.Background(), adapter, meterConfigs, opts, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Calibration run failed")
		log.Fatalf("Calibration run failed: %v", err)
	}

	if err := calibration.SaveYAML(table, cfg.Calibration.CalibrationPath); err != nil {
		logger.Error().Err(err).Msg("Failed to write calibration table")
		log.Fatalf("Failed to write calibration table: %v", err)
	}
	logger.Info().
		Str("version", table.Version).
		Str("path", cfg.Calibration.CalibrationPath).
		Msg("calibration table written")

	store, err := calibration.OpenStore(cfg.Database.Path)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open calibration run store")
		log.Fatalf("Failed to open calibration run store: %v", err)
	}
	defer store.Close()

	if err := store.RecordRun(table.Version, opts.SampleCharts, opts.DateStart, opts.DateEnd); err != nil {
		logger.Error().Err(err).Msg("Failed to record calibration run")
		log.Fatalf("Failed to record calibration run: %v", err)
	}

	logger.Info().Msg("✅ Calibration run complete")
}
