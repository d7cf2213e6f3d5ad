package main

import (
	"log"

	"astrometers/internal/config"
	"astrometers/internal/ephemeris"
	"astrometers/internal/httpapi"
	"astrometers/internal/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	cfg := config.Load()

	// Initialize logger
	logger := logging.NewLogger()
	logger.Info().
		Str("version", "v1.0.0").
		Str("service", "astrometers").
		Msg("🚀 Starting Astrometers engine server")

	// Initialize ephemeris adapter
	adapter, err := ephemeris.NewSwissEphemeris(logger)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to initialize ephemeris")
		log.Fatalf("Failed to initialize ephemeris: %v", err)
	}
	logger.Info().Msg("🌍 Ephemeris adapter initialized successfully")

	// Load meter configs and the calibration table
	meterConfigs, err := config.LoadMeterConfigs(cfg.Calibration.MeterConfigDir)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to load meter configs")
		log.Fatalf("Failed to load meter configs: %v", err)
	}
	logger.Info().Int("count", len(meterConfigs)).Msg("meter configs loaded")

	calibrationTable, err := config.LoadCalibrationTable(cfg.Calibration.CalibrationPath)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to load calibration table")
		log.Fatalf("Failed to load calibration table: %v", err)
	}
	if err := config.ValidateMeterSetMatchesCalibration(meterConfigs, calibrationTable); err != nil {
		logger.Error().
			Err(err).
			Msg("Calibration table does not match configured meters")
		log.Fatalf("Stale calibration table: %v", err)
	}
	logger.Info().Str("version", calibrationTable.Version).Msg("calibration table loaded")

	handler := httpapi.NewMeterHandler(adapter, meterConfigs, calibrationTable, logger)

	logger.Info().Msg("✅ All components initialized successfully")

	// Set up HTTP router
	ginRouter := gin.Default()
	httpapi.RegisterRoutes(ginRouter, handler, logger)

	// Start server
	port := cfg.Server.Port
	logger.Info().
		Str("port", port).
		Str("health_endpoint", "http://localhost:"+port+"/health").
		Str("api_endpoint", "http://localhost:"+port+"/api/v1/meters").
		Msg("🌟 Server starting")

	if err := ginRouter.Run(":" + port); err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to run server")
		log.Fatalf("Failed to run server: %v", err)
	}
}
