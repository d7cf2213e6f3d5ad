package config

import (
	"os"
	"runtime"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Logging     LoggingConfig
	Calibration CalibrationConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
}

// DatabaseConfig holds database-related configuration: the SQLite file the
// calibration pipeline (C12) records run metadata in (version, sample count,
// date range). The percentile tables themselves go to the YAML document.
type DatabaseConfig struct {
	Path string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// CalibrationConfig holds the defaults for an offline calibration run (C12).
type CalibrationConfig struct {
	MeterConfigDir    string // directory of per-meter YAML configs
	CalibrationPath   string // output/input YAML for the CalibrationTable
	SampleCharts      int    // N, reference: 1000
	DateRangeYears    int    // reference: 5
	Workers           int    // reference: CPU count
}

// Load loads configuration from environment variables and defaults
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
			Host: getEnvOrDefault("HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnvOrDefault("DB_PATH", "data/astrometers.db"),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "console"),
		},
		Calibration: CalibrationConfig{
			MeterConfigDir:  getEnvOrDefault("METER_CONFIG_DIR", "configs/meters"),
			CalibrationPath: getEnvOrDefault("CALIBRATION_PATH", "configs/calibration.yaml"),
			SampleCharts:    getEnvIntOrDefault("CALIBRATION_SAMPLE_CHARTS", 1000),
			DateRangeYears:  getEnvIntOrDefault("CALIBRATION_DATE_RANGE_YEARS", 5),
			Workers:         getEnvIntOrDefault("CALIBRATION_WORKERS", runtimeNumCPU()),
		},
	}
}

// getEnvOrDefault gets an environment variable or returns a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault gets an integer environment variable or returns a default.
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func runtimeNumCPU() int {
	return runtime.NumCPU()
}
