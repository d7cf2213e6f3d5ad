package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"astrometers/internal/domain"
	"astrometers/internal/ephemeris"
	"astrometers/internal/logging"
	"astrometers/internal/meters"
	apperrors "astrometers/pkg/errors"
)

// MeterHandler serves the meters endpoints against the process-wide,
// read-only configs and calibration table (§5, §6).
type MeterHandler struct {
	adapter     ephemeris.Adapter
	configs     map[string]domain.MeterConfig
	calibration *domain.CalibrationTable
	logger      *logging.Logger
}

// NewMeterHandler builds a handler bound to the loaded meter configs and
// calibration table.
func NewMeterHandler(adapter ephemeris.Adapter, configs map[string]domain.MeterConfig, calibration *domain.CalibrationTable, logger *logging.Logger) *MeterHandler {
	return &MeterHandler{adapter: adapter, configs: configs, calibration: calibration, logger: logger}
}

func (h *MeterHandler) resolveCharts(req MetersRequest) (domain.Chart, domain.Chart, error) {
	natal, err := resolveChart(h.adapter, req.Natal)
	if err != nil {
		return domain.Chart{}, domain.Chart{}, err
	}
	transit, err := resolveChart(h.adapter, ChartInputRequest{UTCDateTime: req.Date})
	if err != nil {
		return domain.Chart{}, domain.Chart{}, err
	}
	return natal, transit, nil
}

func (h *MeterHandler) sensitivityOf(req MetersRequest) float64 {
	if req.Sensitivity == 0 {
		return meters.DefaultSensitivity
	}
	return req.Sensitivity
}

// HandleAllMeters handles POST /api/v1/meters.
func (h *MeterHandler) HandleAllMeters(c *gin.Context) {
	var req MetersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	natal, transit, err := h.resolveCharts(req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	date, err := parseTimestamp(req.Date)
	if err != nil {
		h.respondBindError(c, err)
		return
	}

	reading, err := meters.ComputeAllMeters(natal, transit, date, h.calibration, h.configs, h.sensitivityOf(req))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.MeterLogger().Int("aspect_count", reading.AspectCount).Str("date", req.Date).Msg("computed all meters")
	c.JSON(http.StatusOK, allMetersReadingDTO(reading))
}

// HandleSingleMeter handles POST /api/v1/meters/:name.
func (h *MeterHandler) HandleSingleMeter(c *gin.Context) {
	name := c.Param("name")

	var req MetersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	natal, transit, err := h.resolveCharts(req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	date, err := parseTimestamp(req.Date)
	if err != nil {
		h.respondBindError(c, err)
		return
	}

	reading, err := meters.ComputeMeter(name, natal, transit, date, h.calibration, h.configs, h.sensitivityOf(req))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.MeterLogger().Str("meter", name).Str("date", req.Date).Msg("computed meter")
	c.JSON(http.StatusOK, meterReadingDTO(reading))
}

// HandleTrends handles POST /api/v1/meters/trends.
func (h *MeterHandler) HandleTrends(c *gin.Context) {
	var req TrendsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	todayNatal, todayTransit, err := h.resolveCharts(req.Today)
	if err != nil {
		h.respondError(c, err)
		return
	}
	todayDate, err := parseTimestamp(req.Today.Date)
	if err != nil {
		h.respondBindError(c, err)
		return
	}
	today, err := meters.ComputeAllMeters(todayNatal, todayTransit, todayDate, h.calibration, h.configs, h.sensitivityOf(req.Today))
	if err != nil {
		h.respondError(c, err)
		return
	}

	var yesterdayPtr *meters.AllMetersReading
	if req.Yesterday != nil {
		yNatal, yTransit, err := h.resolveCharts(*req.Yesterday)
		if err != nil {
			h.respondError(c, err)
			return
		}
		yDate, err := parseTimestamp(req.Yesterday.Date)
		if err != nil {
			h.respondBindError(c, err)
			return
		}
		yesterday, err := meters.ComputeAllMeters(yNatal, yTransit, yDate, h.calibration, h.configs, h.sensitivityOf(*req.Yesterday))
		if err != nil {
			h.respondError(c, err)
			return
		}
		yesterdayPtr = &yesterday
	}

	result := meters.ComputeTrends(today, yesterdayPtr)
	c.JSON(http.StatusOK, allMetersReadingDTO(result))
}

// HandleHealth handles GET /health.
func (h *MeterHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":             "ok",
		"calibration_version": h.calibration.Version,
		"meter_count":        len(h.configs),
	})
}

func (h *MeterHandler) respondBindError(c *gin.Context, err error) {
	h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("invalid request body")
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}

func (h *MeterHandler) respondError(c *gin.Context, err error) {
	h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("meter computation failed")
	status := apperrors.HTTPStatus(err)
	c.JSON(status, gin.H{"error": err.Error()})
}
