package errors

import (
	"fmt"
	"net/http"
)

// MeterError is a structured error surfaced by the reading assembler (C13)
// and its collaborators, per spec §7.
type MeterError struct {
	Code       string
	Message    string
	Meter      string
	HTTPStatus int
	Cause      error
}

func (e *MeterError) Error() string {
	if e.Meter != "" {
		return fmt.Sprintf("[%s] %s (meter=%s)", e.Code, e.Message, e.Meter)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *MeterError) Unwrap() error { return e.Cause }

// Error kind codes, one per row of spec §7's table.
const (
	CodeUnknownMeter          = "UNKNOWN_METER"
	CodeCalibrationMissing    = "CALIBRATION_MISSING"
	CodeCalibrationStale      = "CALIBRATION_STALE"
	CodeEphemerisUnavailable  = "EPHEMERIS_UNAVAILABLE"
	CodeInvalidChart          = "INVALID_CHART"
	CodeOutOfRangeSensitivity = "OUT_OF_RANGE_SENSITIVITY"
)

// UnknownMeter reports a meter name absent from the loaded configs.
func UnknownMeter(name string) *MeterError {
	return &MeterError{Code: CodeUnknownMeter, Message: "meter not configured", Meter: name, HTTPStatus: http.StatusBadRequest}
}

// CalibrationMissing reports a meter with no percentile entry in the table.
func CalibrationMissing(name string) *MeterError {
	return &MeterError{Code: CodeCalibrationMissing, Message: "calibration percentiles absent for meter", Meter: name, HTTPStatus: http.StatusServiceUnavailable}
}

// CalibrationStale reports a mismatch between the configured meter set and
// the calibration table's meter set.
func CalibrationStale(detail string) *MeterError {
	return &MeterError{Code: CodeCalibrationStale, Message: "calibration table does not match configured meters: " + detail, HTTPStatus: http.StatusServiceUnavailable}
}

// EphemerisUnavailable wraps an upstream astronomy-library failure.
func EphemerisUnavailable(cause error) *MeterError {
	return &MeterError{Code: CodeEphemerisUnavailable, Message: "ephemeris unavailable", HTTPStatus: http.StatusServiceUnavailable, Cause: cause}
}

// InvalidChart reports malformed chart input (longitude/sign/house out of range).
func InvalidChart(detail string) *MeterError {
	return &MeterError{Code: CodeInvalidChart, Message: "invalid chart: " + detail, HTTPStatus: http.StatusBadRequest}
}

// IsMeterError reports whether err is a *MeterError.
func IsMeterError(err error) bool {
	_, ok := err.(*MeterError)
	return ok
}

// HTTPStatus returns the HTTP status code to report for err.
func HTTPStatus(err error) int {
	if me, ok := err.(*MeterError); ok {
		return me.HTTPStatus
	}
	return http.StatusInternalServerError
}
