package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageFormat(t *testing.T) {
	withMeter := UnknownMeter("love")
	assert.Contains(t, withMeter.Error(), "love")
	assert.Contains(t, withMeter.Error(), CodeUnknownMeter)

	withoutMeter := CalibrationStale("missing love")
	assert.NotContains(t, withoutMeter.Error(), "meter=")
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(UnknownMeter("x")))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(CalibrationMissing("x")))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(CalibrationStale("x")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidChart("x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestIsMeterError(t *testing.T) {
	assert.True(t, IsMeterError(UnknownMeter("x")))
	assert.False(t, IsMeterError(errors.New("plain")))
}

func TestEphemerisUnavailableUnwraps(t *testing.T) {
	cause := errors.New("swephgo failure")
	wrapped := EphemerisUnavailable(cause)
	assert.ErrorIs(t, wrapped, cause)
}
