package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBodyPlacement(t *testing.T) {
	b := NewBodyPlacement(Venus, 400, 7, -0.5, false, 0)
	assert.Equal(t, Venus, b.Planet)
	assert.InDelta(t, 40.0, b.Longitude, 1e-9)
	assert.Equal(t, Taurus, b.Sign)
	assert.InDelta(t, 10.0, b.SignDegree, 1e-9)
	assert.True(t, b.IsRetrograde())
}

func TestIsRetrograde(t *testing.T) {
	direct := NewBodyPlacement(Mars, 10, 1, 0.5, false, 0)
	retro := NewBodyPlacement(Mars, 10, 1, -0.5, false, 0)
	assert.False(t, direct.IsRetrograde())
	assert.True(t, retro.IsRetrograde())
}

func TestMaxOrb(t *testing.T) {
	tests := []struct {
		name      string
		aspect    AspectType
		transit   Planet
		luminary  bool
		want      float64
	}{
		{"conjunction with a luminary always uses 10", Conjunction, Pluto, true, 10},
		{"conjunction with a social (non-outer) transit, no luminary", Conjunction, Saturn, false, 8},
		{"conjunction with outer transformational transit", Conjunction, Uranus, false, 6},
		{"sextile with inner transit", Sextile, Venus, false, 5},
		{"square with outer transit", Square, Neptune, false, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxOrb(tt.aspect, tt.transit, tt.luminary))
		})
	}
}

func TestChartBodyLookup(t *testing.T) {
	c := Chart{Bodies: map[Planet]BodyPlacement{
		Sun: NewBodyPlacement(Sun, 100, 5, 1, false, 0),
	}}
	b, ok := c.Body(Sun)
	assert.True(t, ok)
	assert.Equal(t, 5, b.House)

	_, ok = c.Body(Moon)
	assert.False(t, ok)
}
