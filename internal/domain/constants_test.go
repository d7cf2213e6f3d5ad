package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDignityOf(t *testing.T) {
	tests := []struct {
		name string
		p    Planet
		s    Sign
		want Dignity
	}{
		{"Sun in Leo is domicile", Sun, Leo, DignityDomicile},
		{"Sun in Aries is exaltation", Sun, Aries, DignityExaltation},
		{"Sun in Aquarius is detriment", Sun, Aquarius, DignityDetriment},
		{"Sun in Libra is fall", Sun, Libra, DignityFall},
		{"Sun in Gemini is neutral", Sun, Gemini, DignityNone},
		{"Mercury rules both Gemini and Virgo", Mercury, Virgo, DignityDomicile},
		{"Uranus never carries classical dignity", Uranus, Aquarius, DignityNone},
		{"North Node never carries classical dignity", NorthNode, Cancer, DignityNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DignityOf(tt.p, tt.s))
		})
	}
}

func TestClassOfHouse(t *testing.T) {
	tests := []struct {
		house int
		want  HouseClass
	}{
		{1, Angular}, {4, Angular}, {7, Angular}, {10, Angular},
		{2, Succedent}, {5, Succedent}, {8, Succedent}, {11, Succedent},
		{3, Cadent}, {6, Cadent}, {9, Cadent}, {12, Cadent},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassOfHouse(tt.house), "house %d", tt.house)
	}
}

func TestSignFromLongitude(t *testing.T) {
	tests := []struct {
		longitude float64
		want      Sign
	}{
		{0, Aries},
		{29.999, Aries},
		{30, Taurus},
		{359.999, Pisces},
		{-10, Pisces}, // normalizes to 350
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SignFromLongitude(tt.longitude), "longitude %v", tt.longitude)
	}
}

func TestNormalizeAngle(t *testing.T) {
	assert.InDelta(t, 350.0, NormalizeAngle(-10), 1e-9)
	assert.InDelta(t, 10.0, NormalizeAngle(370), 1e-9)
	assert.InDelta(t, 0.0, NormalizeAngle(360), 1e-9)
}

func TestAngularSeparation(t *testing.T) {
	assert.InDelta(t, 10.0, AngularSeparation(5, 355), 1e-9)
	assert.InDelta(t, 180.0, AngularSeparation(0, 180), 1e-9)
	assert.InDelta(t, 90.0, AngularSeparation(45, 315), 1e-9)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
	assert.Equal(t, 0.0, Clamp(-5, 0, 1))
	assert.Equal(t, 1.0, Clamp(5, 0, 1))
}

func TestHouseMultiplier(t *testing.T) {
	assert.Equal(t, 3.0, Angular.HouseMultiplier())
	assert.Equal(t, 2.0, Succedent.HouseMultiplier())
	assert.Equal(t, 1.0, Cadent.HouseMultiplier())
}
