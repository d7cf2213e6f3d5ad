package ephemeris

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHouseSystemCode(t *testing.T) {
	cases := []struct {
		system HouseSystem
		want   rune
	}{
		{Placidus, 'P'},
		{Koch, 'K'},
		{Porphyrius, 'O'},
		{Regiomontanus, 'R'},
		{Campanus, 'C'},
		{Equal, 'E'},
		{WholeSign, 'W'},
		{HouseSystem("bogus"), 'P'},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, houseSystemCode(c.system), "system=%s", c.system)
	}
}

func TestSignOf(t *testing.T) {
	assert.Equal(t, 1, signOf(0.4))
	assert.Equal(t, -1, signOf(-0.1))
	assert.Equal(t, 1, signOf(0))
}

func TestAbsf(t *testing.T) {
	assert.Equal(t, 3.5, absf(3.5))
	assert.Equal(t, 3.5, absf(-3.5))
	assert.Equal(t, 0.0, absf(0))
}

func TestHouseForLongitude(t *testing.T) {
	var cusps [12]float64
	for i := 0; i < 12; i++ {
		cusps[i] = float64(i) * 30.0
	}

	assert.Equal(t, 1, houseForLongitude(5, cusps))
	assert.Equal(t, 2, houseForLongitude(35, cusps))
	assert.Equal(t, 12, houseForLongitude(355, cusps))
}

func TestHouseForLongitudeWrapsAcrossZero(t *testing.T) {
	cusps := [12]float64{
		350, 20, 50, 80, 110, 140, 170, 200, 230, 260, 290, 320,
	}

	assert.Equal(t, 1, houseForLongitude(0, cusps))
	assert.Equal(t, 1, houseForLongitude(355, cusps))
	assert.Equal(t, 2, houseForLongitude(30, cusps))
}
