package meters

import "astrometers/internal/domain"

// Weightage computes Wi, the weight of a natal body within an aspect,
// from planet base, dignity, chart-ruler bonus, house class and sensitivity
// (§4.3).
func Weightage(natal domain.BodyPlacement, chartRuler domain.Planet, sensitivity float64) float64 {
	base := natal.Planet.PlanetBase() + domain.DignityOf(natal.Planet, natal.Sign).Score()
	if natal.Planet == chartRuler {
		base += 5
	}
	houseClass := domain.ClassOfHouse(natal.House)
	sens := domain.Clamp(sensitivity, 0.5, 2.0)
	return base * houseClass.HouseMultiplier() * sens
}
