package meters

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"astrometers/internal/domain"
)

func placement(p domain.Planet, longitude, dailyMotion float64) domain.BodyPlacement {
	return domain.NewBodyPlacement(p, longitude, 1, dailyMotion, false, 0)
}

func TestBestAspectPicksTightestWithinOrb(t *testing.T) {
	n := placement(domain.Venus, 100, 0)
	tr := placement(domain.Mars, 101, 0.5) // 1 deg from conjunction, separating

	a, ok := bestAspect(tr, n)
	assert.True(t, ok)
	assert.Equal(t, domain.Conjunction, a.Type)
	assert.InDelta(t, 1.0, a.AbsOrb, 1e-9)
}

func TestBestAspectRejectsOutOfOrb(t *testing.T) {
	n := placement(domain.Venus, 100, 0)
	tr := placement(domain.Saturn, 50, 0) // 50 deg away: no aspect type's orb reaches this

	_, ok := bestAspect(tr, n)
	assert.False(t, ok)
}

func TestClassifyStateExactWithinThreshold(t *testing.T) {
	n := placement(domain.Venus, 100, 0)
	tr := placement(domain.Mars, 100.3, 0.1)
	state := classifyState(tr, n, domain.Conjunction, 0.3)
	assert.Equal(t, Exact, state)
}

func TestClassifyStateApplyingVsSeparating(t *testing.T) {
	n := placement(domain.Venus, 100, 0)

	applying := placement(domain.Mars, 98, 1.0) // moving toward 100
	assert.Equal(t, Applying, classifyState(applying, n, domain.Conjunction, 2.0))

	separating := placement(domain.Mars, 98, -1.0) // moving away from 100
	assert.Equal(t, Separating, classifyState(separating, n, domain.Conjunction, 2.0))
}

func TestDetectAspectsAllPairs(t *testing.T) {
	natal := domain.Chart{Bodies: map[domain.Planet]domain.BodyPlacement{
		domain.Venus: placement(domain.Venus, 100, 0),
		domain.Mars:  placement(domain.Mars, 280, 0), // opposition to Venus, no transit match needed
	}}
	transit := domain.Chart{Bodies: map[domain.Planet]domain.BodyPlacement{
		domain.Sun: placement(domain.Sun, 100, 1),
	}}

	aspects := DetectAspects(natal, transit)
	assert.Len(t, aspects, 2) // Sun-transit vs Venus-natal (conjunction) and vs Mars-natal (opposition)
}
