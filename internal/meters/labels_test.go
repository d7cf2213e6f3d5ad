package meters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyQuality(t *testing.T) {
	tests := []struct {
		name               string
		intensity, harmony float64
		want               Quality
	}{
		{"harmonious", 60, 75, QualityHarmonious},
		{"challenging", 60, 20, QualityChallenging},
		{"quiet regardless of harmony", 10, 90, QualityQuiet},
		{"mixed", 60, 50, QualityMixed},
		{"quiet beats challenging when intensity low", 10, 10, QualityQuiet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyQuality(tt.intensity, tt.harmony))
		})
	}
}
