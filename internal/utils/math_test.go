package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotateToward(t *testing.T) {
	tests := []struct {
		name               string
		from, target, step float64
		want               float64
	}{
		{"within step snaps", 0, 0.2, 0.5, 0.2},
		{"clockwise limited", 0, 1, 0.25, 0.25},
		{"counter-clockwise limited", 0, -1, 0.25, -0.25},
		{"shorter arc across pi", 3, -3, 0.1, 3.1},
		{"instant", 0, 2, 0, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, RotateToward(tc.from, tc.target, tc.step), 1e-9)
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	assert.InDelta(t, math.Pi, NormalizeAngle(-math.Pi), 1e-9)
	assert.InDelta(t, 0, NormalizeAngle(4*math.Pi), 1e-9)
	assert.InDelta(t, -math.Pi/2, NormalizeAngle(3*math.Pi/2), 1e-9)
}

func TestRectsIntersect(t *testing.T) {
	assert.True(t, RectsIntersect(0, 0, 2, 2, 1, 1, 3, 3))
	assert.False(t, RectsIntersect(0, 0, 1, 1, 1, 0, 2, 1), "touching edges do not overlap")
}

func TestPRNGService_Reproducible(t *testing.T) {
	a, b := NewPRNGService(42), NewPRNGService(42)
	assert.Equal(t, a.Perm(10), b.Perm(10))
	assert.Equal(t, int64(42), a.Seed())
	assert.NotZero(t, NewPRNGService(0).Seed())
}
