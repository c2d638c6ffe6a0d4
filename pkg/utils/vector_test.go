package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorArithmetic(t *testing.T) {
	a := NewVector(3, 4)
	b := NewVector(1, -2)

	assert.Equal(t, Vector{X: 4, Y: 2}, a.Add(b))
	assert.Equal(t, Vector{X: 2, Y: 6}, a.Subtract(b))
	assert.Equal(t, Vector{X: 6, Y: 8}, a.MultiplyScalar(2))
	assert.Equal(t, 5.0, a.Length())
	assert.Equal(t, 5.0, Zero.DistanceTo(a))
	assert.Equal(t, Vector{X: -3, Y: 4}, a.MirrorX())
	assert.Equal(t, Vector{X: 1, Y: -3}, NewVector(1.7, -2.2).Floor())
}

func TestVectorToUnit(t *testing.T) {
	u := NewVector(3, 4).ToUnit()
	assert.InDelta(t, 1.0, u.Length(), 1e-9)
	assert.InDelta(t, 0.6, u.X, 1e-9)

	// 零向量保持为零
	assert.Equal(t, Zero, Zero.ToUnit())
}

func TestVectorFromDegreeAngle(t *testing.T) {
	tests := []struct {
		name    string
		degrees float64
		want    Vector
	}{
		{"右", 0, Vector{X: 1, Y: 0}},
		{"下", 90, Vector{X: 0, Y: 1}},
		{"左", 180, Vector{X: -1, Y: 0}},
		{"上", 270, Vector{X: 0, Y: -1}},
		{"负角度", -90, Vector{X: 0, Y: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VectorFromDegreeAngle(tt.degrees)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			assert.InDelta(t, 1.0, got.Length(), 1e-9)
		})
	}
}

func TestVectorAngleRoundTrip(t *testing.T) {
	for deg := -170.0; deg <= 180; deg += 10 {
		got := VectorFromDegreeAngle(deg).AngleInDegrees()
		assert.InDelta(t, deg, got, 1e-9)
	}
	assert.InDelta(t, math.Pi/2, NewVector(0, 5).AngleInRadians(), 1e-9)
}

func TestInterpolateVector(t *testing.T) {
	a := NewVector(0, 10)
	b := NewVector(100, 20)
	assert.Equal(t, a, InterpolateVector(a, b, 0))
	assert.Equal(t, b, InterpolateVector(a, b, 1))
	assert.Equal(t, Vector{X: 50, Y: 15}, InterpolateVector(a, b, 0.5))
}

func TestNormalizeDegrees(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeDegrees(360))
	assert.Equal(t, 270.0, NormalizeDegrees(-90))
	assert.Equal(t, 45.0, NormalizeDegrees(405))
	assert.InDelta(t, math.Pi, DegreesToRadians(180), 1e-12)
	assert.InDelta(t, 180.0, RadiansToDegrees(math.Pi), 1e-12)
}
