// Package utils provides small geometry, color and interpolation helpers
// shared by the particle core and the viewer tools.
//
// All angles handled here follow the screen convention used by the
// renderer: 0° points right, 90° points down (Y grows downwards).
package utils

import "math"

// Vector is a 2D value type used for positions, velocities and
// accelerations. Methods never mutate the receiver.
type Vector struct {
	X float64
	Y float64
}

// Zero is the zero vector.
var Zero = Vector{}

// NewVector returns Vector{X: x, Y: y}.
func NewVector(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Add returns v + other.
func (v Vector) Add(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y}
}

// Subtract returns v - other.
func (v Vector) Subtract(other Vector) Vector {
	return Vector{X: v.X - other.X, Y: v.Y - other.Y}
}

// MultiplyScalar returns v scaled by s.
func (v Vector) MultiplyScalar(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Length returns the euclidean length of v.
func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// DistanceTo returns the distance between v and other.
func (v Vector) DistanceTo(other Vector) float64 {
	return v.Subtract(other).Length()
}

// ToUnit returns v scaled to length 1. The zero vector stays zero.
func (v Vector) ToUnit() Vector {
	l := v.Length()
	if l == 0 {
		return Zero
	}
	return Vector{X: v.X / l, Y: v.Y / l}
}

// Floor floors both components.
func (v Vector) Floor() Vector {
	return Vector{X: math.Floor(v.X), Y: math.Floor(v.Y)}
}

// MirrorX flips the X component.
func (v Vector) MirrorX() Vector {
	return Vector{X: -v.X, Y: v.Y}
}

// AngleInRadians returns atan2(y, x).
func (v Vector) AngleInRadians() float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleInDegrees returns the angle of v in degrees.
func (v Vector) AngleInDegrees() float64 {
	return RadiansToDegrees(v.AngleInRadians())
}

// VectorFromRadianAngle returns the unit vector pointing at the given angle.
func VectorFromRadianAngle(radians float64) Vector {
	return Vector{X: math.Cos(radians), Y: math.Sin(radians)}
}

// VectorFromDegreeAngle returns the unit vector pointing at the given angle
// in degrees.
func VectorFromDegreeAngle(degrees float64) Vector {
	return VectorFromRadianAngle(DegreesToRadians(degrees))
}

// InterpolateVector blends a towards b by amount (not clamped).
func InterpolateVector(a, b Vector, amount float64) Vector {
	return Vector{
		X: Interpolate(a.X, b.X, amount),
		Y: Interpolate(a.Y, b.Y, amount),
	}
}

// DegreesToRadians converts degrees to radians.
func DegreesToRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// RadiansToDegrees converts radians to degrees.
func RadiansToDegrees(radians float64) float64 {
	return radians * (180 / math.Pi)
}

// NormalizeDegrees maps any angle into [0, 360).
func NormalizeDegrees(degrees float64) float64 {
	degrees = math.Mod(degrees, 360)
	if degrees < 0 {
		degrees += 360
	}
	return degrees
}
