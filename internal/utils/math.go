// internal/utils/math.go
package utils

import "math"

// NormalizeAngle maps an angle into (-π, π].
func NormalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	} else if angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// Bearing is the angle of the vector (dx, dy) in screen space (y grows downward).
func Bearing(dx, dy float64) float64 {
	return math.Atan2(dy, dx)
}

// RotateToward turns from toward target by at most maxStep radians along the shorter arc.
// A non-positive maxStep turns all the way. The result equals target exactly once it is reached.
func RotateToward(from, target, maxStep float64) float64 {
	diff := NormalizeAngle(target - from)
	if maxStep <= 0 || math.Abs(diff) <= maxStep {
		return target
	}
	if diff > 0 {
		return NormalizeAngle(from + maxStep)
	}
	return NormalizeAngle(from - maxStep)
}

// Radians converts degrees.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RectsIntersect reports whether two axis-aligned rectangles, given by min and max corners, overlap.
func RectsIntersect(aMinX, aMinY, aMaxX, aMaxY, bMinX, bMinY, bMaxX, bMaxY float64) bool {
	return aMinX < bMaxX && bMinX < aMaxX && aMinY < bMaxY && bMinY < aMaxY
}
