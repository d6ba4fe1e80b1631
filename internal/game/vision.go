package game

import (
	"fmt"
	"math"
)

const (
	// visionStep is the ray-march increment for occlusion checks, in
	// world units.
	visionStep = 5.0

	// visionProbeRadius is the probe size used at each ray step. Small,
	// so a sight line can pass through a one-tile gap that an actor
	// body could not.
	visionProbeRadius = 2.0
)

// CanSee reports whether an observer at (ox, oy) facing heading can see
// the point (tx, ty). Three gates, all of which must pass:
//
//  1. distance: Euclidean distance <= rangeLimit
//  2. angle: bearing to target within halfFOV of heading
//  3. occlusion: the straight line is ray-marched in visionStep
//     increments through Blocked; any blocked step defeats sight
//
// Negative rangeLimit or halfFOV is a caller bug and panics.
func CanSee(g *Grid, ox, oy, heading, tx, ty, rangeLimit, halfFOV float64) bool {
	if rangeLimit < 0 || halfFOV < 0 {
		panic(fmt.Sprintf("game: CanSee called with negative rangeLimit %v or halfFOV %v", rangeLimit, halfFOV))
	}

	dx := tx - ox
	dy := ty - oy
	dist := math.Hypot(dx, dy)
	if dist > rangeLimit {
		return false
	}
	if dist < 1e-6 {
		// Co-located: nothing can occlude and no bearing exists.
		return true
	}

	bearing := math.Atan2(dy, dx)
	if math.Abs(normalizeAngle(bearing-heading)) > halfFOV {
		return false
	}

	steps := int(dist / visionStep)
	for i := 1; i <= steps; i++ {
		t := float64(i) * visionStep / dist
		if Blocked(g, ox+dx*t, oy+dy*t, visionProbeRadius) {
			return false
		}
	}
	return true
}

// HeadingTo returns the angle in radians from (ox, oy) toward (tx, ty).
func HeadingTo(ox, oy, tx, ty float64) float64 {
	return math.Atan2(ty-oy, tx-ox)
}

// turnToward rotates current toward target by at most rate radians,
// returning the new heading. Prevents instant heading snaps while chasing.
func turnToward(current, target, rate float64) float64 {
	diff := normalizeAngle(target - current)
	if math.Abs(diff) <= rate {
		return target
	}
	if diff > 0 {
		return normalizeAngle(current + rate)
	}
	return normalizeAngle(current - rate)
}

// normalizeAngle wraps an angle to [-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
