package engine

import (
	"math"

	"github.com/hyperion-sim/hyperion/world"
)

// InterceptSolution is the result of a lead-pursuit intercept calculation,
// used by weapon aiming (phase 6) and missile guidance (phase 7).
type InterceptSolution struct {
	Direction       float64
	TimeToIntercept float64
	InterceptPoint  world.Vec2
}

// InterceptDirection solves the standard 2D lead-intercept quadratic for a
// stationary shooter: find t such that |targetPos + targetVel*t - shooterPos|
// = projSpeed*t. Grounded on the teacher's server/intercept.go
// InterceptDirection, generalized from the teacher's Point2D/Vector2D pair
// to world.Vec2.
func InterceptDirection(shooterPos, targetPos world.Vec2, targetVel world.Vec2, projSpeed float64) (*InterceptSolution, bool) {
	if projSpeed <= 0 {
		return nil, false
	}

	rel := targetPos.Sub(shooterPos)
	distSq := rel.X*rel.X + rel.Y*rel.Y
	if distSq < 1e-9 {
		return &InterceptSolution{Direction: 0, TimeToIntercept: 1e-6, InterceptPoint: shooterPos}, true
	}

	velSq := targetVel.X*targetVel.X + targetVel.Y*targetVel.Y
	if velSq < 1e-9 {
		direction := math.Atan2(rel.Y, rel.X)
		distance := math.Sqrt(distSq)
		return &InterceptSolution{Direction: direction, TimeToIntercept: distance / projSpeed, InterceptPoint: targetPos}, true
	}

	a := velSq - projSpeed*projSpeed
	b := 2.0 * (rel.X*targetVel.X + rel.Y*targetVel.Y)
	c := distSq

	if math.Abs(a) < 1e-9 {
		if math.Abs(b) < 1e-9 {
			return nil, false
		}
		t := -c / b
		if t < 0 {
			return nil, false
		}
		point := targetPos.Add(targetVel.Scale(t))
		direction := math.Atan2(point.Y-shooterPos.Y, point.X-shooterPos.X)
		return &InterceptSolution{Direction: direction, TimeToIntercept: t, InterceptPoint: point}, true
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtDisc := math.Sqrt(discriminant)
	t1 := (-b + sqrtDisc) / (2 * a)
	t2 := (-b - sqrtDisc) / (2 * a)

	var t float64
	switch {
	case t1 > 0 && t2 > 0:
		t = math.Min(t1, t2)
	case t1 > 0:
		t = t1
	case t2 > 0:
		t = t2
	default:
		return nil, false
	}

	point := targetPos.Add(targetVel.Scale(t))
	direction := math.Atan2(point.Y-shooterPos.Y, point.X-shooterPos.X)
	return &InterceptSolution{Direction: direction, TimeToIntercept: t, InterceptPoint: point}, true
}

// InterceptDirectionOrDirect falls back to a direct firing solution when no
// lead intercept exists (target outrunning the projectile, degenerate
// geometry), matching the teacher's InterceptDirectionSimple fallback.
func InterceptDirectionOrDirect(shooterPos, targetPos, targetVel world.Vec2, projSpeed float64) (float64, bool) {
	solution, ok := InterceptDirection(shooterPos, targetPos, targetVel, projSpeed)
	if !ok {
		rel := targetPos.Sub(shooterPos)
		return math.Atan2(rel.Y, rel.X), false
	}
	return solution.Direction, true
}

// NormalizeAngleSigned normalizes to (-pi, pi], matching the teacher's
// server.NormalizeAngleSigned. world.NormalizeAngle covers the [0, 2pi) half
// used by orientation; this one is for turn-rate clamping where a signed
// shortest-path delta is needed.
func NormalizeAngleSigned(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	} else if angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// AngleDifference returns the unsigned smallest angle between two headings.
func AngleDifference(a1, a2 float64) float64 {
	return math.Abs(NormalizeAngleSigned(a1 - a2))
}
