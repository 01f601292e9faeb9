package systems

import (
	"math"

	"github.com/pthm-cable/menagerie/components"
)

// Steer computes the next position of an animal heading for target.
// The speed vector keeps the animal's overall speed but points at the target;
// each axis is clamped to [1, maxSpeed], collapsing to 0 once that axis is
// already aligned with the target. xDir is the facing used for rendering:
// 1 when the animal ends up left of the target, -1 otherwise.
func Steer(pos, target components.Position, horSpeed, verSpeed int, maxSpeed float64) (next components.Position, xDir int) {
	dx := float64(pos.X - target.X)
	dy := float64(pos.Y - target.Y)
	dist := math.Hypot(dx, dy)

	next = pos
	if dist > 0 {
		speed := math.Hypot(float64(horSpeed), float64(verSpeed))
		h, hSign := clampAxis(speed*dx/dist, pos.X != target.X, maxSpeed)
		v, vSign := clampAxis(speed*dy/dist, pos.Y != target.Y, maxSpeed)
		next.X = int(float64(pos.X) - h*hSign)
		next.Y = int(float64(pos.Y) - v*vSign)
	}

	xDir = -1
	if next.X < target.X {
		xDir = 1
	}
	return next, xDir
}

// clampAxis splits a signed velocity component into magnitude and sign and
// clamps the magnitude to [1, max], or 0 when the axis is already centered.
func clampAxis(v float64, offCenter bool, max float64) (float64, float64) {
	sign := 1.0
	if v < 0 {
		sign = -1
		v = -v
	}
	switch {
	case v > max:
		v = max
	case v < 1:
		if offCenter {
			v = 1
		} else {
			v = 0
		}
	}
	return v, sign
}

// Bounce advances pos by the animal's speed in its current direction,
// reflecting the direction on any axis whose next step would leave
// [0, width] horizontally or [0, height-size] vertically.
func Bounce(pos components.Position, horSpeed, verSpeed, xDir, yDir int, world components.Bounds, size int) (next components.Position, nxDir, nyDir int) {
	if pos.X+horSpeed*xDir >= world.Width {
		xDir = -1
	}
	if pos.X+horSpeed*xDir <= 0 {
		xDir = 1
	}
	if pos.Y+verSpeed*yDir >= world.Height-size {
		yDir = -1
	}
	if pos.Y+verSpeed*yDir <= 0 {
		yDir = 1
	}
	next = components.Position{X: pos.X + horSpeed*xDir, Y: pos.Y + verSpeed*yDir}
	return next, xDir, yDir
}

// WeightAfterMove applies the travel cost to weight. The move is refused
// (ok == false) when the result would not stay positive.
func WeightAfterMove(weight, distance, loss float64) (float64, bool) {
	next := weight - distance*weight*loss
	if next <= 0 {
		return weight, false
	}
	return next, true
}
