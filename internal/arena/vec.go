package arena

import "math"

type vec2 struct {
	X float64
	Y float64
}

func (v vec2) length() float64 {
	return math.Hypot(v.X, v.Y)
}

// normalized returns the unit vector, or the zero vector unchanged.
func (v vec2) normalized() vec2 {
	length := v.length()
	if length == 0 {
		return vec2{}
	}
	return vec2{X: v.X / length, Y: v.Y / length}
}

func (v vec2) scaled(s float64) vec2 {
	return vec2{X: v.X * s, Y: v.Y * s}
}

func (v vec2) add(o vec2) vec2 {
	return vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v vec2) isZero() bool {
	return v.X == 0 && v.Y == 0
}

// perp rotates the vector 90 degrees. The rotation sign is deliberately
// fixed rather than chosen per target, so strafing direction can flip as
// the target line swings.
func (v vec2) perp() vec2 {
	return vec2{X: -v.Y, Y: v.X}
}

func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// wrapAngle maps an angle into (-pi, pi].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
