package math

import "github.com/chewxy/math32"

// Vec2 is a 2D vector, used for horizontal directions.
type Vec2 struct {
	X, Y float32
}

// Aspect returns |X| / |Y|, the slope of the vector against the Y axis.
// A vector lying on the X axis reports +Inf; the zero vector reports 1.
func (v Vec2) Aspect() float32 {
	ax, ay := math32.Abs(v.X), math32.Abs(v.Y)
	switch {
	case ax == 0 && ay == 0:
		return 1
	case ay == 0:
		return math32.Inf(1)
	}
	return ax / ay
}
