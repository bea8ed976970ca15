package roam

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-roam/pkg/math"
)

// viewTileBounds picks the window of tiles to keep loaded for a viewer.
//
// The window is window tiles on a side. Along an axis the gaze points down,
// it starts one tile behind the viewer and extends forward; along other
// axes it is centred on the viewer. An axis counts as "pointed down" when
// the gaze is not nearly perpendicular to it (aspect ratio test against 0.5
// and 2).
func viewTileBounds(position, direction math.Vec3, tileWorldX, tileWorldY float32, window int) image.Rectangle {
	tx := int(math32.Floor(position.X / tileWorldX))
	ty := int(math32.Floor(-position.Z / tileWorldY))

	// Gaze in grid space: grid Y grows towards -Z
	gaze := math.Vec2{X: direction.X, Y: -direction.Z}
	aspect := gaze.Aspect()

	biasX := aspect >= 0.5
	biasY := aspect <= 2

	minX, maxX := windowSpan(tx, window, biasX, gaze.X >= 0)
	minY, maxY := windowSpan(ty, window, biasY, gaze.Y >= 0)
	return image.Rect(minX, minY, maxX, maxY)
}

// windowSpan returns the half-open tile range along one axis.
func windowSpan(t, window int, biased, forward bool) (int, int) {
	if !biased {
		lo := t - window/2
		return lo, lo + window
	}
	if forward {
		return t - 1, t - 1 + window
	}
	return t + 2 - window, t + 2
}
