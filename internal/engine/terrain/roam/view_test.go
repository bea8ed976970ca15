package roam

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-roam/pkg/math"
)

func TestViewTileBounds(t *testing.T) {
	tests := []struct {
		name string
		pos  math.Vec3
		dir  math.Vec3
		want image.Rectangle
	}{
		{"north", math.Vec3{X: 4, Z: -4}, math.Vec3{Z: -1}, image.Rect(-4, -1, 4, 7)},
		{"south", math.Vec3{X: 4, Z: -4}, math.Vec3{Z: 1}, image.Rect(-4, -6, 4, 2)},
		{"east", math.Vec3{X: 4, Z: -4}, math.Vec3{X: 1}, image.Rect(-1, -4, 7, 4)},
		{"west", math.Vec3{X: 4, Z: -4}, math.Vec3{X: -1}, image.Rect(-6, -4, 2, 4)},
		{"north-east", math.Vec3{X: 4, Z: -4}, math.Vec3{X: 1, Z: -1}, image.Rect(-1, -1, 7, 7)},
		{"south-west", math.Vec3{X: 4, Z: -4}, math.Vec3{X: -1, Z: 1}, image.Rect(-6, -6, 2, 2)},
		{"aspect boundary", math.Vec3{X: 4, Z: -4}, math.Vec3{X: 1, Z: -2}, image.Rect(-1, -1, 7, 7)},
		{"straight down", math.Vec3{X: 4, Z: -4}, math.Vec3{Y: -1}, image.Rect(-1, -1, 7, 7)},
		{"negative tile", math.Vec3{X: -20, Z: 4}, math.Vec3{Z: -1}, image.Rect(-7, -2, 1, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, viewTileBounds(tt.pos, tt.dir, 8, 8, 8))
		})
	}
}
