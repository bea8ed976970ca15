package terrain

import (
	"image"
	"image/color"
	"slices"
)

// RampKey is one elevation/colour pair of a ColorRamp.
type RampKey struct {
	Height float32
	Color  [3]float32 // RGB, 0-1
}

// ColorRamp maps elevation to colour by linear interpolation between keys.
// Heights outside the key range take the colour of the nearest key.
type ColorRamp struct {
	keys []RampKey
}

// NewColorRamp builds a ramp from keys. Keys are sorted by height.
// An empty key set yields a ramp that always returns white.
func NewColorRamp(keys ...RampKey) *ColorRamp {
	k := slices.Clone(keys)
	slices.SortFunc(k, func(a, b RampKey) int {
		switch {
		case a.Height < b.Height:
			return -1
		case a.Height > b.Height:
			return 1
		}
		return 0
	})
	return &ColorRamp{keys: k}
}

// DefaultColorRamp spreads a sea/beach/grass/rock/snow ramp over the given
// elevation range.
func DefaultColorRamp(minY, maxY float32) *ColorRamp {
	span := maxY - minY
	at := func(f float32) float32 { return minY + f*span }
	return NewColorRamp(
		RampKey{at(0.00), [3]float32{0.10, 0.20, 0.55}},
		RampKey{at(0.18), [3]float32{0.20, 0.45, 0.75}},
		RampKey{at(0.22), [3]float32{0.85, 0.80, 0.55}},
		RampKey{at(0.30), [3]float32{0.30, 0.60, 0.20}},
		RampKey{at(0.65), [3]float32{0.35, 0.40, 0.25}},
		RampKey{at(0.80), [3]float32{0.50, 0.45, 0.40}},
		RampKey{at(1.00), [3]float32{0.95, 0.95, 0.98}},
	)
}

// Keys returns a copy of the ramp keys in ascending height order.
func (r *ColorRamp) Keys() []RampKey {
	return slices.Clone(r.keys)
}

// At returns the colour for elevation h.
func (r *ColorRamp) At(h float32) [3]float32 {
	n := len(r.keys)
	if n == 0 {
		return [3]float32{1, 1, 1}
	}
	if h <= r.keys[0].Height {
		return r.keys[0].Color
	}
	if h >= r.keys[n-1].Height {
		return r.keys[n-1].Color
	}

	i, _ := slices.BinarySearchFunc(r.keys, h, func(k RampKey, t float32) int {
		switch {
		case k.Height < t:
			return -1
		case k.Height > t:
			return 1
		}
		return 0
	})
	lo, hi := r.keys[i-1], r.keys[i]
	span := hi.Height - lo.Height
	if span <= 0 {
		return hi.Color
	}
	t := (h - lo.Height) / span
	return [3]float32{
		lo.Color[0] + (hi.Color[0]-lo.Color[0])*t,
		lo.Color[1] + (hi.Color[1]-lo.Color[1])*t,
		lo.Color[2] + (hi.Color[2]-lo.Color[2])*t,
	}
}

// RGBA returns the colour for elevation h as an opaque 8-bit colour.
func (r *ColorRamp) RGBA(h float32) color.RGBA {
	c := r.At(h)
	return color.RGBA{
		R: uint8(clampf(c[0], 0, 1)*255 + 0.5),
		G: uint8(clampf(c[1], 0, 1)*255 + 0.5),
		B: uint8(clampf(c[2], 0, 1)*255 + 0.5),
		A: 255,
	}
}

// Render paints a w x h block of grid samples starting at (gridX, gridY).
// Image row 0 is the northern (highest grid Y) row.
func (r *ColorRamp) Render(data TerrainData, gridX, gridY, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for row := range h {
		gy := gridY + h - 1 - row
		for col := range w {
			img.SetRGBA(col, row, r.RGBA(data.Coordinate(gridX+col, gy).Y))
		}
	}
	return img
}
