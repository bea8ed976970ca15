package terrain

import "image"

// Appearance describes how one patch should be shaded.
type Appearance struct {
	ID       int
	Texture  image.Image
	Lighting bool
}

// AppearanceGenerator creates a fresh appearance for each new patch.
type AppearanceGenerator interface {
	CreateAppearance() *Appearance
}

// DefaultAppearanceGenerator hands out lit appearances with increasing IDs.
type DefaultAppearanceGenerator struct {
	next int
}

// CreateAppearance returns a new lit appearance with no texture.
func (g *DefaultAppearanceGenerator) CreateAppearance() *Appearance {
	g.next++
	return &Appearance{ID: g.next, Lighting: true}
}
