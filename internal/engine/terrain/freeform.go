package terrain

import "github.com/Faultbox/midgard-roam/pkg/math"

// Freeform marks terrain without a regular grid. The landscape recognises
// the source type but builds no patches for it.
type Freeform struct{}

// SourceType implements TerrainData.
func (Freeform) SourceType() SourceType { return FreeformData }

// Coordinate implements TerrainData.
func (Freeform) Coordinate(gridX, gridY int) math.Vec3 { return math.Vec3{} }

// TexCoord implements TerrainData.
func (Freeform) TexCoord(gridX, gridY int) [2]float32 { return [2]float32{} }

// Color implements TerrainData.
func (Freeform) Color(gridX, gridY int) [3]float32 { return [3]float32{1, 1, 1} }

// HasTexture implements TerrainData.
func (Freeform) HasTexture() bool { return false }

// HasColor implements TerrainData.
func (Freeform) HasColor() bool { return false }

// GridXStep implements TerrainData.
func (Freeform) GridXStep() float32 { return 1 }

// GridYStep implements TerrainData.
func (Freeform) GridYStep() float32 { return 1 }
