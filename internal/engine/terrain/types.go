// Package terrain defines the terrain data sources consumed by the ROAM
// landscape and provides in-memory, image-backed and procedural sources.
package terrain

import (
	"fmt"
	"image"

	"github.com/Faultbox/midgard-roam/pkg/math"
)

// SourceType discriminates how terrain data is laid out.
type SourceType int

// Source type constants.
const (
	StaticData   SourceType = iota // One finite grid
	TiledData                      // Unbounded grid streamed in tiles
	FreeformData                   // Irregular data, not supported by the landscape yet
)

// String returns a human-readable source type name.
func (t SourceType) String() string {
	switch t {
	case StaticData:
		return "Static"
	case TiledData:
		return "Tiled"
	case FreeformData:
		return "Freeform"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// TerrainData supplies samples by grid coordinate.
//
// World positions follow one convention: x = gridX*GridXStep(),
// y = elevation, z = -gridY*GridYStep(). Grid Y therefore grows towards -Z.
type TerrainData interface {
	SourceType() SourceType

	// Coordinate returns the world position of a grid sample.
	Coordinate(gridX, gridY int) math.Vec3
	// TexCoord returns the texture coordinate of a grid sample.
	TexCoord(gridX, gridY int) [2]float32
	// Color returns the RGB colour (0-1) of a grid sample.
	Color(gridX, gridY int) [3]float32

	HasTexture() bool
	HasColor() bool

	GridXStep() float32
	GridYStep() float32
}

// StaticTerrainData is a finite grid of samples.
type StaticTerrainData interface {
	TerrainData

	GridWidth() int
	GridDepth() int
	Texture() image.Image
}

// TiledTerrainData is an unbounded grid fetched in square tiles of
// TileSize() grid cells.
type TiledTerrainData interface {
	TerrainData

	TileSize() int
	Texture(tileX, tileY int) image.Image
	// SetActiveBounds tells the source which tiles are in use so it can
	// release or prefetch others.
	SetActiveBounds(bounds image.Rectangle)
	// AvailableTiles returns the tiles that hold data. ok is false when the
	// source is unbounded.
	AvailableTiles() (bounds image.Rectangle, ok bool)
}

// Visibility is the result of testing a triangle against a view volume.
type Visibility int8

// Visibility constants. Undefined is the zero value: not tested yet.
const (
	Undefined Visibility = iota
	Out
	Clipped
	In
)

// String returns a human-readable visibility name.
func (v Visibility) String() string {
	switch v {
	case Undefined:
		return "Undefined"
	case Out:
		return "Out"
	case Clipped:
		return "Clipped"
	case In:
		return "In"
	default:
		return fmt.Sprintf("Unknown(%d)", int(v))
	}
}

// ViewFrustum answers containment queries for triangles.
type ViewFrustum interface {
	TriangleVisibility(p1, p2, p3 math.Vec3) Visibility
	// ViewingPlatformMoved signals that the view changed and any cached
	// planes must be rebuilt.
	ViewingPlatformMoved()
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Contains reports whether p lies inside the box, borders included.
func (b Bounds) Contains(p math.Vec3) bool {
	return p.X >= b.Min[0] && p.X <= b.Max[0] &&
		p.Y >= b.Min[1] && p.Y <= b.Max[1] &&
		p.Z >= b.Min[2] && p.Z <= b.Max[2]
}
