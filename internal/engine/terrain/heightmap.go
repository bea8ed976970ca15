package terrain

import (
	"errors"
	"fmt"
	"image"

	"github.com/Faultbox/midgard-roam/pkg/math"
)

// ErrInvalidGrid is returned when grid dimensions and sample data disagree.
var ErrInvalidGrid = errors.New("invalid terrain grid")

// Heightmap is an in-memory StaticTerrainData.
type Heightmap struct {
	width   int       // Samples along grid X
	depth   int       // Samples along grid Y
	heights []float32 // Row-major: heights[gridY*width+gridX]
	xStep   float32
	yStep   float32

	ramp    *ColorRamp
	texture image.Image
}

// NewHeightmap creates a heightmap of width x depth samples. heights must
// hold width*depth values in row-major order (grid Y major).
func NewHeightmap(width, depth int, heights []float32, xStep, yStep float32) (*Heightmap, error) {
	if width < 2 || depth < 2 {
		return nil, fmt.Errorf("%w: need at least 2x2 samples, got %dx%d", ErrInvalidGrid, width, depth)
	}
	if len(heights) != width*depth {
		return nil, fmt.Errorf("%w: %dx%d grid needs %d samples, got %d",
			ErrInvalidGrid, width, depth, width*depth, len(heights))
	}
	if xStep <= 0 || yStep <= 0 {
		return nil, fmt.Errorf("%w: grid steps must be positive (%v, %v)", ErrInvalidGrid, xStep, yStep)
	}

	return &Heightmap{
		width:   width,
		depth:   depth,
		heights: heights,
		xStep:   xStep,
		yStep:   yStep,
	}, nil
}

// NewHeightmapFunc samples fn at every grid point. fn receives world X and Z.
func NewHeightmapFunc(width, depth int, xStep, yStep float32, fn func(x, z float32) float32) (*Heightmap, error) {
	if width < 2 || depth < 2 {
		return nil, fmt.Errorf("%w: need at least 2x2 samples, got %dx%d", ErrInvalidGrid, width, depth)
	}
	heights := make([]float32, width*depth)
	for y := range depth {
		for x := range width {
			heights[y*width+x] = fn(float32(x)*xStep, -float32(y)*yStep)
		}
	}
	return NewHeightmap(width, depth, heights, xStep, yStep)
}

// SetColorRamp enables per-vertex colour from the given ramp. nil disables it.
func (h *Heightmap) SetColorRamp(r *ColorRamp) {
	h.ramp = r
}

// SetTexture sets the texture draped over the whole grid. nil disables it.
func (h *Heightmap) SetTexture(img image.Image) {
	h.texture = img
}

// SourceType implements TerrainData.
func (h *Heightmap) SourceType() SourceType { return StaticData }

// GridWidth implements StaticTerrainData.
func (h *Heightmap) GridWidth() int { return h.width }

// GridDepth implements StaticTerrainData.
func (h *Heightmap) GridDepth() int { return h.depth }

// GridXStep implements TerrainData.
func (h *Heightmap) GridXStep() float32 { return h.xStep }

// GridYStep implements TerrainData.
func (h *Heightmap) GridYStep() float32 { return h.yStep }

// HasColor implements TerrainData.
func (h *Heightmap) HasColor() bool { return h.ramp != nil }

// HasTexture implements TerrainData.
func (h *Heightmap) HasTexture() bool { return h.texture != nil }

// Texture implements StaticTerrainData.
func (h *Heightmap) Texture() image.Image { return h.texture }

// Height returns the raw sample at a grid point, clamped to the grid.
func (h *Heightmap) Height(gridX, gridY int) float32 {
	gridX = clampi(gridX, 0, h.width-1)
	gridY = clampi(gridY, 0, h.depth-1)
	return h.heights[gridY*h.width+gridX]
}

// Coordinate implements TerrainData.
func (h *Heightmap) Coordinate(gridX, gridY int) math.Vec3 {
	return math.Vec3{
		X: float32(gridX) * h.xStep,
		Y: h.Height(gridX, gridY),
		Z: -float32(gridY) * h.yStep,
	}
}

// TexCoord implements TerrainData. The texture spans the whole grid.
func (h *Heightmap) TexCoord(gridX, gridY int) [2]float32 {
	return [2]float32{
		float32(gridX) / float32(h.width-1),
		float32(gridY) / float32(h.depth-1),
	}
}

// Color implements TerrainData.
func (h *Heightmap) Color(gridX, gridY int) [3]float32 {
	if h.ramp == nil {
		return [3]float32{1, 1, 1}
	}
	return h.ramp.At(h.Height(gridX, gridY))
}

// HeightAt returns the bilinearly interpolated elevation at a world
// position. Positions outside the grid are clamped to its border.
func (h *Heightmap) HeightAt(worldX, worldZ float32) float32 {
	fx := worldX / h.xStep
	fy := -worldZ / h.yStep

	cellX := clampi(int(fx), 0, h.width-2)
	cellY := clampi(int(fy), 0, h.depth-2)

	// Fractional position within the cell (0-1)
	fracX := clampf(fx-float32(cellX), 0, 1)
	fracY := clampf(fy-float32(cellY), 0, 1)

	// South edge (lower grid Y): lerp between SW and SE
	south := h.Height(cellX, cellY)*(1-fracX) + h.Height(cellX+1, cellY)*fracX
	// North edge (higher grid Y): lerp between NW and NE
	north := h.Height(cellX, cellY+1)*(1-fracX) + h.Height(cellX+1, cellY+1)*fracX

	return south*(1-fracY) + north*fracY
}

// Extent returns the elevation range of all samples.
func (h *Heightmap) Extent() (minY, maxY float32) {
	minY, maxY = h.heights[0], h.heights[0]
	for _, v := range h.heights[1:] {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	return minY, maxY
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampi(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
