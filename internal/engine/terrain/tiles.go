package terrain

import (
	"fmt"
	"image"
	"sync"

	"github.com/Faultbox/midgard-roam/pkg/math"
)

// HeightFunc returns the elevation at a world position.
type HeightFunc func(x, z float32) float32

// NoiseTiles is a procedural TiledTerrainData. Samples come from a height
// function; tile textures are rendered from an optional colour ramp and
// cached while their tile is inside the active bounds.
type NoiseTiles struct {
	height   HeightFunc
	tileSize int
	xStep    float32
	yStep    float32
	ramp     *ColorRamp

	available image.Rectangle
	bounded   bool

	mu       sync.Mutex
	active   image.Rectangle
	textures map[image.Point]image.Image
}

// NewNoiseTiles creates a tiled source with tileSize grid cells per tile.
func NewNoiseTiles(height HeightFunc, tileSize int, xStep, yStep float32) (*NoiseTiles, error) {
	if height == nil {
		return nil, fmt.Errorf("%w: nil height function", ErrInvalidGrid)
	}
	if tileSize < 1 {
		return nil, fmt.Errorf("%w: tile size %d", ErrInvalidGrid, tileSize)
	}
	if xStep <= 0 || yStep <= 0 {
		return nil, fmt.Errorf("%w: grid steps must be positive (%v, %v)", ErrInvalidGrid, xStep, yStep)
	}
	return &NoiseTiles{
		height:   height,
		tileSize: tileSize,
		xStep:    xStep,
		yStep:    yStep,
		textures: make(map[image.Point]image.Image),
	}, nil
}

// SetAvailable limits the source to the given tile rectangle.
func (t *NoiseTiles) SetAvailable(r image.Rectangle) {
	t.available = r
	t.bounded = true
}

// SetColorRamp enables per-vertex colour and tile textures.
func (t *NoiseTiles) SetColorRamp(r *ColorRamp) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ramp = r
	clear(t.textures)
}

// SourceType implements TerrainData.
func (t *NoiseTiles) SourceType() SourceType { return TiledData }

// TileSize implements TiledTerrainData.
func (t *NoiseTiles) TileSize() int { return t.tileSize }

// GridXStep implements TerrainData.
func (t *NoiseTiles) GridXStep() float32 { return t.xStep }

// GridYStep implements TerrainData.
func (t *NoiseTiles) GridYStep() float32 { return t.yStep }

// HasColor implements TerrainData.
func (t *NoiseTiles) HasColor() bool { return t.ramp != nil }

// HasTexture implements TerrainData.
func (t *NoiseTiles) HasTexture() bool { return t.ramp != nil }

// Coordinate implements TerrainData.
func (t *NoiseTiles) Coordinate(gridX, gridY int) math.Vec3 {
	x := float32(gridX) * t.xStep
	z := -float32(gridY) * t.yStep
	return math.Vec3{X: x, Y: t.height(x, z), Z: z}
}

// TexCoord implements TerrainData. Coordinates are measured in tiles, so
// the integer part selects the tile and the fraction is the position in
// that tile's texture.
func (t *NoiseTiles) TexCoord(gridX, gridY int) [2]float32 {
	return [2]float32{
		float32(gridX) / float32(t.tileSize),
		float32(gridY) / float32(t.tileSize),
	}
}

// Color implements TerrainData.
func (t *NoiseTiles) Color(gridX, gridY int) [3]float32 {
	if t.ramp == nil {
		return [3]float32{1, 1, 1}
	}
	return t.ramp.At(t.Coordinate(gridX, gridY).Y)
}

// Texture implements TiledTerrainData. Textures of tiles inside the active
// bounds are cached.
func (t *NoiseTiles) Texture(tileX, tileY int) image.Image {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ramp == nil {
		return nil
	}
	key := image.Pt(tileX, tileY)
	if img, ok := t.textures[key]; ok {
		return img
	}
	img := t.ramp.Render(t, tileX*t.tileSize, tileY*t.tileSize, t.tileSize+1, t.tileSize+1)
	if key.In(t.active) {
		t.textures[key] = img
	}
	return img
}

// SetActiveBounds implements TiledTerrainData. Cached textures outside the
// new bounds are released.
func (t *NoiseTiles) SetActiveBounds(bounds image.Rectangle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.active = bounds
	for key := range t.textures {
		if !key.In(bounds) {
			delete(t.textures, key)
		}
	}
}

// ActiveBounds returns the last rectangle passed to SetActiveBounds.
func (t *NoiseTiles) ActiveBounds() image.Rectangle {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// CachedTextures returns the number of cached tile textures.
func (t *NoiseTiles) CachedTextures() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.textures)
}

// AvailableTiles implements TiledTerrainData.
func (t *NoiseTiles) AvailableTiles() (image.Rectangle, bool) {
	return t.available, t.bounded
}
