// Package roam implements a ROAM (Real-time Optimally Adapting Mesh)
// terrain: per-patch triangle bintrees that split and merge each frame
// against a view-dependent error threshold, with crack-free joins between
// patches and tile paging for streamed terrain.
package roam

import (
	"fmt"
	"image"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-roam/internal/engine/terrain"
	"github.com/Faultbox/midgard-roam/internal/logger"
	"github.com/Faultbox/midgard-roam/pkg/math"
)

// Stats describes the work done by the last SetView call.
type Stats struct {
	Frame     int
	Splits    int // Triangles added by splits
	Merges    int // Triangles removed by merges
	PagedIn   int
	PagedOut  int
	Patches   int
	Triangles int  // Triangles in the vertex buffers
	Nodes     int  // Tree nodes in use
	Budgeted  bool // Refinement stopped at the operation budget
}

// Landscape drives refinement of a whole terrain: it owns the patches,
// pages tiles in and out as the viewer moves, and runs the split/merge
// loop each frame. It is not safe for concurrent use.
type Landscape struct {
	frustum terrain.ViewFrustum
	data    terrain.TerrainData
	opts    options
	log     *zap.Logger

	patchSize int
	pool      *NodePool
	queue     *QueueManager
	grid      *PatchGrid
	patches   []*Patch
	spare     []*Patch // Paged out, ready for reuse

	staticAppearance *terrain.Appearance
	initialized      bool
	stats            Stats
	frame            int
}

// NewLandscape validates the terrain against the options and prepares an
// empty landscape. Patches are built by Initialize.
func NewLandscape(frustum terrain.ViewFrustum, data terrain.TerrainData, opts ...Option) (*Landscape, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Named("roam")
	}
	if o.appearanceGen == nil {
		o.appearanceGen = &terrain.DefaultAppearanceGenerator{}
	}
	if frustum == nil {
		frustum = noFrustum{}
	}

	l := &Landscape{
		frustum: frustum,
		data:    data,
		opts:    o,
		log:     o.log,
		pool:    NewNodePool(o.poolSize),
		queue:   NewQueueManager(o.queue),
	}

	switch d := data.(type) {
	case terrain.StaticTerrainData:
		size := o.patchSize
		if size == 0 {
			size = DefaultPatchSize
		}
		if err := validateStatic(d, size); err != nil {
			return nil, err
		}
		l.patchSize = size

	case terrain.TiledTerrainData:
		size := d.TileSize()
		if !isPowerOfTwo(size) {
			return nil, fmt.Errorf("tile size %d: %w", size, ErrNotPowerOfTwo)
		}
		if o.patchSize != 0 && o.patchSize != size {
			l.log.Warn("patch size ignored for tiled terrain",
				zap.Int("requested", o.patchSize), zap.Int("tileSize", size))
		}
		l.patchSize = size

	default:
		l.log.Warn("unsupported terrain source, no patches will be built",
			zap.Stringer("source", data.SourceType()))
	}

	return l, nil
}

func validateStatic(d terrain.StaticTerrainData, size int) error {
	if !isPowerOfTwo(size) {
		return fmt.Errorf("patch size %d: %w", size, ErrNotPowerOfTwo)
	}
	cellsX, cellsY := d.GridWidth()-1, d.GridDepth()-1
	if size > cellsX || size > cellsY {
		return fmt.Errorf("patch size %d for %dx%d grid: %w", size, d.GridWidth(), d.GridDepth(), ErrPatchTooLarge)
	}
	if cellsX%size != 0 || cellsY%size != 0 {
		return fmt.Errorf("patch size %d for %dx%d grid: %w", size, d.GridWidth(), d.GridDepth(), ErrGridMismatch)
	}
	return nil
}

// Initialize builds the patches around the starting viewpoint and refines
// them. Calling it again drops all refinement and starts over from the
// root triangles at the new viewpoint, as after a teleport.
func (l *Landscape) Initialize(position, direction math.Vec3) {
	l.queue.Clear()
	l.frustum.ViewingPlatformMoved()
	l.stats = Stats{}

	if l.initialized {
		for _, p := range l.patches {
			// Reset releases nodes; none of them may stay queued
			l.queue.Clear()
			p.Reset(position, l.queue)
		}
	}

	switch d := l.data.(type) {
	case terrain.StaticTerrainData:
		if l.grid == nil {
			l.createStaticPatches(d, position)
		}
	case terrain.TiledTerrainData:
		if l.grid == nil {
			l.grid = NewPatchGrid(image.Rectangle{})
		}
		l.pageTiles(d, position, direction)
	}
	l.initialized = true

	l.log.Debug("landscape initialized",
		zap.Stringer("source", l.data.SourceType()),
		zap.Int("patchSize", l.patchSize),
		zap.Int("patches", len(l.patches)))

	l.refine(position)
}

// SetView refines the mesh for a new viewpoint. It pages tiles for tiled
// terrain, runs the split/merge loop and rebuilds every vertex buffer.
func (l *Landscape) SetView(position, direction math.Vec3) {
	if !l.initialized {
		l.Initialize(position, direction)
		return
	}

	l.queue.Clear()
	l.frustum.ViewingPlatformMoved()
	l.stats = Stats{}

	if d, ok := l.data.(terrain.TiledTerrainData); ok {
		l.pageTiles(d, position, direction)
	}
	l.refine(position)
}

// refine runs the split/merge loop for the patches in place.
func (l *Landscape) refine(position math.Vec3) {
	l.frame++
	l.stats.Frame = l.frame

	// Paging may have queued nodes with stale scores; start clean
	l.queue.Clear()
	for _, p := range l.patches {
		p.SetView(position, l.frustum, l.queue)
	}

	accuracy := l.opts.accuracy
	budget := l.opts.maxOperations
	ops := 0
	for {
		s := l.queue.SplitCandidate()
		split := s != nil && s.variance > accuracy
		var m *TreeNode
		if !split {
			m = l.queue.MergeCandidate()
			if m == nil || m.diamondVariance >= accuracy {
				break
			}
		}

		if budget > 0 && ops >= budget {
			l.stats.Budgeted = true
			break
		}
		ops++

		if split {
			added := s.split(position, l.frustum, l.queue)
			if added == 0 {
				// Cannot split further; drop it so the loop moves on
				l.queue.RemoveTriangle(s)
			}
			l.stats.Splits += added
			continue
		}
		l.stats.Merges += m.merge(position, l.queue)
	}

	triangles := 0
	for _, p := range l.patches {
		p.UpdateGeometry()
		triangles += p.TriangleCount()
	}
	l.queue.Clear()

	l.stats.Patches = len(l.patches)
	l.stats.Triangles = triangles
	l.stats.Nodes = l.pool.InUse()

	l.log.Debug("frame refined",
		zap.Int("frame", l.stats.Frame),
		zap.Int("splits", l.stats.Splits),
		zap.Int("merges", l.stats.Merges),
		zap.Int("triangles", triangles),
		zap.Bool("budgeted", l.stats.Budgeted))
}

func (l *Landscape) createStaticPatches(d terrain.StaticTerrainData, position math.Vec3) {
	tilesX := (d.GridWidth() - 1) / l.patchSize
	tilesY := (d.GridDepth() - 1) / l.patchSize
	l.grid = NewPatchGrid(image.Rect(0, 0, tilesX, tilesY))

	// Static terrain shares one appearance draped over the whole grid
	l.staticAppearance = l.opts.appearanceGen.CreateAppearance()
	l.staticAppearance.Texture = d.Texture()

	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			p := l.newPatch()
			p.SetOrigin(tx*l.patchSize, ty*l.patchSize)
			p.SetAppearance(l.staticAppearance)
			p.MakeActive()
			l.grid.AddPatch(p, tx, ty, position, l.queue)
			l.patches = append(l.patches, p)
		}
	}
}

// pageTiles moves the tile window to follow the viewer. Patches that stay
// inside the window are kept as they are.
func (l *Landscape) pageTiles(d terrain.TiledTerrainData, position, direction math.Vec3) {
	tileWorldX := d.GridXStep() * float32(l.patchSize)
	tileWorldY := d.GridYStep() * float32(l.patchSize)
	bounds := viewTileBounds(position, direction, tileWorldX, tileWorldY, l.opts.tileWindow)
	if avail, ok := d.AvailableTiles(); ok {
		bounds = bounds.Intersect(avail)
	}

	if l.initialized && bounds == l.grid.Bounds() {
		return
	}

	for _, p := range l.grid.PrepareNewBounds(bounds) {
		p.Clear()
		l.spare = append(l.spare, p)
		l.stats.PagedOut++
		l.log.Debug("patch paged out", zap.Stringer("patch", p))
	}
	l.patches = slices.DeleteFunc(l.patches, func(p *Patch) bool { return !p.Active() })

	d.SetActiveBounds(bounds)

	for ty := bounds.Min.Y; ty < bounds.Max.Y; ty++ {
		for tx := bounds.Min.X; tx < bounds.Max.X; tx++ {
			if l.grid.Patch(tx, ty) != nil {
				continue
			}
			p := l.newPatch()
			p.SetOrigin(tx*l.patchSize, ty*l.patchSize)

			app := p.Appearance()
			if app == nil {
				app = l.opts.appearanceGen.CreateAppearance()
				p.SetAppearance(app)
			}
			app.Texture = d.Texture(tx, ty)

			p.MakeActive()
			l.grid.AddPatch(p, tx, ty, position, l.queue)
			l.patches = append(l.patches, p)
			l.stats.PagedIn++
			l.log.Debug("patch paged in", zap.Stringer("patch", p))
		}
	}
}

// newPatch reuses a paged-out patch or creates one.
func (l *Landscape) newPatch() *Patch {
	if n := len(l.spare); n > 0 {
		p := l.spare[n-1]
		l.spare[n-1] = nil
		l.spare = l.spare[:n-1]
		return p
	}
	// Size was validated by NewLandscape
	p, _ := NewPatch(l.data, l.patchSize, l.frustum, l.pool)
	return p
}

// Patches returns the active patches.
func (l *Landscape) Patches() []*Patch { return l.patches }

// Patch returns the active patch at a tile, or nil.
func (l *Landscape) Patch(tileX, tileY int) *Patch {
	if l.grid == nil {
		return nil
	}
	return l.grid.Patch(tileX, tileY)
}

// TileBounds returns the tiles currently covered by patches.
func (l *Landscape) TileBounds() image.Rectangle {
	if l.grid == nil {
		return image.Rectangle{}
	}
	return l.grid.Bounds()
}

// Layout draws the occupied tiles, north at the top.
func (l *Landscape) Layout() string {
	if l.grid == nil {
		return ""
	}
	return l.grid.String()
}

// PatchSize returns the patch side length in grid cells, 0 when the source
// is unsupported.
func (l *Landscape) PatchSize() int { return l.patchSize }

// Accuracy returns the split threshold in radians.
func (l *Landscape) Accuracy() float32 { return l.opts.accuracy }

// TriangleCount returns the number of triangles in all vertex buffers.
func (l *Landscape) TriangleCount() int {
	n := 0
	for _, p := range l.patches {
		n += p.TriangleCount()
	}
	return n
}

// Stats returns the statistics of the last frame.
func (l *Landscape) Stats() Stats { return l.stats }

// Pool returns the node pool shared by the patches.
func (l *Landscape) Pool() *NodePool { return l.pool }
