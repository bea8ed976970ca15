package roam

import (
	"image"
	"strings"

	"github.com/Faultbox/midgard-roam/pkg/math"
)

// PatchGrid indexes active patches by tile coordinate over a rectangle of
// tiles that moves with the viewer.
type PatchGrid struct {
	bounds  image.Rectangle
	cells   []*Patch // Row-major, row = tile Y
	scratch []*Patch
}

// NewPatchGrid creates an empty grid covering bounds.
func NewPatchGrid(bounds image.Rectangle) *PatchGrid {
	bounds = bounds.Canon()
	return &PatchGrid{
		bounds: bounds,
		cells:  make([]*Patch, bounds.Dx()*bounds.Dy()),
	}
}

// Bounds returns the covered tile rectangle.
func (g *PatchGrid) Bounds() image.Rectangle { return g.bounds }

func (g *PatchGrid) index(tileX, tileY int) (int, bool) {
	pt := image.Pt(tileX, tileY)
	if !pt.In(g.bounds) {
		return 0, false
	}
	return (tileY-g.bounds.Min.Y)*g.bounds.Dx() + (tileX - g.bounds.Min.X), true
}

// Patch returns the patch at a tile, nil when empty or out of bounds.
func (g *PatchGrid) Patch(tileX, tileY int) *Patch {
	i, ok := g.index(tileX, tileY)
	if !ok {
		return nil
	}
	return g.cells[i]
}

// PrepareNewBounds moves the grid to cover bounds. Patches inside both the
// old and new bounds stay in place; the others are removed from the grid
// and returned. Storage is reused when large enough.
func (g *PatchGrid) PrepareNewBounds(bounds image.Rectangle) []*Patch {
	bounds = bounds.Canon()

	var evicted []*Patch
	keep := g.scratch[:0]
	for _, p := range g.cells {
		if p == nil {
			continue
		}
		if p.tile.In(bounds) {
			keep = append(keep, p)
		} else {
			evicted = append(evicted, p)
		}
	}

	n := bounds.Dx() * bounds.Dy()
	if cap(g.cells) < n {
		g.cells = make([]*Patch, n)
	} else {
		g.cells = g.cells[:n]
		clear(g.cells)
	}
	g.bounds = bounds

	for _, p := range keep {
		i, _ := g.index(p.tile.X, p.tile.Y)
		g.cells[i] = p
	}
	clear(keep)
	g.scratch = keep[:0]

	return evicted
}

// AddPatch stores p at a tile and joins it to the patches already on its
// four sides. It returns false when the tile is outside the grid.
func (g *PatchGrid) AddPatch(p *Patch, tileX, tileY int, position math.Vec3, qm *QueueManager) bool {
	i, ok := g.index(tileX, tileY)
	if !ok {
		return false
	}
	g.cells[i] = p

	p.SetWestNeighbour(g.Patch(tileX-1, tileY), position, qm)
	p.SetSouthNeighbour(g.Patch(tileX, tileY-1), position, qm)
	p.SetEastNeighbour(g.Patch(tileX+1, tileY), position, qm)
	p.SetNorthNeighbour(g.Patch(tileX, tileY+1), position, qm)
	return true
}

// Len returns the number of occupied cells.
func (g *PatchGrid) Len() int {
	n := 0
	for _, p := range g.cells {
		if p != nil {
			n++
		}
	}
	return n
}

// String draws the grid, north at the top, X for occupied cells.
func (g *PatchGrid) String() string {
	var b strings.Builder
	b.WriteString(g.bounds.String())
	b.WriteByte('\n')
	for y := g.bounds.Max.Y - 1; y >= g.bounds.Min.Y; y-- {
		for x := g.bounds.Min.X; x < g.bounds.Max.X; x++ {
			if g.Patch(x, y) != nil {
				b.WriteByte('X')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
