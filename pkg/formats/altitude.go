// Package formats reads and writes terrain altitude files.
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// Altitude table errors.
var (
	ErrInvalidAltitudeMagic       = errors.New("invalid altitude table magic: expected 'GRAT'")
	ErrUnsupportedAltitudeVersion = errors.New("unsupported altitude table version")
	ErrTruncatedAltitudeData      = errors.New("truncated altitude table data")
	ErrInvalidAltitudeSize        = errors.New("invalid altitude table size")
)

const (
	altitudeMagic   = "GRAT"
	altitudeHeader  = 14 // magic, version, width, depth
	altitudeCellLen = 20 // four corners and flags
	maxAltitudeSide = 4096
)

// Version is a file format version.
type Version struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Corner indices into AltitudeCell.Corners.
const (
	SouthWest = iota
	SouthEast
	NorthWest
	NorthEast
)

// AltitudeCell is one grid cell with an altitude at each corner. Altitudes
// grow downwards: smaller values are higher ground.
type AltitudeCell struct {
	Corners [4]float32
	Flags   uint32
}

// AltitudeTable is a grid of cells in the GRAT layout. Cell (x, y) is at
// Cells[y*Width+x] and y grows northwards.
type AltitudeTable struct {
	Version Version
	Width   int // Cells along X
	Depth   int // Cells along Y
	Cells   []AltitudeCell
}

// NewAltitudeTable creates a flat table of width x depth cells.
func NewAltitudeTable(width, depth int) (*AltitudeTable, error) {
	if width <= 0 || depth <= 0 || width > maxAltitudeSide || depth > maxAltitudeSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidAltitudeSize, width, depth)
	}
	return &AltitudeTable{
		Version: Version{Major: 1, Minor: 2},
		Width:   width,
		Depth:   depth,
		Cells:   make([]AltitudeCell, width*depth),
	}, nil
}

// Cell returns the cell at (x, y), or nil outside the table.
func (t *AltitudeTable) Cell(x, y int) *AltitudeCell {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Depth {
		return nil
	}
	return &t.Cells[y*t.Width+x]
}

// ParseAltitudeTable parses a table from raw bytes.
func ParseAltitudeTable(data []byte) (*AltitudeTable, error) {
	if len(data) < altitudeHeader {
		return nil, ErrTruncatedAltitudeData
	}
	if string(data[0:4]) != altitudeMagic {
		return nil, ErrInvalidAltitudeMagic
	}

	// Stored as [minor, major]
	version := Version{Major: data[5], Minor: data[4]}
	if version.Major < 1 || version.Major > 3 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAltitudeVersion, version)
	}

	width := binary.LittleEndian.Uint32(data[6:10])
	depth := binary.LittleEndian.Uint32(data[10:14])
	if width == 0 || depth == 0 || width > maxAltitudeSide || depth > maxAltitudeSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidAltitudeSize, width, depth)
	}

	t := &AltitudeTable{
		Version: version,
		Width:   int(width),
		Depth:   int(depth),
		Cells:   make([]AltitudeCell, int(width)*int(depth)),
	}

	r := bytes.NewReader(data[altitudeHeader:])
	if r.Len() < len(t.Cells)*altitudeCellLen {
		return nil, fmt.Errorf("%w: %d cells need %d bytes, have %d",
			ErrTruncatedAltitudeData, len(t.Cells), len(t.Cells)*altitudeCellLen, r.Len())
	}
	if err := binary.Read(r, binary.LittleEndian, t.Cells); err != nil {
		return nil, fmt.Errorf("reading cells: %w", err)
	}
	return t, nil
}

// ReadAltitudeFile parses a table from disk.
func ReadAltitudeFile(path string) (*AltitudeTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading altitude table: %w", err)
	}
	return ParseAltitudeTable(data)
}

// MarshalBinary encodes the table in the GRAT layout.
func (t *AltitudeTable) MarshalBinary() ([]byte, error) {
	if len(t.Cells) != t.Width*t.Depth {
		return nil, fmt.Errorf("%w: %dx%d table has %d cells", ErrInvalidAltitudeSize, t.Width, t.Depth, len(t.Cells))
	}

	buf := bytes.NewBuffer(make([]byte, 0, altitudeHeader+len(t.Cells)*altitudeCellLen))
	buf.WriteString(altitudeMagic)
	buf.WriteByte(t.Version.Minor)
	buf.WriteByte(t.Version.Major)
	binary.Write(buf, binary.LittleEndian, uint32(t.Width))
	binary.Write(buf, binary.LittleEndian, uint32(t.Depth))
	if err := binary.Write(buf, binary.LittleEndian, t.Cells); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Range returns the lowest and highest altitude value in the table.
func (t *AltitudeTable) Range() (min, max float32) {
	if len(t.Cells) == 0 {
		return 0, 0
	}
	min = t.Cells[0].Corners[0]
	max = min
	for _, c := range t.Cells {
		for _, h := range c.Corners {
			min = minf(min, h)
			max = maxf(max, h)
		}
	}
	return min, max
}

// Elevations returns a (Width+1) x (Depth+1) grid of upward elevations,
// row-major with row 0 at the southern edge. Each grid point averages the
// corners of the cells that share it, so tables with cracks between cells
// still yield a continuous surface.
func (t *AltitudeTable) Elevations() (width, depth int, heights []float32) {
	width, depth = t.Width+1, t.Depth+1
	heights = make([]float32, width*depth)
	counts := make([]uint8, width*depth)

	add := func(x, y int, altitude float32) {
		i := y*width + x
		heights[i] -= altitude
		counts[i]++
	}
	for y := range t.Depth {
		for x := range t.Width {
			c := &t.Cells[y*t.Width+x]
			add(x, y, c.Corners[SouthWest])
			add(x+1, y, c.Corners[SouthEast])
			add(x, y+1, c.Corners[NorthWest])
			add(x+1, y+1, c.Corners[NorthEast])
		}
	}
	for i, n := range counts {
		heights[i] /= float32(n)
	}
	return width, depth, heights
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
