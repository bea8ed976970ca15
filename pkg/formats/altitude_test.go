package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// slopeTable builds a table whose altitude drops by one per cell eastwards.
func slopeTable(t *testing.T, width, depth int) *AltitudeTable {
	t.Helper()
	tbl, err := NewAltitudeTable(width, depth)
	if err != nil {
		t.Fatalf("NewAltitudeTable: %v", err)
	}
	for y := range depth {
		for x := range width {
			c := tbl.Cell(x, y)
			c.Corners = [4]float32{-float32(x), -float32(x + 1), -float32(x), -float32(x + 1)}
		}
	}
	return tbl
}

func TestAltitudeTableRoundTrip(t *testing.T) {
	tbl := slopeTable(t, 3, 2)
	tbl.Cell(1, 1).Flags = 5

	data, err := tbl.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(data) != altitudeHeader+6*altitudeCellLen {
		t.Errorf("expected %d bytes, got %d", altitudeHeader+6*altitudeCellLen, len(data))
	}

	got, err := ParseAltitudeTable(data)
	if err != nil {
		t.Fatalf("ParseAltitudeTable: %v", err)
	}
	if got.Version.String() != "1.2" {
		t.Errorf("expected version 1.2, got %s", got.Version)
	}
	if got.Width != 3 || got.Depth != 2 {
		t.Errorf("expected 3x2, got %dx%d", got.Width, got.Depth)
	}
	if got.Cell(1, 1).Flags != 5 {
		t.Errorf("expected flags 5, got %d", got.Cell(1, 1).Flags)
	}
	if got.Cell(2, 0).Corners != tbl.Cell(2, 0).Corners {
		t.Errorf("corners differ: %v vs %v", got.Cell(2, 0).Corners, tbl.Cell(2, 0).Corners)
	}
}

func TestParseAltitudeTableErrors(t *testing.T) {
	valid, err := slopeTable(t, 2, 2).MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	badVersion := bytes.Clone(valid)
	badVersion[5] = 9

	badSize := bytes.Clone(valid)
	binary.LittleEndian.PutUint32(badSize[6:], 0)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", []byte("GRAT"), ErrTruncatedAltitudeData},
		{"bad magic", append([]byte("XXXX"), valid[4:]...), ErrInvalidAltitudeMagic},
		{"bad version", badVersion, ErrUnsupportedAltitudeVersion},
		{"zero width", badSize, ErrInvalidAltitudeSize},
		{"missing cells", valid[:len(valid)-1], ErrTruncatedAltitudeData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAltitudeTable(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestReadAltitudeFile(t *testing.T) {
	data, err := slopeTable(t, 2, 2).MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	path := filepath.Join(t.TempDir(), "slope.gat")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := ReadAltitudeFile(path)
	if err != nil {
		t.Fatalf("ReadAltitudeFile: %v", err)
	}
	if tbl.Width != 2 || tbl.Depth != 2 {
		t.Errorf("expected 2x2, got %dx%d", tbl.Width, tbl.Depth)
	}

	if _, err := ReadAltitudeFile(filepath.Join(t.TempDir(), "none.gat")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestNewAltitudeTableSize(t *testing.T) {
	for _, size := range [][2]int{{0, 4}, {4, -1}, {maxAltitudeSide + 1, 1}} {
		if _, err := NewAltitudeTable(size[0], size[1]); !errors.Is(err, ErrInvalidAltitudeSize) {
			t.Errorf("%v: expected ErrInvalidAltitudeSize, got %v", size, err)
		}
	}
}

func TestAltitudeRange(t *testing.T) {
	min, max := slopeTable(t, 4, 1).Range()
	if min != -4 || max != 0 {
		t.Errorf("expected range [-4, 0], got [%v, %v]", min, max)
	}

	empty := &AltitudeTable{}
	if min, max := empty.Range(); min != 0 || max != 0 {
		t.Errorf("expected empty range, got [%v, %v]", min, max)
	}
}

func TestElevations(t *testing.T) {
	w, d, heights := slopeTable(t, 3, 2).Elevations()
	if w != 4 || d != 3 {
		t.Fatalf("expected 4x3 grid, got %dx%d", w, d)
	}

	// Altitude is inverted: the slope rises eastwards.
	for y := range d {
		for x := range w {
			if got := heights[y*w+x]; got != float32(x) {
				t.Errorf("(%d,%d): expected %v, got %v", x, y, float32(x), got)
			}
		}
	}
}

func TestElevationsAverageCracks(t *testing.T) {
	tbl, err := NewAltitudeTable(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	// The shared edge disagrees between the two cells.
	tbl.Cell(0, 0).Corners[SouthEast] = -2
	tbl.Cell(1, 0).Corners[SouthWest] = -4

	w, _, heights := tbl.Elevations()
	if got := heights[1]; got != 3 {
		t.Errorf("expected shared corner 3, got %v", got)
	}
	if got := heights[w+1]; got != 0 {
		t.Errorf("expected untouched corner 0, got %v", got)
	}
}
