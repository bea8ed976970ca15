package terrain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/midgard-roam/pkg/formats"
)

func writeAltitudeTable(t *testing.T, width, depth int) string {
	t.Helper()
	tbl, err := formats.NewAltitudeTable(width, depth)
	if err != nil {
		t.Fatalf("NewAltitudeTable: %v", err)
	}
	for i := range tbl.Cells {
		tbl.Cells[i].Corners = [4]float32{-10, -10, -10, -10}
	}
	data, err := tbl.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	path := filepath.Join(t.TempDir(), "plateau.GAT")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadHeightFileAltitudeTable(t *testing.T) {
	path := writeAltitudeTable(t, 4, 4)

	hm, err := LoadHeightFile(path, 2, 2, 100)
	if err != nil {
		t.Fatalf("LoadHeightFile: %v", err)
	}
	if hm.GridWidth() != 5 || hm.GridDepth() != 5 {
		t.Errorf("expected 5x5 grid, got %dx%d", hm.GridWidth(), hm.GridDepth())
	}
	// Scale is ignored and altitude is inverted.
	if got := hm.Height(2, 3); got != 10 {
		t.Errorf("expected height 10, got %v", got)
	}
	if p := hm.Coordinate(4, 4); p.X != 8 || p.Z != -8 {
		t.Errorf("unexpected corner position %v", p)
	}
}

func TestLoadHeightFileMissing(t *testing.T) {
	if _, err := LoadHeightFile(filepath.Join(t.TempDir(), "none.gat"), 1, 1, 1); err == nil {
		t.Error("expected error for missing altitude table")
	}
	if _, err := LoadHeightFile(filepath.Join(t.TempDir(), "none.png"), 1, 1, 1); err == nil {
		t.Error("expected error for missing image")
	}
}
