package terrain

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/midgard-roam/pkg/formats"
)

// LoadHeightFile builds a Heightmap from an altitude table (.gat) or a
// greyscale image. scale applies to images only; altitude tables are
// already in world units.
func LoadHeightFile(path string, xStep, yStep, scale float32) (*Heightmap, error) {
	if strings.EqualFold(filepath.Ext(path), ".gat") {
		return LoadAltitudeTable(path, xStep, yStep)
	}
	return LoadHeightImage(path, xStep, yStep, scale)
}

// LoadAltitudeTable reads an altitude table file.
func LoadAltitudeTable(path string, xStep, yStep float32) (*Heightmap, error) {
	tbl, err := formats.ReadAltitudeFile(path)
	if err != nil {
		return nil, err
	}
	hm, err := HeightmapFromAltitudes(tbl, xStep, yStep)
	if err != nil {
		return nil, fmt.Errorf("altitude table %s: %w", path, err)
	}
	return hm, nil
}

// HeightmapFromAltitudes samples the table's cell corners, one grid point
// per corner.
func HeightmapFromAltitudes(tbl *formats.AltitudeTable, xStep, yStep float32) (*Heightmap, error) {
	w, d, heights := tbl.Elevations()
	return NewHeightmap(w, d, heights, xStep, yStep)
}
