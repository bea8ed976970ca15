package terrain

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png" // PNG heightmaps
	"os"

	_ "golang.org/x/image/bmp"  // BMP heightmaps
	_ "golang.org/x/image/tiff" // TIFF heightmaps
)

// LoadHeightImage builds a Heightmap from a greyscale image file. Pixel
// luminance (0-1) is multiplied by scale to give the elevation. Image row 0
// is the northern edge of the grid.
func LoadHeightImage(path string, xStep, yStep, scale float32) (*Heightmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open height image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode height image %s: %w", path, err)
	}

	hm, err := HeightmapFromImage(img, xStep, yStep, scale)
	if err != nil {
		return nil, fmt.Errorf("height image %s (%s): %w", path, format, err)
	}
	return hm, nil
}

// HeightmapFromImage converts an already decoded image.
func HeightmapFromImage(img image.Image, xStep, yStep, scale float32) (*Heightmap, error) {
	b := img.Bounds()
	w, d := b.Dx(), b.Dy()
	if w < 2 || d < 2 {
		return nil, fmt.Errorf("%w: image is %dx%d", ErrInvalidGrid, w, d)
	}

	heights := make([]float32, w*d)
	for row := range d {
		gridY := d - 1 - row
		for col := range w {
			g := color.Gray16Model.Convert(img.At(b.Min.X+col, b.Min.Y+row)).(color.Gray16)
			heights[gridY*w+col] = float32(g.Y) / 0xffff * scale
		}
	}
	return NewHeightmap(w, d, heights, xStep, yStep)
}
