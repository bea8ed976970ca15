package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-roam/internal/config"
	"github.com/Faultbox/midgard-roam/internal/engine/terrain/roam"
	"github.com/Faultbox/midgard-roam/internal/logger"
)

func cmdExport(cfg *config.Config, args []string) error {
	path := config.OutputPath()
	if path == "" && len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		path = "mesh.obj"
	}

	s, err := newScene(cfg)
	if err != nil {
		return err
	}
	st := s.refine()

	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	n, err := writeOBJ(w, s.landscape.Patches())
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Info("mesh exported",
		zap.String("path", path),
		zap.Int("triangles", n),
		zap.Int("patches", st.Patches))
	return nil
}

// writeOBJ writes the vertex buffers of the patches as one Wavefront OBJ
// object per patch. Colours follow each vertex position when present. It
// returns the number of faces written.
func writeOBJ(w io.Writer, patches []*roam.Patch) (int, error) {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# ROAM terrain mesh")

	base := 1 // OBJ indices start at 1
	faces := 0
	for _, p := range patches {
		vd := p.VertexData()
		count := vd.VertexCount()
		if count == 0 {
			continue
		}
		fmt.Fprintf(bw, "o %s\n", p)

		colors := vd.Colors()
		for i := 0; i < count; i++ {
			v := vd.Vertex(i)
			if colors != nil {
				fmt.Fprintf(bw, "v %g %g %g %.3f %.3f %.3f\n", v.X, v.Y, v.Z,
					float32(colors[i*3])/255, float32(colors[i*3+1])/255, float32(colors[i*3+2])/255)
			} else {
				fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
			}
		}

		tex := vd.TexCoords()
		for i := 0; i < len(tex); i += 2 {
			fmt.Fprintf(bw, "vt %g %g\n", tex[i], tex[i+1])
		}

		for i := 0; i < count; i += 3 {
			a, b, c := base+i, base+i+1, base+i+2
			if tex != nil {
				fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
			} else {
				fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
			}
			faces++
		}
		base += count
	}
	return faces, bw.Flush()
}
