package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"

	"github.com/Faultbox/midgard-roam/internal/config"
)

func cmdInfo(cfg *config.Config, args []string) error {
	out := termenv.NewOutput(os.Stdout)

	data, err := cfg.Marshal(false)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, out.String("Effective config").Bold())
	fmt.Fprintln(out, string(data))

	s, err := newScene(cfg)
	if err != nil {
		return err
	}
	st := s.refine()
	land := s.landscape

	fmt.Fprintln(out, out.String("Landscape").Bold())
	fmt.Fprintf(out, "Source:     %s\n", s.data.SourceType())
	fmt.Fprintf(out, "Patch size: %d\n", land.PatchSize())
	fmt.Fprintf(out, "Accuracy:   %.4f rad\n", land.Accuracy())
	fmt.Fprintf(out, "Patches:    %d\n", st.Patches)
	fmt.Fprintf(out, "Triangles:  %d\n", st.Triangles)
	fmt.Fprintf(out, "Nodes:      %d in use, %d idle\n", land.Pool().InUse(), land.Pool().Free())
	if layout := land.Layout(); layout != "" {
		fmt.Fprintf(out, "Tiles:      %v\n", land.TileBounds())
		fmt.Fprintln(out)
		fmt.Fprint(out, layout)
	}
	return nil
}
