package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-roam/internal/config"
	"github.com/Faultbox/midgard-roam/internal/engine/terrain/roam"
	"github.com/Faultbox/midgard-roam/internal/logger"
)

func cmdFly(cfg *config.Config, args []string) error {
	s, err := newScene(cfg)
	if err != nil {
		return err
	}

	out := termenv.NewOutput(os.Stdout)
	printStatsHeader(out)

	fc := cfg.Flight
	var total time.Duration
	triangles := 0
	for frame := 0; frame < fc.Frames; frame++ {
		if frame > 0 {
			s.advance(fc.Speed, fc.Turn*degrees)
		}

		start := time.Now()
		st := s.refine()
		elapsed := time.Since(start)

		total += elapsed
		triangles += st.Triangles
		printStats(out, st, elapsed)
	}

	if fc.Frames > 0 {
		avg := total / time.Duration(fc.Frames)
		fmt.Fprintf(out, "\n%s %d frames, %v per frame, %d triangles on average\n",
			out.String("done:").Bold(), fc.Frames, avg, triangles/fc.Frames)
		logger.Info("flight finished",
			zap.Int("frames", fc.Frames),
			zap.Duration("avgFrame", avg),
			zap.Int("nodes", s.landscape.Pool().Allocated()))
	}
	return nil
}

func printStatsHeader(out *termenv.Output) {
	header := fmt.Sprintf("%6s %7s %7s %5s %5s %8s %8s %10s",
		"frame", "splits", "merges", "in", "out", "tris", "nodes", "time")
	fmt.Fprintln(out, out.String(header).Bold().Underline())
}

func printStats(w io.Writer, st roam.Stats, elapsed time.Duration) {
	line := fmt.Sprintf("%6d %7d %7d %5d %5d %8d %8d %10v",
		st.Frame, st.Splits, st.Merges, st.PagedIn, st.PagedOut,
		st.Triangles, st.Nodes, elapsed.Round(time.Microsecond))

	out, ok := w.(*termenv.Output)
	if !ok {
		fmt.Fprintln(w, line)
		return
	}
	style := out.String(line)
	switch {
	case st.Budgeted:
		style = style.Foreground(out.Color("3")) // Yellow: frame ran out of budget
	case st.PagedIn > 0:
		style = style.Foreground(out.Color("6"))
	}
	fmt.Fprintln(out, style)
}
