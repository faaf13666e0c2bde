package main

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/digital-rain/config"
	"github.com/lixenwraith/digital-rain/effect"
	"github.com/lixenwraith/digital-rain/engine"
	"github.com/lixenwraith/digital-rain/terminal"
)

// benchResult summarizes one headless run
type benchResult struct {
	Effect  string
	Frames  int
	Changed []float64
	Total   time.Duration
	Slowest time.Duration
	Bytes   int
}

// countingWriter discards output while counting bytes
type countingWriter struct{ n int }

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}

func newBenchCmd() *cobra.Command {
	var (
		frames        int
		width, height int
		seed          uint64
		crtOn         bool
		all           bool
		effectName    string
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Render frames headless and plot changed cells per frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := effect.NewDefaultRegistry()
			names := []string{effectName}
			if all {
				names = reg.Names()
			}
			for _, name := range names {
				if !reg.Has(name) {
					return fmt.Errorf("%w: %q", effect.ErrUnknownEffect, name)
				}
				cfg := config.Default()
				cfg.Effect = name
				cfg.CRT = crtOn
				res, err := runBench(cfg, reg, width, height, frames, seed)
				if err != nil {
					return err
				}
				printBench(cmd.OutOrStdout(), res)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVarP(&frames, "frames", "n", 300, "frames to render")
	f.IntVar(&width, "width", terminal.DefaultWidth, "virtual screen width")
	f.IntVar(&height, "height", terminal.DefaultHeight, "virtual screen height")
	f.Uint64Var(&seed, "seed", 1, "random seed")
	f.BoolVar(&crtOn, "crt", false, "include the CRT filter")
	f.BoolVar(&all, "all", false, "bench every effect")
	f.StringVarP(&effectName, "effect", "e", effect.NameClassic, "effect to bench")
	return cmd
}

func runBench(cfg config.Config, reg *effect.Registry, w, h, frames int, seed uint64) (benchResult, error) {
	res := benchResult{Effect: cfg.Effect, Frames: frames}
	sink := &countingWriter{}
	stream := terminal.NewStream(sink, w, h, terminal.ColorModeTrueColor)

	hook := func(s engine.FrameStats) {
		res.Changed = append(res.Changed, float64(s.Changed))
		res.Total += s.Duration
		res.Slowest = max(res.Slowest, s.Duration)
	}
	d, err := engine.NewDriver(stream, reg, cfg.Normalize().Settings(), engine.WithRand(newRand(seed)), engine.WithFrameHook(hook))
	if err != nil {
		return res, err
	}
	if err := d.RunFrames(frames, 1/float64(cfg.FPS)); err != nil {
		return res, err
	}
	res.Bytes = sink.n
	return res, nil
}

func printBench(w io.Writer, r benchResult) {
	if len(r.Changed) == 0 {
		fmt.Fprintf(w, "%s: no frames\n", r.Effect)
		return
	}
	avg := r.Total / time.Duration(len(r.Changed))
	// The first frame is a full redraw and would flatten the plot
	plot := r.Changed
	if len(plot) > 1 {
		plot = plot[1:]
	}
	fmt.Fprintln(w, asciigraph.Plot(plot,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("%s: changed cells per frame", r.Effect)),
	))
	fmt.Fprintf(w, "frames %d  avg %v  max %v  peak %d cells  %d bytes\n\n",
		len(r.Changed), avg, r.Slowest, int(slices.Max(r.Changed)), r.Bytes)
}
