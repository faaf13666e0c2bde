package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/digital-rain/config"
	"github.com/lixenwraith/digital-rain/effect"
	"github.com/lixenwraith/digital-rain/engine"
	"github.com/lixenwraith/digital-rain/status"
	"github.com/lixenwraith/digital-rain/terminal"
)

var errNotTerminal = errors.New("stdout is not a TTY (use --frames for headless output)")

// rootOptions holds every flag of the root command
type rootOptions struct {
	effect       string
	color        string
	charset      string
	speed        float64
	density      float64
	fps          int
	timer        float64
	crt          bool
	crtIntensity float64
	noTransition bool
	forward      bool
	random       bool
	seed         uint64
	colorMode    string
	configFile   string
	preset       string
	frames       int
	debug        bool
}

func newRootCmd() *cobra.Command {
	var o rootOptions
	cmd := &cobra.Command{
		Use:           "digital-rain",
		Short:         "Falling-glyph digital rain for the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}

	bindConfigFlags(cmd, &o)
	f := cmd.Flags()
	f.BoolVar(&o.random, "random", false, "start with a random effect, palette, charset, speed and density")
	f.StringVar(&o.colorMode, "color-mode", "auto", "color output: auto, truecolor, 256")
	f.IntVar(&o.frames, "frames", 0, "render N frames as plain ANSI output and exit")
	f.BoolVar(&o.debug, "debug", false, "write a debug log to logs/digital-rain.log")

	cmd.AddCommand(newListCmd(), newPresetCmd(), newBenchCmd())
	return cmd
}

// bindConfigFlags registers the flags that map onto config.Config
func bindConfigFlags(cmd *cobra.Command, o *rootOptions) {
	def := config.Default()
	f := cmd.Flags()
	f.StringVarP(&o.effect, "effect", "e", def.Effect, "effect to display (see 'list effects')")
	f.Float64VarP(&o.speed, "speed", "s", def.Speed, "animation speed multiplier (0.1-10)")
	f.Float64VarP(&o.density, "density", "d", def.Density, "rain density multiplier (0.1-10)")
	f.StringVarP(&o.color, "color", "c", def.Color, "palette name or CSS color (see 'list colors')")
	f.StringVar(&o.charset, "charset", def.Charset, "character set (see 'list charsets')")
	f.IntVar(&o.fps, "fps", def.FPS, "target frames per second (10-120)")
	f.Float64Var(&o.timer, "timer", 0, "auto-cycle to a random setup every N seconds")
	f.BoolVar(&o.crt, "crt", false, "enable CRT scanlines, glow, flicker and noise")
	f.Float64Var(&o.crtIntensity, "crt-intensity", def.CRTIntensity, "CRT strength (0-1, 0 keeps --crt as a no-op)")
	f.BoolVar(&o.noTransition, "no-transition", false, "switch effects without crossfading")
	f.BoolVar(&o.forward, "forward", false, "reverse column gradients: bright tail at top, dim head at bottom")
	f.Uint64Var(&o.seed, "seed", 0, "random seed (0 = time based)")
	f.StringVar(&o.configFile, "config", "", "TOML config file")
	f.StringVar(&o.preset, "preset", "", "named preset to load")
}

// resolve layers defaults, --config, --preset and then explicitly set flags
func (o *rootOptions) resolve(cmd *cobra.Command, presets *config.Presets) (config.Config, error) {
	cfg := config.Default()
	var err error
	if o.configFile != "" {
		if cfg, err = config.Load(o.configFile); err != nil {
			return cfg, err
		}
	}
	if o.preset != "" {
		if presets == nil {
			if presets, err = presetStore(); err != nil {
				return cfg, err
			}
		}
		if cfg, err = presets.Apply(o.preset, cfg); err != nil {
			return cfg, err
		}
	}

	f := cmd.Flags()
	if f.Changed("effect") {
		cfg.Effect = o.effect
	}
	if f.Changed("color") {
		cfg.Color = o.color
	}
	if f.Changed("charset") {
		cfg.Charset = o.charset
	}
	if f.Changed("speed") {
		cfg.Speed = o.speed
	}
	if f.Changed("density") {
		cfg.Density = o.density
	}
	if f.Changed("fps") {
		cfg.FPS = o.fps
	}
	if f.Changed("timer") {
		cfg.Timer = o.timer
	}
	if f.Changed("crt") {
		cfg.CRT = o.crt
	}
	if f.Changed("crt-intensity") {
		cfg.CRTIntensity = o.crtIntensity
	}
	if f.Changed("no-transition") {
		cfg.Transitions = !o.noTransition
	}
	if f.Changed("forward") {
		cfg.Forward = o.forward
	}
	if f.Changed("seed") {
		cfg.Seed = o.seed
	}
	return cfg.Normalize(), nil
}

func (o *rootOptions) run(cmd *cobra.Command) error {
	if logFile := setupLogging(o.debug); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := o.resolve(cmd, nil)
	if err != nil {
		return err
	}
	mode, err := terminal.ParseColorMode(o.colorMode)
	if err != nil {
		return err
	}

	reg := effect.NewDefaultRegistry()
	rng := newRand(cfg.Seed)
	if o.random {
		cfg = cfg.Randomized(rng, reg)
		fmt.Fprintf(cmd.ErrOrStderr(), "Random: effect=%s, color=%s, charset=%s, speed=%.1f, density=%.1f\n",
			cfg.Effect, cfg.Color, cfg.Charset, cfg.Speed, cfg.Density)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if o.frames > 0 {
		w, h := terminal.StdoutSize()
		return runHeadless(cmd.OutOrStdout(), w, h, mode, cfg, reg, rng, o.frames)
	}
	if !isTerminal(os.Stdout) {
		return errNotTerminal
	}
	return runInteractive(ctx, mode, cfg, reg, rng)
}

// newRand seeds a PCG source; seed 0 uses the clock
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runInteractive(ctx context.Context, mode terminal.ColorMode, cfg config.Config, reg *effect.Registry, rng *rand.Rand) error {
	ts, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	screen := terminal.NewTcellScreen(ts, mode)
	screen.SetCrashHandler(func(r any) { crash("INPUT POLLER CRASHED", r) })
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	metrics := status.NewRegistry()
	defer logMetrics(metrics)
	d, err := engine.NewDriver(screen, reg, cfg.Settings(), engine.WithRand(rng), engine.WithMetrics(metrics))
	if err != nil {
		return err
	}
	return d.Run(ctx)
}

// runHeadless writes n frames of ANSI output to w at fixed delta
func runHeadless(w io.Writer, width, height int, mode terminal.ColorMode, cfg config.Config, reg *effect.Registry, rng *rand.Rand, n int) error {
	stream := terminal.NewStream(w, width, height, mode)
	if err := stream.Init(); err != nil {
		return err
	}
	defer stream.Fini()

	metrics := status.NewRegistry()
	defer logMetrics(metrics)
	d, err := engine.NewDriver(stream, reg, cfg.Settings(), engine.WithRand(rng), engine.WithMetrics(metrics))
	if err != nil {
		return err
	}
	return d.RunFrames(n, 1/float64(cfg.FPS))
}

// logMetrics writes the final counters to the debug log
func logMetrics(reg *status.Registry) {
	log.Printf("session metrics:")
	if err := reg.Dump(log.Writer()); err != nil {
		log.Printf("dump metrics: %v", err)
	}
}
