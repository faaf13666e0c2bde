package engine

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/digital-rain/charset"
	"github.com/lixenwraith/digital-rain/crt"
	"github.com/lixenwraith/digital-rain/effect"
	"github.com/lixenwraith/digital-rain/palette"
	"github.com/lixenwraith/digital-rain/render"
	"github.com/lixenwraith/digital-rain/status"
	"github.com/lixenwraith/digital-rain/terminal"
	"github.com/lixenwraith/digital-rain/transition"
)

// ErrNoEffects is returned when the registry cannot supply even the fallback effect
var ErrNoEffects = errors.New("no effects registered")

// actionQueueSize bounds pending input between ticks
const actionQueueSize = 64

// FrameStats describes one rendered tick
type FrameStats struct {
	Frame    uint64
	Changed  int
	Duration time.Duration
}

// Option configures a Driver
type Option func(*Driver)

// WithRand sets the random source shared by effects, CRT noise and randomization
func WithRand(rng *rand.Rand) Option {
	return func(d *Driver) { d.rng = rng }
}

// WithTimeProvider replaces the wall clock used for pacing and frame timing
func WithTimeProvider(p TimeProvider) Option {
	return func(d *Driver) { d.time = p }
}

// WithFrameHook is called after every drawn frame
func WithFrameHook(fn func(FrameStats)) Option {
	return func(d *Driver) { d.onFrame = fn }
}

// WithMetrics publishes per-frame counters into reg
func WithMetrics(reg *status.Registry) Option {
	return func(d *Driver) { d.metrics = newFrameMetrics(reg) }
}

// Driver owns the buffer and the active effect and runs the tick pipeline:
// actions, effect or crossfade, CRT, overlays, diff, swap
type Driver struct {
	screen   terminal.Screen
	registry *effect.Registry
	settings Settings
	rng      *rand.Rand
	time     TimeProvider
	clock    *FrameClock
	onFrame  func(FrameStats)
	metrics  *frameMetrics

	buf        *render.Buffer
	scene      *render.Buffer // last composed frame without overlays
	sceneValid bool

	active effect.Effect
	fade   *transition.Crossfade
	filter *crt.Filter
	params effect.Params

	paletteName string
	charsetName string

	actions chan Action

	paused       bool
	showHelp     bool
	quit         bool
	status       string
	statusFrames int

	cycleEnabled bool
	cycleElapsed float64

	frame uint64
	last  FrameStats
}

// NewDriver sizes the buffer from the screen and creates the configured effect
// An unknown effect name falls back to classic
func NewDriver(screen terminal.Screen, reg *effect.Registry, s Settings, opts ...Option) (*Driver, error) {
	d := &Driver{
		screen:   screen,
		registry: reg,
		settings: s.Normalize(),
		actions:  make(chan Action, actionQueueSize),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if d.time == nil {
		d.time = NewMonotonicTimeProvider()
	}
	d.clock = NewFrameClock(d.time, d.settings.FPS)
	d.filter = crt.NewFilter(d.rng)
	d.cycleEnabled = d.settings.AutoCycle > 0

	w, h := screen.Size()
	var err error
	if d.buf, err = render.NewBuffer(w, h); err != nil {
		return nil, fmt.Errorf("screen size: %w", err)
	}
	if d.scene, err = render.NewBuffer(w, h); err != nil {
		return nil, fmt.Errorf("screen size: %w", err)
	}

	e, err := d.create(d.settings.Effect)
	if err != nil {
		return nil, err
	}
	d.active = e
	d.resolve()
	return d, nil
}

// Settings returns a copy of the live settings
func (d *Driver) Settings() Settings { return d.settings }

// Paused reports the pause flag
func (d *Driver) Paused() bool { return d.paused }

// Stopped reports whether a quit action has been applied
func (d *Driver) Stopped() bool { return d.quit }

// Status returns the status line text while it is on screen
func (d *Driver) Status() string {
	if d.statusFrames == 0 {
		return ""
	}
	return d.status
}

// Effect returns the effect currently in charge; during a crossfade that is the incoming one
func (d *Driver) Effect() effect.Effect {
	if d.fade != nil {
		return d.fade.Incoming()
	}
	return d.active
}

// Transitioning reports whether a crossfade is running
func (d *Driver) Transitioning() bool { return d.fade != nil }

// Buffer exposes the cell buffer for inspection
func (d *Driver) Buffer() *render.Buffer { return d.buf }

// LastFrame returns the stats of the most recent drawn tick
func (d *Driver) LastFrame() FrameStats { return d.last }

// Post queues an action for the next tick boundary; a full queue drops it
func (d *Driver) Post(a Action) {
	select {
	case d.actions <- a:
	default:
		log.Printf("action queue full, dropping %v", a.Kind)
	}
}

// Run paces ticks until ctx ends, the event channel closes with no screen left, or a quit action lands
func (d *Driver) Run(ctx context.Context) error {
	events := d.screen.Events()
	timer := time.NewTimer(d.clock.UntilNext())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if a, ok := ActionForEvent(ev); ok {
				d.Post(a)
			}
			continue
		case <-timer.C:
		}

		if dt, ok := d.clock.Tick(); ok {
			if err := d.Tick(dt); err != nil {
				return err
			}
			if d.quit {
				return nil
			}
		}
		timer.Reset(d.clock.UntilNext())
	}
}

// RunFrames renders n ticks of fixed dt without pacing
func (d *Driver) RunFrames(n int, dt float64) error {
	for range n {
		if err := d.Tick(dt); err != nil {
			return err
		}
		if d.quit {
			return nil
		}
	}
	return nil
}

// Tick applies queued actions and renders one frame
func (d *Driver) Tick(dt float64) error {
	start := d.time.Now()
	d.drain()
	if d.quit {
		return nil
	}
	d.resolve()

	if d.paused && d.sceneValid {
		d.buf.CopyFrom(d.scene)
	} else {
		if d.paused {
			dt = 0
		}
		d.advance(dt)
		d.compose()
		d.scene.CopyFrom(d.buf)
		d.sceneValid = true
	}

	if d.showHelp {
		drawHelp(d.buf)
	}
	if d.statusFrames > 0 {
		drawStatus(d.buf, d.status)
		d.statusFrames--
	}

	changed := 0
	err := d.screen.Draw(counted(d.buf.Diff(), &changed))
	if err != nil {
		// The terminal state is unknown after a failed flush
		d.buf.Invalidate()
	} else {
		d.buf.Swap()
	}

	d.frame++
	d.last = FrameStats{Frame: d.frame, Changed: changed, Duration: d.time.Now().Sub(start)}
	if d.onFrame != nil {
		d.onFrame(d.last)
	}
	d.metrics.publish(d)
	return err
}

// frameMetrics caches registry pointers so publishing never takes a lock
type frameMetrics struct {
	frames, cells         *atomic.Int64
	frameMs, peakMs, fade *status.Float
	effect, palette       *status.Text
}

func newFrameMetrics(reg *status.Registry) *frameMetrics {
	if reg == nil {
		return nil
	}
	return &frameMetrics{
		frames:  reg.Ints.Get("frames"),
		cells:   reg.Ints.Get("cells.changed"),
		frameMs: reg.Floats.Get("frame.ms"),
		peakMs:  reg.Floats.Get("frame.ms.peak"),
		fade:    reg.Floats.Get("fade.progress"),
		effect:  reg.Texts.Get("effect"),
		palette: reg.Texts.Get("palette"),
	}
}

func (m *frameMetrics) publish(d *Driver) {
	if m == nil {
		return
	}
	ms := float64(d.last.Duration) / float64(time.Millisecond)
	m.frames.Add(1)
	m.cells.Add(int64(d.last.Changed))
	m.frameMs.Set(ms)
	m.peakMs.Max(ms)
	if d.fade != nil {
		m.fade.Set(d.fade.Progress())
	} else {
		m.fade.Set(0)
	}
	m.effect.Set(d.Effect().Name())
	m.palette.Set(d.settings.Palette)
}

// advance moves animation time and the auto-cycle countdown
func (d *Driver) advance(dt float64) {
	d.params.Delta = dt
	d.params.Elapsed += dt
	d.params.Speed = d.settings.Speed
	d.params.Density = d.settings.Density

	if !d.cycleEnabled || d.settings.AutoCycle <= 0 || dt == 0 {
		return
	}
	d.cycleElapsed += dt
	if d.cycleElapsed >= d.settings.AutoCycle.Seconds() {
		d.cycleElapsed = 0
		d.randomize("Auto")
	}
}

// compose renders the effect or crossfade into the cleared buffer and applies CRT
func (d *Driver) compose() {
	d.buf.Clear()
	if d.fade != nil {
		if err := d.fade.Step(&d.params, d.buf); err != nil {
			log.Printf("crossfade: %v", err)
			d.promote()
			d.active.Update(&d.params, d.buf)
		} else if d.fade.Done() {
			d.promote()
		}
	} else {
		d.active.Update(&d.params, d.buf)
	}

	if d.settings.CRT {
		d.filter.Apply(d.buf, d.settings.CRTIntensity, d.params.Elapsed)
	}
}

// promote ends a crossfade, keeping only the incoming effect
func (d *Driver) promote() {
	if d.fade == nil {
		return
	}
	d.active = d.fade.Incoming()
	d.fade = nil
}

func (d *Driver) drain() {
	for {
		select {
		case a := <-d.actions:
			d.apply(a)
		default:
			return
		}
	}
}

func (d *Driver) apply(a Action) {
	s := &d.settings
	switch a.Kind {
	case ActionPause:
		d.paused = !d.paused
		if d.paused {
			d.setStatus("PAUSED")
		} else {
			d.setStatus("RESUMED")
		}
	case ActionSpeedUp, ActionSpeedDown:
		step := SpeedStep
		if a.Kind == ActionSpeedDown {
			step = -step
		}
		s.Speed = clamp(s.Speed+step, MinSpeed, MaxSpeed)
		d.setStatus(fmt.Sprintf("Speed: %.1fx", s.Speed))
	case ActionDensityUp, ActionDensityDown:
		step := DensityStep
		if a.Kind == ActionDensityDown {
			step = -step
		}
		s.Density = clamp(s.Density+step, MinDensity, MaxDensity)
		d.setStatus(fmt.Sprintf("Density: %.1fx", s.Density))
	case ActionNextEffect:
		d.switchTo(d.registry.Next(s.Effect))
		d.setStatus("Effect: " + s.Effect)
	case ActionRandomize:
		d.cycleElapsed = 0
		d.randomize("Random")
	case ActionToggleCRT:
		s.CRT = !s.CRT
		if s.CRT && s.CRTIntensity <= 0 {
			s.CRTIntensity = crt.DefaultIntensity
		}
		d.setStatus("CRT: " + onOff(s.CRT))
	case ActionToggleTimer:
		if s.AutoCycle <= 0 {
			d.setStatus("Auto-cycle: use --timer to enable")
			return
		}
		d.cycleEnabled = !d.cycleEnabled
		d.cycleElapsed = 0
		d.setStatus("Auto-cycle: " + onOff(d.cycleEnabled))
	case ActionToggleHelp:
		d.showHelp = !d.showHelp
	case ActionQuit:
		d.quit = true
	case ActionResize:
		d.resize(a.Width, a.Height)
	}
}

func (d *Driver) randomize(label string) {
	d.settings = Randomize(d.settings, d.rng, d.registry)
	log.Printf("%s: effect=%s palette=%s charset=%s speed=%.2f density=%.2f",
		label, d.settings.Effect, d.settings.Palette, d.settings.Charset, d.settings.Speed, d.settings.Density)
	d.switchTo(d.settings.Effect)
	d.setStatus(fmt.Sprintf("%s: %s / %s / %.1fx", label, d.settings.Effect, d.settings.Palette, d.settings.Speed))
}

// switchTo replaces the active effect, crossfading when transitions are on
// A switch during a crossfade promotes its incoming effect first
func (d *Driver) switchTo(name string) {
	next, err := d.create(name)
	if err != nil {
		log.Printf("switch to %q: %v", name, err)
		return
	}
	log.Printf("effect: %s", d.settings.Effect)
	if !d.settings.Transitions {
		d.active, d.fade = next, nil
		return
	}
	d.promote()
	d.fade = transition.New(d.active, next)
}

// create builds an effect, falling back to classic for unknown names
func (d *Driver) create(name string) (effect.Effect, error) {
	e, err := d.registry.Create(name, d.rng)
	if err == nil {
		d.settings.Effect = name
		return e, nil
	}
	if !errors.Is(err, effect.ErrUnknownEffect) || name == effect.NameClassic {
		return nil, fmt.Errorf("%w: %w", ErrNoEffects, err)
	}
	log.Printf("%v, falling back to %s", err, effect.NameClassic)
	e, err = d.registry.Create(effect.NameClassic, d.rng)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoEffects, err)
	}
	d.settings.Effect = effect.NameClassic
	return e, nil
}

// resolve refreshes the cached palette and charset when their names change
func (d *Driver) resolve() {
	if d.settings.Palette != d.paletteName || d.params.Palette == nil {
		p, err := palette.ByName(d.settings.Palette)
		if err != nil {
			log.Printf("%v, using %s", err, palette.Classic.Name())
			p = palette.Classic
			d.settings.Palette = p.Name()
		}
		d.params.Palette = p
		d.paletteName = d.settings.Palette
	}
	if d.settings.Charset != d.charsetName || d.params.Charset == nil {
		c, err := charset.ByName(d.settings.Charset)
		if err != nil {
			log.Printf("%v, using %s", err, charset.Matrix.Name())
			c = charset.Matrix
			d.settings.Charset = c.Name()
		}
		d.params.Charset = c
		d.charsetName = d.settings.Charset
	}
	d.params.Speed = d.settings.Speed
	d.params.Density = d.settings.Density
	d.params.Forward = d.settings.Forward
}

// resize keeps the prior buffer when the new dimensions are invalid
func (d *Driver) resize(w, h int) {
	if err := d.buf.Resize(w, h); err != nil {
		log.Printf("resize: %v", err)
		return
	}
	if err := d.scene.Resize(w, h); err != nil {
		log.Printf("resize scene: %v", err)
	}
	d.sceneValid = false
	d.screen.Sync()
}

func (d *Driver) setStatus(msg string) {
	d.status = msg
	d.statusFrames = statusFrames
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

// counted wraps a diff sequence, tallying the cells the screen consumes
func counted(seq iter.Seq[terminal.Change], n *int) iter.Seq[terminal.Change] {
	return func(yield func(terminal.Change) bool) {
		for c := range seq {
			*n++
			if !yield(c) {
				return
			}
		}
	}
}
