package demo

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/stateset/internal/config"
	"github.com/Faultbox/stateset/internal/logger"
	"github.com/Faultbox/stateset/pkg/stateset"
)

// Demo drives a stateset.Manager from an SDL2 frame loop. Keys 1-4
// toggle the scene states, R replaces the active set with the HUD alone,
// X destroys the blinker actor, ESC quits.
type Demo struct {
	cfg     *config.Config
	win     *Window
	manager *stateset.Manager
	states  map[string]*stateset.State
	running bool

	world   *Actor
	hud     *Actor
	blinker *Actor

	keyBus *Bus[sdl.Scancode]
	pulse  *Signal

	blinkAcc  float64
	hudFrames int
}

// New creates the demo window and wires the scene to the state manager.
func New(cfg *config.Config) (*Demo, error) {
	win, err := NewWindow(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, cfg.Window.VSync)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	w := int32(cfg.Window.Width)
	h := int32(cfg.Window.Height)

	d := &Demo{
		cfg:     cfg,
		win:     win,
		manager: stateset.NewManager(),
		states: map[string]*stateset.State{
			"hud":    stateset.NewState("hud"),
			"blink":  stateset.NewState("blink"),
			"paused": stateset.NewState("paused"),
			"keys":   stateset.NewState("keys"),
		},
		world:   NewActor("world", w/8, h/8, w*3/4, h*3/4, Color{R: 0.16, G: 0.35, B: 0.2}),
		hud:     NewActor("hud", 0, h-40, w, 40, Color{R: 0.85, G: 0.75, B: 0.2}),
		blinker: NewActor("blinker", w/2-20, h/2-20, 40, 40, Color{R: 0.85, G: 0.25, B: 0.25}),
		keyBus:  NewBus[sdl.Scancode](),
		pulse:   NewSignal(),
	}
	d.wire()

	// Setup phase: states accumulate silently until the first tick.
	for _, name := range cfg.Scene.InitialStates {
		s, ok := d.states[name]
		if !ok {
			win.Close()
			return nil, fmt.Errorf("unknown initial state %q", name)
		}
		d.manager.AddState(s)
	}

	return d, nil
}

func (d *Demo) wire() {
	m := d.manager

	m.AddOnStateAdded(func(name string) {
		logger.Info("state added", zap.String("state", name))
	})
	m.AddOnStateRemoved(func(name string) {
		logger.Info("state removed", zap.String("state", name))
	})
	m.AddOnStateChanged(func() {
		logger.Debug("active set changed", zap.String("states", d.activeNames()))
	})

	// Visibility wiring: the HUD follows its state, the world hides
	// while paused.
	m.SetActive(d.states["hud"], d.hud)
	m.SetNotActive(d.states["paused"], d.world)

	// The blinker flips visibility on an interval while its state is
	// active.
	blink := d.states["blink"]
	m.AddOnEnter(blink, func() {
		d.blinkAcc = 0
		if d.blinker.Alive() {
			d.blinker.SetActive(true)
		}
	}, true)
	m.AddOnExit(blink, func() {
		if d.blinker.Alive() {
			d.blinker.SetActive(false)
		}
	})
	m.AddOnUpdate(blink, func(dt float64) {
		if !d.blinker.Alive() {
			return
		}
		d.blinkAcc += dt
		if d.blinkAcc >= d.cfg.Scene.BlinkInterval.Seconds() {
			d.blinkAcc = 0
			d.blinker.SetActive(!d.blinker.Visible())
		}
	})

	// Key events reach this listener only while the keys state is active.
	stateset.AddListenerTo(m, d.states["keys"], d.keyBus, func(sc sdl.Scancode) {
		logger.Info("key observed", zap.String("key", sdl.GetScancodeName(sc)))
	})

	// The per-tick pulse is counted only while the HUD is up.
	m.AddListener(d.states["hud"], d.pulse, func() {
		d.hudFrames++
		if d.hudFrames%300 == 0 {
			logger.Debug("hud frames", zap.Int("count", d.hudFrames))
		}
	})
}

func (d *Demo) activeNames() string {
	var names []string
	for s := range d.manager.States() {
		names = append(names, s.Name())
	}
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ",")
}

// Run executes the frame loop until quit.
func (d *Demo) Run() error {
	logger.Info("starting demo loop", zap.String("initial", d.activeNames()))

	d.running = true
	last := time.Now()

	for d.running {
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		keys, quit := PollKeys()
		if quit {
			break
		}
		for _, key := range keys {
			d.handleKey(key)
			d.keyBus.Emit(key)
		}

		d.pulse.Emit()
		d.manager.Update(dt)

		d.draw()
		d.win.SwapBuffers()
	}

	logger.Info("demo loop finished", zap.Int("hud_frames", d.hudFrames))
	return nil
}

func (d *Demo) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		d.running = false
	case sdl.SCANCODE_1:
		d.manager.ToggleState(d.states["hud"])
	case sdl.SCANCODE_2:
		d.manager.ToggleState(d.states["blink"])
	case sdl.SCANCODE_3:
		d.manager.ToggleState(d.states["paused"])
	case sdl.SCANCODE_4:
		d.manager.ToggleState(d.states["keys"])
	case sdl.SCANCODE_R:
		d.manager.ReplaceState(d.states["hud"])
	case sdl.SCANCODE_X:
		logger.Warn("destroying blinker actor")
		d.blinker.Destroy()
	}
}

func (d *Demo) draw() {
	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(0.08, 0.08, 0.1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	d.world.Draw()
	d.blinker.Draw()
	d.hud.Draw()
}

// Close tears down the window.
func (d *Demo) Close() {
	d.win.Close()
}
