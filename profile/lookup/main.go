// Profiling:
// go build ./profile/lookup
// LOOKUP_MODE=cpu ./lookup
// go tool pprof -http=":8000" -nodefraction=0.001 ./lookup cpu.pprof

package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/edwinsyarief/lazyptr"
	"github.com/edwinsyarief/lazyptr/ecs"
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

// config controls the workload. Values come from LOOKUP_* variables.
type config struct {
	Mode    string  `env:"MODE" envDefault:"mem"`
	Path    string  `env:"PATH" envDefault:"."`
	Rounds  int     `env:"ROUNDS" envDefault:"20"`
	Frames  int     `env:"FRAMES" envDefault:"10000"`
	Actors  int     `env:"ACTORS" envDefault:"100"`
	Speed   float32 `env:"SPEED" envDefault:"200"`
	Verbose bool    `env:"VERBOSE" envDefault:"false"`
}

// headless counts draw calls instead of rendering.
type headless struct {
	draws int
}

func (h *headless) DrawShape(*ecs.Shape) { h.draws++ }

var waypoints = []ecs.Vector2{
	{X: 400, Y: 150},
	{X: 700, Y: 300},
	{X: 1000, Y: 150},
	{X: 1200, Y: 500},
}

func main() {
	var cfg config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "LOOKUP_"}); err != nil {
		fmt.Fprintf(os.Stderr, "parse env: %v\n", err)
		os.Exit(1)
	}

	log := zap.NewNop()
	if cfg.Verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
			os.Exit(1)
		}
		log = l
	}
	defer func() { _ = log.Sync() }()
	lazyptr.SetLogger(log)

	mode := profile.MemProfileAllocs
	if cfg.Mode == "cpu" {
		mode = profile.CPUProfile
	}
	p := profile.Start(mode, profile.ProfilePath(cfg.Path), profile.NoShutdownHook)
	draws := run(cfg)
	p.Stop()

	log.Info("lookup profile finished",
		zap.Int("rounds", cfg.Rounds),
		zap.Int("frames", cfg.Frames),
		zap.Int("actors", cfg.Actors),
		zap.Int("draws", draws))
}

func run(cfg config) int {
	const dt = float32(1.0 / 60.0)

	bus := &lazyptr.EventBus{}
	tracker := lazyptr.NewTracker(bus)
	registry := lazyptr.NewRegistry(lazyptr.WithEventBus(bus))
	if cfg.Verbose {
		lazyptr.LogEvents(bus, nil)
	}
	draws := 0
	for range cfg.Rounds {
		win := lazyptr.NewSlotWith[ecs.Window](registry, &headless{})
		// The registry owns the window; the shared handle only borrows it.
		window := lazyptr.NewSharedFunc(win.MustGet(), func(ecs.Window) {})

		actors := make([]*ecs.Actor, cfg.Actors)
		targets := make([]int, cfg.Actors)
		for i := range actors {
			actors[i] = ecs.NewActor(uint32(i), fmt.Sprintf("actor-%d", i))
			shape := ecs.GetComponent[*ecs.Shape](actors[i].Entity)
			shape.Get().SetShapeType(ecs.ShapeCircle)
			shape.Reset()
		}

		for range cfg.Frames {
			for i, a := range actors {
				a.Update(dt)
				transform := ecs.GetComponent[*ecs.Transform](a.Entity)
				tr := transform.Get()
				if tr.Position().Distance(waypoints[targets[i]]) < 10 {
					targets[i] = (targets[i] + 1) % len(waypoints)
				}
				tr.Seek(waypoints[targets[i]], cfg.Speed, dt, 10)
				transform.Reset()
				a.Render(window)
			}
		}

		for _, a := range actors {
			a.Destroy()
		}
		draws += win.MustGet().(*headless).draws
		window.Reset()
		win.Reset()
	}
	lazyptr.Logger().Debug("registry teardown",
		zap.Int64("allocated", tracker.Allocated()),
		zap.Int64("live", tracker.Live()))
	return draws
}
