// Profiling:
// go build ./profile/ownership
// go tool pprof -http=":8000" -nodefraction=0.001 ./ownership mem.pprof

package main

import (
	"fmt"

	"github.com/edwinsyarief/lazyptr"
	"github.com/pkg/profile"
)

type payload struct {
	V int64
	W int64
}

type node interface {
	Sum() int64
}

func (p *payload) Sum() int64 { return p.V + p.W }

func main() {
	rounds := 50
	iters := 10000
	owners := 64
	bus := &lazyptr.EventBus{}
	tracker := lazyptr.NewTracker(bus)
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, owners, bus)
	p.Stop()
	fmt.Printf("allocated=%d deallocated=%d live=%d\n", tracker.Allocated(), tracker.Deallocated(), tracker.Live())
}

func run(rounds, iters, numOwners int, bus *lazyptr.EventBus) {
	for range rounds {
		for range iters {
			root := lazyptr.NewShared(&payload{V: 1, W: 2}, lazyptr.WithEventBus(bus))
			weak := root.Weak()
			base := lazyptr.As[node](root)
			clones := make([]*lazyptr.Shared[*payload], 0, numOwners)
			for range numOwners {
				c := lazyptr.As[*payload](base)
				c.Get().V += c.Get().W
				clones = append(clones, c)
			}
			for _, c := range clones {
				c.Reset()
			}
			base.Reset()
			root.Reset()
			if l := weak.Lock(); !l.IsNull() {
				panic("object outlived its owners")
			}
			weak.Reset()
		}
	}
}
