package lazyptr_test

import (
	"testing"

	"github.com/edwinsyarief/lazyptr"
)

func BenchmarkEventBusPublishNoHandlers(b *testing.B) {
	bus := &lazyptr.EventBus{}
	event := TestEvent{Value: 42}
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		lazyptr.Publish(bus, event)
	}
}

func BenchmarkEventBusPublish(b *testing.B) {
	bus := &lazyptr.EventBus{}
	sum := 0
	for range 4 {
		lazyptr.Subscribe(bus, func(e TestEvent) { sum += e.Value })
	}
	event := TestEvent{Value: 1}
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		lazyptr.Publish(bus, event)
	}
	if sum == 0 {
		b.Fatal("handlers were not called")
	}
}

func BenchmarkSharedTracked(b *testing.B) {
	bus := &lazyptr.EventBus{}
	tracker := lazyptr.NewTracker(bus)
	b.ReportAllocs()
	for b.Loop() {
		s := lazyptr.NewShared(&benchValue{}, lazyptr.WithEventBus(bus))
		s.Reset()
	}
	if tracker.Live() != 0 {
		b.Fatalf("leaked %d objects", tracker.Live())
	}
}
