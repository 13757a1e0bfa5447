package universe

import (
	"testing"
)

const (
	width  = 200
	height = 200
)

func universeStep(u Universe, b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		u.SettleTemplate("testSample1")
		u.Snapshot() //wait for settle
		b.StartTimer()
		u.Step()
		u.Snapshot() //wait for the step
	}
	u.Close()
}

func universeRun(u Universe, b *testing.B) {
	stateCh := u.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		<-stateCh //wait for finish
		u.SettleTemplate("rpentomino")
		b.StartTimer()
		u.Run()
		for {
			st := <-stateCh
			if st.RunningMode == ModeFinished {
				break
			}
		}
	}
	u.Close()
	close(stateCh)
}

func newUniverseOptions() *Options {
	o := DefaultUniverseOptions
	o.Interval = 0
	o.Width = width
	o.Height = height
	o.MaxSteps = 100
	return &o
}

func Benchmark_Step(b *testing.B) {
	for _, e := range EngineNames() {
		b.Run(e, func(b *testing.B) {
			u, err := Engines[e](newUniverseOptions(), nil)
			if err != nil {
				b.Fatal(err)
			}
			universeStep(u, b)
		})
	}
}

func Benchmark_Universe(b *testing.B) {
	for _, e := range EngineNames() {
		b.Run(e, func(b *testing.B) {
			u, err := Engines[e](newUniverseOptions(), make(chan Status, 10))
			if err != nil {
				b.Fatal(err)
			}
			universeRun(u, b)
		})
	}
}
