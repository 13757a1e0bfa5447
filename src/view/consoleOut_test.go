package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"chunklife/src/universe"
)

func TestConsoleOut_ReportsRun(t *testing.T) {
	stateCh := make(chan universe.Status, 10)
	o := universe.DefaultUniverseOptions
	o.Width, o.Height, o.Interval, o.MaxSteps = 10, 10, 0, 20
	u, err := universe.NewBaseUniverse(&o, stateCh)
	if err != nil {
		t.Fatal(err)
	}
	defer u.Close()

	var buf bytes.Buffer
	out := NewConsoleOut(&buf, false, true)
	u.SettleTemplate("blinker")
	u.RegisterViewer(out)
	out.Start()
	u.Run()

	timeout := time.After(10 * time.Second)
	for finished := false; !finished; {
		select {
		case st := <-stateCh:
			finished = st.RunningMode == universe.ModeFinished
		case <-timeout:
			t.Fatal("the run did not finish")
		}
	}
	u.Snapshot()

	s := buf.String()
	for _, want := range []string{
		"Dimension: 10 x 10",
		"engine: chunked",
		"Iterations done: 10,",
		"Last iteration: 20",
		"Live cells: 3",
		".###......", //even generation of the blinker
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output has no %q:\n%s", want, s)
		}
	}
	if n := strings.Count(s, "Finished:"); n != 1 {
		t.Errorf("finish reported %d times", n)
	}
}

func TestClampOffset(t *testing.T) {
	for _, tc := range []struct{ offset, max, want int }{
		{5, 10, 5},
		{15, 10, 10},
		{-3, 10, 0},
		{4, -2, 0}, //the field is smaller than the view
	} {
		if got := clampOffset(tc.offset, tc.max); got != tc.want {
			t.Errorf("clampOffset(%d, %d) = %d, want %d", tc.offset, tc.max, got, tc.want)
		}
	}
}
