package universe

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func mustGrid(t testing.TB, w int, h int, live ...[2]int) Grid {
	t.Helper()
	g, err := NewGrid(w, h)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d): %v", w, h, err)
	}
	for _, c := range live {
		if !g.Set(c[0], c[1], Alive) {
			t.Fatalf("cell %v is outside %dx%d", c, w, h)
		}
	}
	return g
}

func liveSet(g Grid) map[[2]int]bool {
	m := map[[2]int]bool{}
	g.Walk(func(x int, y int, c Cell) {
		if c {
			m[[2]int{x, y}] = true
		}
	})
	return m
}

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(7, 3)
	if err != nil {
		t.Fatal(err)
	}
	if g.Width != 7 || g.Height != 3 || len(g.Entities) != 3 || len(g.Entities[0]) != 7 {
		t.Fatalf("unexpected shape %dx%d", g.Width, g.Height)
	}
	if n := g.LiveCells(); n != 0 {
		t.Fatalf("new grid has %d live cells", n)
	}
}

func TestNewGrid_InvalidDimension(t *testing.T) {
	for _, tc := range []struct{ w, h int }{
		{0, 5},
		{5, 0},
		{-1, 3},
		{3, -8},
		{MaxDimension + 1, 1},
		{MaxDimension, MaxDimension},
	} {
		if _, err := NewGrid(tc.w, tc.h); !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("NewGrid(%d, %d) error = %v, want ErrInvalidDimension", tc.w, tc.h, err)
		}
	}
}

func TestGrid_OutOfRangeIsNoop(t *testing.T) {
	g := mustGrid(t, 4, 4)
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}} {
		if g.Set(c[0], c[1], Alive) {
			t.Errorf("Set%v reported a write", c)
		}
		if g.Toggle(c[0], c[1]) {
			t.Errorf("Toggle%v reported a write", c)
		}
		if g.IsAlive(c[0], c[1]) {
			t.Errorf("IsAlive%v = true", c)
		}
	}
	if n := g.LiveCells(); n != 0 {
		t.Fatalf("out of range writes changed %d cells", n)
	}
}

func TestGrid_Toggle(t *testing.T) {
	g := mustGrid(t, 3, 3)
	g.Toggle(2, 1)
	if !g.IsAlive(2, 1) {
		t.Fatal("toggle did not set the cell")
	}
	g.Toggle(2, 1)
	if g.IsAlive(2, 1) {
		t.Fatal("second toggle did not clear the cell")
	}
}

func TestGrid_Randomize(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g := mustGrid(t, 100, 100)

	if err := g.Randomize(1, rng); err != nil {
		t.Fatal(err)
	}
	if n := g.LiveCells(); n != 100*100 {
		t.Fatalf("density 1 gives %d live cells", n)
	}
	if err := g.Randomize(0, rng); err != nil {
		t.Fatal(err)
	}
	if n := g.LiveCells(); n != 0 {
		t.Fatalf("density 0 gives %d live cells", n)
	}
	if err := g.Randomize(0.5, rng); err != nil {
		t.Fatal(err)
	}
	if n := g.LiveCells(); n < 4000 || n > 6000 {
		t.Fatalf("density 0.5 gives %d live cells of 10000", n)
	}

	for _, d := range []float64{-0.1, 1.01, math.NaN(), math.Inf(1)} {
		if err := g.Randomize(d, rng); !errors.Is(err, ErrInvalidDensity) {
			t.Errorf("Randomize(%v) error = %v, want ErrInvalidDensity", d, err)
		}
	}
}

func TestGrid_Randomize_SameSeedSameGrid(t *testing.T) {
	a := mustGrid(t, 30, 20)
	b := mustGrid(t, 30, 20)
	_ = a.Randomize(0.3, rand.New(rand.NewSource(7)))
	_ = b.Randomize(0.3, rand.New(rand.NewSource(7)))
	if !a.Equal(b) {
		t.Fatal("grids randomized with the same seed differ")
	}
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g := mustGrid(t, 5, 5, [2]int{1, 1})
	c := g.Clone()
	if !c.Equal(g) {
		t.Fatal("clone differs from the source")
	}
	c.Toggle(3, 3)
	if g.IsAlive(3, 3) {
		t.Fatal("clone shares cells with the source")
	}
	if c.Equal(g) {
		t.Fatal("Equal ignores the changed cell")
	}
}

func TestGrid_String(t *testing.T) {
	g := mustGrid(t, 3, 2, [2]int{0, 0}, [2]int{2, 1})
	want := "#..\n..#"
	if s := g.String(); s != want {
		t.Fatalf("String() = %q, want %q", s, want)
	}
}
