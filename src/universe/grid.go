package universe

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

type Cell bool

const (
	Dead  = Cell(false)
	Alive = Cell(true)
)

//grid size limits
const (
	MaxDimension = 1 << 16
	MaxCells     = 1 << 28
)

//Grid is the field where cells are living
//cells are stored row-major in one backing slice, Entities gives the row view
type Grid struct {
	Width    int
	Height   int
	Entities [][]Cell
}

//NewGrid allocates the grid with all cells dead
func NewGrid(width int, height int) (Grid, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension || width*height > MaxCells {
		return Grid{}, fmt.Errorf("grid %dx%d: %w", width, height, ErrInvalidDimension)
	}
	return createGrid(width, height), nil
}

//createGrid allocates the grid without validation, dimensions must be already checked
func createGrid(width int, height int) Grid {
	g := Grid{Width: width, Height: height, Entities: make([][]Cell, height)}
	b := make([]Cell, width*height)
	for i := range g.Entities {
		start := width * i
		g.Entities[i] = b[start : start+width : start+width]
	}
	return g
}

//InBounds reports whether x, y addresses a cell of the grid
func (g Grid) InBounds(x int, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

//Get returns the cell at x, y, cells outside the grid are dead
func (g Grid) Get(x int, y int) Cell {
	if !g.InBounds(x, y) {
		return Dead
	}
	return g.Entities[y][x]
}

//IsAlive is used by the renderers
func (g Grid) IsAlive(x int, y int) bool {
	return bool(g.Get(x, y))
}

//Set places c at x, y
//writes outside the grid are ignored, the result reports whether the write happened
func (g Grid) Set(x int, y int, c Cell) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.Entities[y][x] = c
	return true
}

//Toggle inverses the cell state at x, y
func (g Grid) Toggle(x int, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.Entities[y][x] = !g.Entities[y][x]
	return true
}

//Randomize overwrites every cell, a cell is alive with probability density
func (g Grid) Randomize(density float64, rng *rand.Rand) error {
	if math.IsNaN(density) || density < 0 || density > 1 {
		return fmt.Errorf("density %v: %w", density, ErrInvalidDensity)
	}
	for y := range g.Entities {
		for x := range g.Entities[y] {
			g.Entities[y][x] = Cell(rng.Float64() < density)
		}
	}
	return nil
}

//Clear kills all cells
func (g Grid) Clear() {
	for y := range g.Entities {
		row := g.Entities[y]
		for x := range row {
			row[x] = Dead
		}
	}
}

//Clone returns the deep copy of the grid
func (g Grid) Clone() Grid {
	c := createGrid(g.Width, g.Height)
	for y := range g.Entities {
		copy(c.Entities[y], g.Entities[y])
	}
	return c
}

//Equal compares the size and all cells
func (g Grid) Equal(o Grid) bool {
	if g.Width != o.Width || g.Height != o.Height {
		return false
	}
	for y := range g.Entities {
		for x := range g.Entities[y] {
			if g.Entities[y][x] != o.Entities[y][x] {
				return false
			}
		}
	}
	return true
}

//LiveCells calculates the count of live cells
func (g Grid) LiveCells() int {
	n := 0
	g.Walk(func(x int, y int, c Cell) {
		if c {
			n++
		}
	})
	return n
}

//Walk walks the entire grid and calls the cb function for each cell
func (g Grid) Walk(cb func(x int, y int, c Cell)) {
	for y := range g.Entities {
		for x := range g.Entities[y] {
			cb(x, y, g.Entities[y][x])
		}
	}
}

//String renders the grid with '#' for live and '.' for dead cells, one line per row
func (g Grid) String() string {
	var b strings.Builder
	b.Grow((g.Width + 1) * g.Height)
	for y, row := range g.Entities {
		if y != 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			if c {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
