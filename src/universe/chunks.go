package universe

import "sort"

//DefChunkSize is the default edge of the square chunk in cells
const DefChunkSize = 32

//ChunkCoord identifies the chunk_size x chunk_size tile holding cell (X*size, Y*size)
//chunks produced by Expand can lie outside the grid, including negative coordinates
type ChunkCoord struct {
	X int
	Y int
}

//ActiveSet is the set of chunks containing at least one live cell
type ActiveSet map[ChunkCoord]struct{}

//Add puts c into the set
func (a ActiveSet) Add(c ChunkCoord) {
	a[c] = struct{}{}
}

//Has reports whether c is in the set
func (a ActiveSet) Has(c ChunkCoord) bool {
	_, ok := a[c]
	return ok
}

//Len returns the number of chunks in the set
func (a ActiveSet) Len() int {
	return len(a)
}

//Equal reports whether both sets hold the same chunks
func (a ActiveSet) Equal(o ActiveSet) bool {
	if len(a) != len(o) {
		return false
	}
	for c := range a {
		if !o.Has(c) {
			return false
		}
	}
	return true
}

//Sorted returns the chunks in row-major order
func (a ActiveSet) Sorted() []ChunkCoord {
	cs := make([]ChunkCoord, 0, len(a))
	for c := range a {
		cs = append(cs, c)
	}
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Y != cs[j].Y {
			return cs[i].Y < cs[j].Y
		}
		return cs[i].X < cs[j].X
	})
	return cs
}

//ChunkOf returns the chunk holding the in-grid cell x, y
func ChunkOf(x int, y int, chunkSize int) ChunkCoord {
	return ChunkCoord{X: x / chunkSize, Y: y / chunkSize}
}

//ComputeActiveChunks scans the whole grid once and collects the chunks with live cells
func ComputeActiveChunks(g Grid, chunkSize int) ActiveSet {
	active := ActiveSet{}
	if chunkSize < 1 {
		return active
	}
	for y := range g.Entities {
		row := g.Entities[y]
		for x := 0; x < len(row); x++ {
			if !row[x] {
				continue
			}
			active.Add(ChunkOf(x, y, chunkSize))
			//the rest of this chunk's row adds nothing new
			x = (x/chunkSize+1)*chunkSize - 1
		}
	}
	return active
}

//Expand returns every chunk of the set together with its 8 neighbors
//a live cell on a chunk border can give birth to a cell in the adjacent chunk
func Expand(a ActiveSet) ActiveSet {
	expanded := make(ActiveSet, len(a)*9)
	for c := range a {
		for dy := -1; dy < 2; dy++ {
			for dx := -1; dx < 2; dx++ {
				expanded.Add(ChunkCoord{X: c.X + dx, Y: c.Y + dy})
			}
		}
	}
	return expanded
}

//ChunkBounds returns the half-open cell rectangle [x0, x1) x [y0, y1) of the chunk clipped to the grid
//ok is false when the chunk has no cell inside the grid
func ChunkBounds(c ChunkCoord, chunkSize int, width int, height int) (x0, y0, x1, y1 int, ok bool) {
	if chunkSize < 1 || c.X < 0 || c.Y < 0 {
		return 0, 0, 0, 0, false
	}
	x0, y0 = c.X*chunkSize, c.Y*chunkSize
	if x0 >= width || y0 >= height {
		return 0, 0, 0, 0, false
	}
	x1, y1 = x0+chunkSize, y0+chunkSize
	if x1 > width {
		x1 = width
	}
	if y1 > height {
		y1 = height
	}
	return x0, y0, x1, y1, true
}

//ChunkCells calls cb for each cell of the chunk clipped to the grid
//nothing is visited for chunks lying outside the grid
func ChunkCells(c ChunkCoord, chunkSize int, width int, height int, cb func(x int, y int)) {
	x0, y0, x1, y1, ok := ChunkBounds(c, chunkSize, width, height)
	if !ok {
		return
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			cb(x, y)
		}
	}
}
