package universe

import "fmt"

//Stats describes the work done by one generation
type Stats struct {
	EvaluatedCells int  //cells passed through the rule
	ActiveChunks   int  //chunks with live cells after the step
	LiveCells      int  //live cells after the step
	Changed        bool //at least one cell flipped
}

//Step calculates the next generation of g
//only the cells of the active chunks and their neighbor chunks are evaluated,
//every other cell is dead before and after the step.
//The returned set holds exactly the chunks with live cells of the new grid.
func Step(g Grid, chunkSize int) (Grid, ActiveSet, error) {
	next, active, _, err := StepWithStats(g, chunkSize)
	return next, active, err
}

//StepWithStats is Step reporting the work done
func StepWithStats(g Grid, chunkSize int) (Grid, ActiveSet, Stats, error) {
	if chunkSize < 1 {
		return Grid{}, nil, Stats{}, fmt.Errorf("step with chunk size %d: %w", chunkSize, ErrInvalidChunkSize)
	}
	next := createGrid(g.Width, g.Height)
	st := evaluate(&next, g, chunkSize)
	active := ComputeActiveChunks(next, chunkSize)
	st.ActiveChunks = active.Len()
	return next, active, st, nil
}

//StepInto calculates the next generation of src into dst
//dst is overwritten, it must have the same dimensions as src and must not share cells with it
func StepInto(dst *Grid, src Grid, chunkSize int) (ActiveSet, Stats, error) {
	if chunkSize < 1 {
		return nil, Stats{}, fmt.Errorf("step with chunk size %d: %w", chunkSize, ErrInvalidChunkSize)
	}
	if dst.Width != src.Width || dst.Height != src.Height {
		return nil, Stats{}, fmt.Errorf("step %dx%d into %dx%d: %w", src.Width, src.Height, dst.Width, dst.Height, ErrDimensionMismatch)
	}
	dst.Clear()
	st := evaluate(dst, src, chunkSize)
	active := ComputeActiveChunks(*dst, chunkSize)
	st.ActiveChunks = active.Len()
	return active, st, nil
}

//evaluate writes the next state of the expanded active region of src into the all-dead dst
func evaluate(dst *Grid, src Grid, chunkSize int) (st Stats) {
	expanded := Expand(ComputeActiveChunks(src, chunkSize))
	for c := range expanded {
		ChunkCells(c, chunkSize, src.Width, src.Height, func(x int, y int) {
			cur := src.Entities[y][x]
			next := NextState(cur, CountLiveNeighbors(src, x, y))
			dst.Entities[y][x] = next
			st.EvaluatedCells++
			if next {
				st.LiveCells++
			}
			if next != cur {
				st.Changed = true
			}
		})
	}
	return st
}
