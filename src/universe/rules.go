package universe

//CountLiveNeighbors counts the live cells around x, y
//the field has hard edges: coordinates outside the grid are skipped, there is no wrapping
func CountLiveNeighbors(g Grid, x int, y int) int {
	liveNeighbours := 0
	for j := -1; j < 2; j++ {
		ny := y + j
		if ny < 0 || ny >= g.Height {
			continue
		}
		row := g.Entities[ny]
		for i := -1; i < 2; i++ {
			//skip my position
			if i == 0 && j == 0 {
				continue
			}
			nx := x + i
			if nx < 0 || nx >= g.Width {
				continue
			}
			if row[nx] {
				liveNeighbours++
			}
		}
	}
	return liveNeighbours
}

//NextState applies B3/S23
func NextState(current Cell, neighbors int) Cell {
	if neighbors == 3 {
		return Alive
	}
	if neighbors == 2 && current {
		return Alive
	}
	return Dead
}
