package universe

/*
	Universe implementation with two preallocated buffers
	nextIteration writes the next generation into the spare buffer and swaps the buffers,
	so no grid is allocated per generation
*/
type DoubleBufferUniverse struct {
	*BaseUniverse
	tmpBuff Grid
}

func NewDoubleBufferUniverse(o *Options, stateCh chan Status) (Universe, error) {
	bu, err := NewBaseUniverse(o, stateCh)
	if err != nil {
		return nil, err
	}
	du := DoubleBufferUniverse{BaseUniverse: bu}
	//redefine the nextIteration
	du.BaseUniverse.nextIteration = du.nextIteration
	du.tmpBuff = createGrid(du.area.Width, du.area.Height)
	du.options.Advanced["engine"] = "doubleBuffer"
	return &du, nil
}

func (du *DoubleBufferUniverse) nextIteration() (Stats, error) {
	active, st, err := StepInto(&du.tmpBuff, du.area.Grid, du.options.ChunkSize)
	if err != nil {
		return st, err
	}
	du.area.Grid, du.tmpBuff = du.tmpBuff, du.area.Grid
	du.area.active = active
	return st, nil
}
