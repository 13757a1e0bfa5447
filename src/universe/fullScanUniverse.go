package universe

/*
	Full scan Universe implementation
	the chunk is as large as the whole field, so every generation evaluates every cell.
	It is the baseline the chunked engines are compared with.
*/
type FullScanUniverse struct {
	*BaseUniverse
}

func NewFullScanUniverse(o *Options, stateCh chan Status) (Universe, error) {
	opts := DefaultUniverseOptions
	if o != nil {
		opts = *o
	}
	opts.ChunkSize = fullExtent(opts.Width, opts.Height)
	bu, err := NewBaseUniverse(&opts, stateCh)
	if err != nil {
		return nil, err
	}
	fu := FullScanUniverse{BaseUniverse: bu}
	fu.options.Advanced["engine"] = "full"
	return &fu, nil
}

//fullExtent is the chunk size covering the whole field with one chunk
func fullExtent(width int, height int) int {
	if width > height {
		return width
	}
	if height < 1 {
		return 1
	}
	return height
}
