package modular

// ApplyInverseTransforms undoes im's recorded transform list in reverse
// order, the inverse of the encoder's forward application order (spec.md
// §4.4: "inverse order reverses encode order").
func (im *Image) ApplyInverseTransforms(transforms []interface{}) {
	for i := len(transforms) - 1; i >= 0; i-- {
		switch tr := transforms[i].(type) {
		case RCT:
			im.applyRCT(tr)
		case Palette:
			im.applyPalette(tr)
		case Squeeze:
			im.applySqueeze(tr)
		}
	}
}

func (im *Image) applyRCT(tr RCT) {
	base := im.NumMetaChannels
	if base+2 >= len(im.Channels) {
		return
	}
	h := im.Channels[base].H
	for y := 0; y < h; y++ {
		var rows [3][]int32
		for i := 0; i < 3; i++ {
			rows[i] = im.Channels[base+i].Data.Row(y)
		}
		tr.ApplyInverse(rows)
	}
}

func (im *Image) applyPalette(tr Palette) {
	paletteChIdx := tr.BeginC
	indexChIdx := tr.BeginC + 1
	if paletteChIdx >= len(im.Channels) || indexChIdx >= len(im.Channels) {
		return
	}
	paletteCh := im.Channels[paletteChIdx]
	indexCh := im.Channels[indexChIdx]

	palette := make([][]int32, tr.NumC)
	for c := 0; c < tr.NumC; c++ {
		palette[c] = paletteCh.Data.Row(c)
	}

	h, w := indexCh.H, indexCh.W
	indices := make([]int32, 0, w*h)
	for y := 0; y < h; y++ {
		indices = append(indices, indexCh.Data.Row(y)...)
	}

	out := make([][]int32, tr.NumC)
	for c := range out {
		out[c] = make([]int32, len(indices))
	}
	tr.ApplyInverse(palette, indices, out)

	newChannels := make([]Channel, 0, len(im.Channels)-2+tr.NumC)
	newChannels = append(newChannels, im.Channels[:paletteChIdx]...)
	for c := 0; c < tr.NumC; c++ {
		ch := NewChannel(w, h, indexCh.HShift, indexCh.VShift)
		for y := 0; y < h; y++ {
			copy(ch.Data.Row(y), out[c][y*w:(y+1)*w])
		}
		newChannels = append(newChannels, ch)
	}
	if indexChIdx+1 <= len(im.Channels) {
		newChannels = append(newChannels, im.Channels[indexChIdx+1:]...)
	}
	im.Channels = newChannels
	im.NumMetaChannels--
}

// applySqueeze merges the last two channels (average, residual) row by
// row into one channel of twice the width. tr.Horizontal is not
// consulted: no transpose is done, so a vertical squeeze is undone along
// rows like a horizontal one.
func (im *Image) applySqueeze(tr Squeeze) {
	if len(im.Channels) < 2 {
		return
	}
	avgIdx := len(im.Channels) - 2
	resIdx := len(im.Channels) - 1
	avgCh := im.Channels[avgIdx]
	resCh := im.Channels[resIdx]

	h := avgCh.H
	w := avgCh.W
	outW := w * 2
	merged := NewChannel(outW, h, avgCh.HShift-1, avgCh.VShift)
	for y := 0; y < h; y++ {
		row := tr.ApplyInverseRow(avgCh.Data.Row(y), resCh.Data.Row(y))
		copy(merged.Data.Row(y), row)
	}
	newChannels := make([]Channel, 0, len(im.Channels)-1)
	newChannels = append(newChannels, im.Channels[:avgIdx]...)
	newChannels = append(newChannels, merged)
	newChannels = append(newChannels, im.Channels[resIdx+1:]...)
	im.Channels = newChannels
}
