package modular

// kDeltaPalette is the built-in delta-palette table consulted when a
// Palette index is negative; entries are additive offsets for the
// lowest-numbered palette colors, matching the JPEG XL reference tables
// used for small, common color deltas.
var kDeltaPalette = [][3]int32{
	{0, 0, 0}, {4, 4, 4}, {-4, -4, -4}, {8, 8, 8},
	{-8, -8, -8}, {4, 0, 0}, {0, 4, 0}, {0, 0, 4},
	{-4, 0, 0}, {0, -4, 0}, {0, 0, -4}, {2, 2, 2},
	{-2, -2, -2}, {6, 0, 0}, {0, 6, 0}, {0, 0, 6},
}

// Palette describes one Palette transform instance: BeginC..BeginC+NumC-1
// are the channels replaced by a single index channel at position
// BeginC+1, with the color table itself stored as a NumC-row meta channel
// inserted at BeginC.
type Palette struct {
	BeginC   int
	NumC     int
	NbColors int
	NbDeltas int
}

// ApplyInverse expands the index channel back into NumC color channels,
// reading rows from the palette meta-channel (palette[c] has NbColors +
// NbDeltas int32 entries) or, for negative indices, from kDeltaPalette
// added to a running per-channel predictor value.
func (p Palette) ApplyInverse(palette [][]int32, indices []int32, out [][]int32) {
	pred := make([]int32, p.NumC)
	for i, idx := range indices {
		if idx >= 0 {
			for c := 0; c < p.NumC; c++ {
				v := palette[c][idx]
				out[c][i] = v
				pred[c] = v
			}
			continue
		}
		deltaIdx := int(-idx - 1)
		if deltaIdx >= len(kDeltaPalette) {
			deltaIdx = len(kDeltaPalette) - 1
		}
		delta := kDeltaPalette[deltaIdx]
		for c := 0; c < p.NumC; c++ {
			d := int32(0)
			if c < 3 {
				d = delta[c]
			}
			v := pred[c] + d
			out[c][i] = v
			pred[c] = v
		}
	}
}
