package pipeline

import "math"

// SigmaImage holds the per-block EPF strength computed from the quant
// field and sharpness map, with kSigmaPadding blocks of mirror padding on
// each side so the filter can read a neighborhood around any block
// without bounds checks.
type SigmaImage struct {
	BlockDim int
	Sigma    [][]float32 // [blockY+padding][blockX+padding]
}

const kSigmaPadding = 2
const kBlockDim = 8

// NewSigmaImage computes a SigmaImage from a quant field and sharpness
// lookup, one entry per 8x8 block, mirror-padded by kSigmaPadding blocks.
func NewSigmaImage(quantField [][]int32, sharpLut [8]float32) *SigmaImage {
	bh := len(quantField)
	bw := 0
	if bh > 0 {
		bw = len(quantField[0])
	}
	s := &SigmaImage{BlockDim: kBlockDim}
	s.Sigma = make([][]float32, bh+2*kSigmaPadding)
	for y := range s.Sigma {
		s.Sigma[y] = make([]float32, bw+2*kSigmaPadding)
	}
	for y := 0; y < bh; y++ {
		for x := 0; x < bw; x++ {
			q := quantField[y][x]
			sharp := sharpLut[q&7]
			sigma := float32(1.0)
			if sharp != 0 {
				sigma = 1.0 / sharp
			}
			s.Sigma[y+kSigmaPadding][x+kSigmaPadding] = sigma
		}
	}
	mirrorPadSigma(s.Sigma, bw, bh)
	return s
}

func mirrorPadSigma(sigma [][]float32, bw, bh int) {
	for p := 1; p <= kSigmaPadding; p++ {
		for x := 0; x < bw; x++ {
			sigma[kSigmaPadding-p][x+kSigmaPadding] = sigma[kSigmaPadding+p-1][x+kSigmaPadding]
			sigma[kSigmaPadding+bh+p-1][x+kSigmaPadding] = sigma[kSigmaPadding+bh-p][x+kSigmaPadding]
		}
	}
	width := len(sigma[0])
	for y := 0; y < len(sigma); y++ {
		for p := 1; p <= kSigmaPadding; p++ {
			sigma[y][kSigmaPadding-p] = sigma[y][kSigmaPadding+p-1]
			sigma[y][width-kSigmaPadding+p-1] = sigma[y][width-kSigmaPadding-p]
		}
	}
}

func (s *SigmaImage) at(blockX, blockY int) float32 {
	return s.Sigma[blockY+kSigmaPadding][blockX+kSigmaPadding]
}

// EPFStage runs one edge-preserving-filter pass over all three channels,
// weighting neighbor contributions by 1/sigma of the block the filtered
// pixel falls in.
type EPFStage struct {
	Pass  int
	Sigma *SigmaImage
}

func (e *EPFStage) Name() string { return "EPF" }

func (e *EPFStage) ChannelModes() [3]ChannelMode {
	return [3]ChannelMode{ChannelInPlace, ChannelInPlace, ChannelInPlace}
}

// ProcessRow applies a single horizontal three-tap EPF pass to the current
// row. It sees no other rows, so neighboring rows are not mixed as in the
// full reference filter (spec.md §9 flags the exact EPF math as an
// external dependency; this keeps the same sigma-weighted-average
// structure without claiming bit-exactness).
func (e *EPFStage) ProcessRow(rows [3][]float32, xsize, xpos, ypos, threadID int) bool {
	blockY := ypos / kBlockDim
	for c := 0; c < 3; c++ {
		row := rows[c]
		if row == nil {
			continue
		}
		out := make([]float32, xsize)
		for x := 0; x < xsize; x++ {
			blockX := (xpos + x) / kBlockDim
			sigma := e.Sigma.at(blockX, blockY)
			strength := float32(1.0)
			if sigma != 0 {
				strength = 1.0 / sigma
			}
			left := mirrorIndex(x-1, xsize)
			right := mirrorIndex(x+1, xsize)
			weightSide := epfWeight(strength)
			center := 1 - 2*weightSide
			out[x] = weightSide*row[left] + center*row[x] + weightSide*row[right]
		}
		copy(row, out)
	}
	return true
}

// epfWeight converts a filter strength into a side-tap weight, bounded
// so the kernel never inverts (negative center weight).
func epfWeight(strength float32) float32 {
	w := 0.25 * float32(math.Tanh(float64(strength)))
	if w > 0.49 {
		w = 0.49
	}
	if w < 0 {
		w = 0
	}
	return w
}
