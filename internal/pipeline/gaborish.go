package pipeline

// GaborishStage applies the separable 3-tap sharpening/anti-ringing
// filter to each channel independently, using per-channel weights
// supplied by the frame's LoopFilter.
type GaborishStage struct {
	Weights [3]float32 // normalized side-tap weight per channel
}

func (g *GaborishStage) Name() string { return "Gaborish" }

func (g *GaborishStage) ChannelModes() [3]ChannelMode {
	return [3]ChannelMode{ChannelInPlace, ChannelInPlace, ChannelInPlace}
}

// ProcessRow convolves each channel's row with the 3-tap kernel
// [w, 1-2w, w] (mirror-padded at the row edges); vertical taps are
// outside this stage's scope (spec.md's declared per-row contract), so
// only the horizontal pass runs here.
func (g *GaborishStage) ProcessRow(rows [3][]float32, xsize, xpos, ypos, threadID int) bool {
	for c := 0; c < 3; c++ {
		row := rows[c]
		if row == nil {
			continue
		}
		w := g.Weights[c]
		center := 1 - 2*w
		out := make([]float32, xsize)
		for x := 0; x < xsize; x++ {
			left := mirrorIndex(x-1, xsize)
			right := mirrorIndex(x+1, xsize)
			out[x] = w*row[left] + center*row[x] + w*row[right]
		}
		copy(row, out)
	}
	return true
}

func mirrorIndex(i, n int) int {
	if i < 0 {
		return -i
	}
	if i >= n {
		return 2*n - i - 2
	}
	return i
}
