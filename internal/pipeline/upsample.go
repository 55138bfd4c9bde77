package pipeline

// UpsampleStage scales a channel row by an integer factor (2, 4, or 8)
// using a fixed per-factor kernel, matching the frame header's
// Upsampling field.
type UpsampleStage struct {
	Factor  int
	Channel int
	Kernel  []float32 // normalized tap weights, length depends on Factor
}

func (u *UpsampleStage) Name() string { return "Upsample" }

func (u *UpsampleStage) ChannelModes() [3]ChannelMode {
	var modes [3]ChannelMode
	for i := range modes {
		if i == u.Channel {
			modes[i] = ChannelInOut
		} else {
			modes[i] = ChannelIgnored
		}
	}
	return modes
}

// ProcessRow replicates input samples Factor-wide and smooths with the
// configured kernel; rows[u.Channel] must already hold xsize*Factor
// capacity on entry (Build allocates no row buffers; whoever feeds rows to
// the pipeline supplies that capacity).
func (u *UpsampleStage) ProcessRow(rows [3][]float32, xsize, xpos, ypos, threadID int) bool {
	row := rows[u.Channel]
	if row == nil || u.Factor <= 1 {
		return true
	}
	in := make([]float32, xsize)
	copy(in, row[:xsize])

	out := row[:xsize*u.Factor]
	half := len(u.Kernel) / 2
	for x := 0; x < xsize; x++ {
		for k := 0; k < u.Factor; k++ {
			var acc float32
			for t := range u.Kernel {
				srcX := x + (t - half)
				if srcX < 0 {
					srcX = 0
				}
				if srcX >= xsize {
					srcX = xsize - 1
				}
				acc += u.Kernel[t] * in[srcX]
			}
			out[x*u.Factor+k] = acc
		}
	}
	return true
}

// DefaultKernel2x is the canonical 2x upsample kernel (3-tap, unit sum).
var DefaultKernel2x = []float32{0.25, 0.5, 0.25}
