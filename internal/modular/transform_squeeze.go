package modular

// Squeeze is one Haar-like lifting step, either horizontal or vertical,
// pairing an "average" channel with a "residual" channel produced by the
// forward transform; ApplyInverseRow reconstructs the original even/odd
// samples and the residual channel is discarded by the caller afterward.
type Squeeze struct {
	Horizontal bool
}

// tendency computes the reference smoothed-tendency correction used to
// avoid overshoot when reconstructing from neighboring averages, after
// the libjxl reference SmoothTendency(left, center, next) shape: a
// (4*center-3*left-next)/12 base estimate, rounded away from zero by 6
// before dividing, then clamped so the correction never pushes the
// reconstructed pair past twice the local average gap.
func tendency(left, center, next int64) int64 {
	if left >= center && center >= next {
		st := (4*center - 3*left - next + 6) / 12
		if st-(st&1) > 2*(center-left) {
			st = 2*(center-left) + 1
		}
		if st+(st&1) > 2*(next-center) {
			st = 2 * (next - center)
		}
		return st
	}
	if left <= center && center <= next {
		st := (4*center - 3*left - next - 6) / 12
		if st+(st&1) < 2*(center-left) {
			st = 2*(center-left) - 1
		}
		if st-(st&1) < 2*(next-center) {
			st = 2 * (next - center)
		}
		return st
	}
	return 0
}

// applyInverse1D reconstructs one pair's worth of even/odd samples from
// one average sample avg, one residual sample res, the previously
// reconstructed even sample (left, the causal neighbor the encoder's
// forward tendency estimate actually used) and the next pair's average
// (nextAvg); at the sequence boundaries left/nextAvg should repeat the
// nearest interior average.
func applyInverse1D(avg, res, left, nextAvg int32) (even, odd int32) {
	tend := tendency(int64(left), int64(avg), int64(nextAvg))
	diff := int64(res) + tend
	even64 := int64(avg) + ((diff + (diff & 1)) >> 1)
	odd64 := even64 - diff
	return int32(even64), int32(odd64)
}

// ApplyInverseRow reconstructs a full row (or column, when Horizontal is
// false and the caller has transposed access) from its average and
// residual sample sequences, producing an output sequence of twice the
// length (even/odd interleaved). Reconstruction is sequential: each
// pair's tendency estimate consults the previously reconstructed even
// sample, not the previous pair's average.
func (s Squeeze) ApplyInverseRow(avg, res []int32) []int32 {
	n := len(avg)
	out := make([]int32, 2*n)
	for i := 0; i < n; i++ {
		nextAvg := avg[minN(i+1, n-1)]
		var left int32
		if i == 0 {
			left = avg[0]
		} else {
			left = out[2*(i-1)]
		}
		even, odd := applyInverse1D(avg[i], res[i], left, nextAvg)
		out[2*i] = even
		out[2*i+1] = odd
	}
	return out
}

func minN(i, n int) int {
	if i > n {
		return n
	}
	return i
}
