package modular

// RCT applies the inverse Reversible Color Transform to three channels
// in place, over int32 samples with no rounding loss. The per-pixel
// arithmetic style (small pure integer combinations, no intermediate
// float64) is grounded on the teacher's mct.InverseRCT; the transform
// family itself is generalized from JPEG 2000's single fixed RCT to
// spec.md §4.4's 6-permutation x 7-type family (42 variants).
type RCT struct {
	PermutationIndex int // 0..5, selects which decoded channel plays which output role
	Type             int // 0..6, the linear-combination variant; 6 is YCoCg-R
}

// rctPermutations maps PermutationIndex to the (first, second, third)
// channel roles the Type formulas below read from and write back to.
var rctPermutations = [6][3]int{
	{0, 1, 2},
	{0, 2, 1},
	{1, 0, 2},
	{1, 2, 0},
	{2, 0, 1},
	{2, 1, 0},
}

// ApplyInverse undoes the forward RCT on three equal-length channels,
// indexed by the permutation's channel roles.
func (t RCT) ApplyInverse(chans [3][]int32) {
	perm := rctPermutations[t.PermutationIndex]
	a := chans[perm[0]]
	b := chans[perm[1]]
	c := chans[perm[2]]

	n := len(a)
	for i := 0; i < n; i++ {
		first, second, third := a[i], b[i], c[i]
		var d, e, f int32
		switch t.Type {
		case 0:
			// No-op.
			d, e, f = first, second, third
		case 1:
			d, e, f = first, first+second, third
		case 2:
			d, e, f = first, second, first+third
		case 3:
			d, e, f = first, first+second, first+third
		case 4:
			// Halving combination on (first, third), second carried additively
			// through the same tmp used by type 6's full YCoCg-R, per the
			// progression from type 3's plain sums toward type 6's full
			// transform.
			tmp := first - (third >> 1)
			f = tmp + third
			d = tmp
			e = first + second
		case 5:
			tmp := first - (third >> 1)
			f = tmp + third
			d = tmp - (second >> 1)
			e = d + second
		default:
			// Type 6: YCoCg-R, the reversible Y/Co/Cg transform. first=Y,
			// second=Co, third=Cg.
			tmp := first - (third >> 1)
			g := tmp + third
			bl := tmp - (second >> 1)
			r := bl + second
			d, e, f = r, g, bl
		}
		a[i], b[i], c[i] = d, e, f
	}
}
