package modular

// WeightedHeader parameterizes the weighted predictor with four
// sub-predictor weights; AllDefault selects the canonical JPEG XL
// constants. It carries no error-threshold or shift parameters: Predict
// turns recent errors into weights with fixed arithmetic.
type WeightedHeader struct {
	AllDefault bool
	Weight     [4]uint32
}

// DefaultWeightedHeader returns the canonical weighted-predictor
// parameters used when a GroupHeader sets weighted_header.all_default.
func DefaultWeightedHeader() WeightedHeader {
	return WeightedHeader{
		AllDefault: true,
		Weight:     [4]uint32{16, 10, 7, 7},
	}
}

const (
	wpErrorLimit = 0xFFFFF
	wpWeightBits = 16
)

// WeightedState tracks the four sub-predictor error accumulators for one
// row of weighted-predictor decode; it is recreated per channel per group
// (spec.md: "Mutable buffers ... WeightedState per row ... private to a
// single group/row").
type WeightedState struct {
	header WeightedHeader
	width  int

	// err holds the running per-column absolute error for each of the
	// four sub-predictors, used to derive per-pixel weights.
	err [4][]int32
	// pred4 holds the four sub-predictor values computed for the pixel
	// currently being predicted, kept around so Update can compare them
	// against the true sample.
	pred4 [4]int32
	// blend is the weighted prediction Predict returned for that pixel.
	blend int32
	// lastErr is the WP residual magnitude from the previous pixel,
	// exposed as MA-tree property 15.
	lastErr int32
}

// NewWeightedState allocates WP state for a channel row of the given
// width.
func NewWeightedState(header WeightedHeader, width int) *WeightedState {
	ws := &WeightedState{header: header, width: width}
	for i := range ws.err {
		ws.err[i] = make([]int32, width+2)
	}
	return ws
}

// Predict computes the weighted blend of the four sub-predictors for the
// pixel at column x given its causal neighborhood, per spec.md §4.4: `N`,
// `W`, `N+W-NW`, and a gradient-type sub-predictor, combined using
// weights derived from each sub-predictor's recent error.
func (ws *WeightedState) Predict(x int, n Neighborhood) int32 {
	ws.pred4[0] = n.T
	ws.pred4[1] = n.L
	ws.pred4[2] = n.L + n.T - n.TL
	ws.pred4[3] = ClampedGradient(n.T, n.L, n.TL)

	var weights [4]int64
	var sumW int64
	for i := 0; i < 4; i++ {
		e := ws.errAt(x, i)
		w := int64(ws.header.Weight[i]) << 5
		w /= 1 + int64(e)
		if w < 1 {
			w = 1
		}
		weights[i] = w
		sumW += w
	}

	var sum int64
	for i := 0; i < 4; i++ {
		sum += weights[i] * int64(ws.pred4[i])
	}
	if sumW == 0 {
		ws.blend = ws.pred4[1]
		return ws.blend
	}
	pred := sum / sumW
	lo, hi := ws.pred4[0], ws.pred4[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	ws.blend = clampInt32(int32(pred), lo-wpErrorLimit, hi+wpErrorLimit)
	return ws.blend
}

// errAt returns the error accumulator for sub-predictor i at column x,
// offset by 1 so x=-1 (the left border column) stays in bounds.
func (ws *WeightedState) errAt(x, i int) int32 {
	idx := x + 1
	if idx < 0 || idx >= len(ws.err[i]) {
		return 0
	}
	return ws.err[i][idx]
}

// Update records the true sample value after decode, updating the four
// sub-predictor error accumulators and the exposed WP error property.
func (ws *WeightedState) Update(x int, trueValue int32) {
	idx := x + 1
	for i := 0; i < 4; i++ {
		e := abs32(trueValue - ws.pred4[i])
		if idx >= 0 && idx < len(ws.err[i]) {
			ws.err[i][idx] = e
		}
	}
	ws.lastErr = abs32(trueValue - ws.blend)
}

// LastError exposes the most recent WP residual magnitude, used as
// MA-tree property 15.
func (ws *WeightedState) LastError() int32 {
	return ws.lastErr
}

func clampInt32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
