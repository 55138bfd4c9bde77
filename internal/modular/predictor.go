package modular

// Predictor names one entry of the modular predictor catalog. The
// numeric values follow the wire order used by MA-tree leaves.
type Predictor uint8

const (
	PredictorZero Predictor = iota
	PredictorLeft
	PredictorTop
	PredictorAverage0
	PredictorSelect
	PredictorGradient
	PredictorWeighted
	PredictorTopLeft
	PredictorTopRight
	PredictorLeftLeft
	PredictorAverage1
	PredictorAverage2
	PredictorAverage3
)

// Neighborhood bundles the neighbor samples a predictor and the MA-tree
// property set both read, named the way spec.md §4.4 names them.
type Neighborhood struct {
	L, T, TL, TR, LL, TT int32
}

// ClampedGradient computes the MED/Paeth-style gradient predictor,
// clamped to the range spanned by its two linear neighbors (spec.md
// testable property 12: result always lies in [min(L,T), max(L,T)]).
func ClampedGradient(t, l, tl int32) int32 {
	lo, hi := l, t
	if lo > hi {
		lo, hi = hi, lo
	}
	grad := int64(l) + int64(t) - int64(tl)
	if grad < int64(lo) {
		return lo
	}
	if grad > int64(hi) {
		return hi
	}
	return int32(grad)
}

// selectPredict implements the Select (Paeth-like) predictor: predicts T
// unless L is the better local estimate of the gradient.
func selectPredict(l, t, tl int32) int32 {
	p := l + t - tl
	pAbs := abs32(p - l)
	tAbs := abs32(p - t)
	if pAbs >= tAbs {
		return t
	}
	return l
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// PredictOne computes the non-weighted predictors directly from a
// neighborhood; Weighted is handled separately via WeightedState because
// it carries per-column state across the row.
func PredictOne(p Predictor, n Neighborhood) int32 {
	switch p {
	case PredictorZero:
		return 0
	case PredictorLeft:
		return n.L
	case PredictorTop:
		return n.T
	case PredictorAverage0:
		return int32((int64(n.L) + int64(n.T)) / 2)
	case PredictorSelect:
		return selectPredict(n.L, n.T, n.TL)
	case PredictorGradient:
		return ClampedGradient(n.T, n.L, n.TL)
	case PredictorTopLeft:
		return n.TL
	case PredictorTopRight:
		return n.TR
	case PredictorLeftLeft:
		return n.LL
	case PredictorAverage1:
		return int32((int64(n.L) + int64(n.TL)) / 2)
	case PredictorAverage2:
		return int32((int64(n.T) + int64(n.TR)) / 2)
	case PredictorAverage3:
		return int32((int64(n.TL) + int64(n.TT)) / 2)
	default:
		return 0
	}
}
