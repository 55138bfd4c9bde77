package modular

import "testing"

func TestClampedGradientStaysInRange(t *testing.T) {
	cases := []struct{ t, l, tl int32 }{
		{10, 20, 15}, {-5, 5, 100}, {0, 0, 0}, {255, 0, 0},
	}
	for _, c := range cases {
		got := ClampedGradient(c.t, c.l, c.tl)
		lo, hi := c.l, c.t
		if lo > hi {
			lo, hi = hi, lo
		}
		if got < lo || got > hi {
			t.Errorf("ClampedGradient(%d,%d,%d) = %d, out of [%d,%d]", c.t, c.l, c.tl, got, lo, hi)
		}
	}
}

func TestPredictOneBasic(t *testing.T) {
	n := Neighborhood{L: 7, T: 3}
	if PredictOne(PredictorZero, n) != 0 {
		t.Error("Zero predictor must return 0")
	}
	if PredictOne(PredictorLeft, n) != 7 {
		t.Error("Left predictor must return L")
	}
	if PredictOne(PredictorTop, n) != 3 {
		t.Error("Top predictor must return T")
	}
	if got := PredictOne(PredictorAverage0, n); got != 5 {
		t.Errorf("Average0 = %d, want 5", got)
	}
}

func TestSelectPredictorMatchesSpecExample(t *testing.T) {
	n := Neighborhood{L: 20, T: 10, TL: 15}
	if got := PredictOne(PredictorSelect, n); got != 10 {
		t.Errorf("Select(L=20,T=10,TL=15) = %d, want 10", got)
	}
}

func TestRCTIdentity(t *testing.T) {
	a := []int32{10, 20}
	b := []int32{30, 40}
	c := []int32{50, 60}
	rct := RCT{PermutationIndex: 0, Type: 0}
	rct.ApplyInverse([3][]int32{a, b, c})
	if a[0] != 10 || b[0] != 30 || c[0] != 50 {
		t.Errorf("identity RCT changed values: %v %v %v", a, b, c)
	}
}

func TestPaletteInverseMatchesTable(t *testing.T) {
	palette := [][]int32{
		{10, 40, 70, 100},
		{20, 50, 80, 110},
		{30, 60, 90, 120},
	}
	indices := []int32{0, 1, 2, 3}
	out := [][]int32{make([]int32, 4), make([]int32, 4), make([]int32, 4)}
	p := Palette{BeginC: 0, NumC: 3, NbColors: 4}
	p.ApplyInverse(palette, indices, out)

	want := [][]int32{{10, 40, 70, 100}, {20, 50, 80, 110}, {30, 60, 90, 120}}
	for c := 0; c < 3; c++ {
		for i := 0; i < 4; i++ {
			if out[c][i] != want[c][i] {
				t.Errorf("channel %d index %d = %d, want %d", c, i, out[c][i], want[c][i])
			}
		}
	}
}

func TestSqueezeHorizontalZeroResidual(t *testing.T) {
	avg := []int32{5, 5}
	res := []int32{0, 0}
	s := Squeeze{Horizontal: true}
	out := s.ApplyInverseRow(avg, res)
	want := []int32{5, 5, 5, 5}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d (full: %v)", i, out[i], want[i], out)
		}
	}
}

func TestTreeLookupSingleLeaf(t *testing.T) {
	tree := &Tree{Nodes: []Node{{IsLeaf: true, Context: 0, Predictor: PredictorZero}}}
	leaf := tree.Lookup([numProperties]int32{})
	if !leaf.IsLeaf || leaf.Predictor != PredictorZero {
		t.Error("single-node tree must resolve to its one leaf")
	}
}

func TestTreeLookupSplit(t *testing.T) {
	tree := &Tree{Nodes: []Node{
		{IsLeaf: false, Property: PropX, SplitVal: 5, Left: 1, Right: 2},
		{IsLeaf: true, Context: 1, Predictor: PredictorLeft},
		{IsLeaf: true, Context: 2, Predictor: PredictorTop},
	}}
	var props [numProperties]int32
	props[PropX] = 3
	leaf := tree.Lookup(props)
	if leaf.Context != 1 {
		t.Errorf("x=3 <= split(5) should go left, got context %d", leaf.Context)
	}
	props[PropX] = 9
	leaf = tree.Lookup(props)
	if leaf.Context != 2 {
		t.Errorf("x=9 > split(5) should go right, got context %d", leaf.Context)
	}
}

func TestWeightedStatePredictAndUpdate(t *testing.T) {
	ws := NewWeightedState(DefaultWeightedHeader(), 4)
	n := Neighborhood{L: 10, T: 10, TL: 10}
	pred := ws.Predict(0, n)
	if pred < 0 || pred > 20 {
		t.Errorf("Predict returned implausible value %d for flat neighborhood", pred)
	}
	ws.Update(0, 10)
	if ws.LastError() != 0 {
		t.Errorf("LastError after exact prediction = %d, want 0", ws.LastError())
	}
}
