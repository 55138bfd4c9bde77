package image

import "testing"

func TestPlaneRowAliasesStorage(t *testing.T) {
	p := NewPlane[int32](4, 3)
	row := p.Row(1)
	row[0] = 42
	if p.At(0, 1) != 42 {
		t.Errorf("At(0,1) = %d, want 42 (Row must alias storage)", p.At(0, 1))
	}
}

func TestRectClamp(t *testing.T) {
	r := Rect{X0: -2, Y0: -2, XSize: 10, YSize: 10}
	c := r.Clamp(8, 8)
	if c.X0 != 0 || c.Y0 != 0 || c.XSize != 8 || c.YSize != 8 {
		t.Errorf("Clamp = %+v, want {0,0,8,8}", c)
	}
}

func TestRectIntersectDisjointIsEmpty(t *testing.T) {
	a := Rect{X0: 0, Y0: 0, XSize: 4, YSize: 4}
	b := Rect{X0: 10, Y0: 10, XSize: 4, YSize: 4}
	if !a.Intersect(b).Empty() {
		t.Error("disjoint rects should intersect to empty")
	}
}

func TestRectTranslate(t *testing.T) {
	r := Rect{X0: 1, Y0: 2, XSize: 3, YSize: 4}
	tr := r.Translate(5, 5)
	if tr.X0 != 6 || tr.Y0 != 7 || tr.XSize != 3 || tr.YSize != 4 {
		t.Errorf("Translate = %+v", tr)
	}
}
