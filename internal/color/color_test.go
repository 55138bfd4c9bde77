package color

import "testing"

func approxEqual(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestOpsinParamsIntensityScaling(t *testing.T) {
	p := NewOpsinParams(255.0)
	want := DefaultInverseOpsinAbsorbanceMatrix[0]
	if !approxEqual(p.InverseMatrix[0][0], want, 1e-9) {
		t.Errorf("InverseMatrix[0][0] = %v, want %v (scale 1.0 at intensityTarget=255)", p.InverseMatrix[0][0], want)
	}
	for lane := 0; lane < 4; lane++ {
		if p.InverseMatrix[3][lane] != p.InverseMatrix[3][0] {
			t.Errorf("InverseMatrix[3] lanes not broadcast uniformly: %v", p.InverseMatrix[3])
		}
	}
}

func TestXybZeroMapsNearZeroRgb(t *testing.T) {
	p := NewOpsinParams(255.0)
	r, g, b := p.XybToLinearRgb(0, 0, 0)
	if !approxEqual(r, 0, 1e-2) || !approxEqual(g, 0, 1e-2) || !approxEqual(b, 0, 1e-2) {
		t.Errorf("XybToLinearRgb(0,0,0) = (%v,%v,%v), want near (0,0,0)", r, g, b)
	}
}

func TestSrgbRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.001, 0.0031308055625, 0.1, 0.5, 0.99, 1.0} {
		enc := LinearToSrgb(v)
		back := SrgbToLinear(enc)
		if !approxEqual(back, v, 1e-6) {
			t.Errorf("round trip for %v: encoded=%v decoded=%v", v, enc, back)
		}
	}
}

func TestSrgbFastMatchesExactWithinTolerance(t *testing.T) {
	for i := 0; i <= 100; i++ {
		v := float64(i) / 100.0
		exact := LinearToSrgb(v)
		fast := LinearToSrgbFast(v)
		if !approxEqual(exact, fast, 1e-3) {
			t.Errorf("LinearToSrgbFast(%v) = %v, exact = %v, diff > 1e-3", v, fast, exact)
		}
	}
}

func TestLinearToSrgb8RowClampsAndRounds(t *testing.T) {
	in := []float64{-1, 0, 1, 2}
	out := make([]byte, len(in))
	LinearToSrgb8Row(in, out)
	if out[0] != 0 {
		t.Errorf("out[0] = %d, want 0 (clamped)", out[0])
	}
	if out[2] != 255 {
		t.Errorf("out[2] = %d, want 255", out[2])
	}
	if out[3] != 255 {
		t.Errorf("out[3] = %d, want 255 (clamped)", out[3])
	}
}

func TestClampFloat64(t *testing.T) {
	if ClampFloat64(-5, 0, 10) != 0 {
		t.Error("ClampFloat64 did not clamp low")
	}
	if ClampFloat64(15, 0, 10) != 10 {
		t.Error("ClampFloat64 did not clamp high")
	}
	if ClampFloat64(5, 0, 10) != 5 {
		t.Error("ClampFloat64 altered in-range value")
	}
}
