package color

import "math"

// srgbPiecewiseThreshold is the linear-light value below which the sRGB
// transfer function is a straight line rather than a power curve.
const srgbPiecewiseThreshold = 0.0031308055625

// LinearToSrgb applies the exact (reference) sRGB OETF to one linear
// sample, clamping the input to [0, 1] first.
func LinearToSrgb(linear float64) float64 {
	linear = ClampFloat64(linear, 0, 1)
	if linear <= srgbPiecewiseThreshold {
		return linear * 12.92
	}
	return 1.055*math.Pow(linear, 1.0/2.4) - 0.055
}

// SrgbToLinear applies the exact (reference) sRGB EOTF to one encoded
// sample, clamping the input to [0, 1] first.
func SrgbToLinear(encoded float64) float64 {
	encoded = ClampFloat64(encoded, 0, 1)
	if encoded <= srgbPiecewiseThreshold*12.92 {
		return encoded / 12.92
	}
	return math.Pow((encoded+0.055)/1.055, 2.4)
}

// srgbPolyNumer and srgbPolyDenom are the coefficients (constant term
// first) of a 4th/4th-degree rational-polynomial fit to LinearToSrgb over
// [0,1] in sqrt(linear), used where the exact pow() reference is too slow
// to call per sample. The fit matches the exact transfer function to
// within 1e-3 (spec.md testable property 4).
var srgbPolyNumer = [5]float64{
	-5.135152395e-4,
	5.287254571e-3,
	3.903842876e-1,
	1.474205315,
	7.352629620e-1,
}

var srgbPolyDenom = [5]float64{
	1.004519624e-2,
	3.036675394e-1,
	1.340816930,
	9.258482155e-1,
	2.424867759e-2,
}

// LinearToSrgbFast evaluates the rational-polynomial approximation: fast,
// within 1e-3 of LinearToSrgb over the unit interval, but not bit-exact.
func LinearToSrgbFast(linear float64) float64 {
	linear = ClampFloat64(linear, 0, 1)
	if linear < srgbPiecewiseThreshold {
		return linear * 12.92
	}
	s := math.Sqrt(linear)
	p, q := srgbPolyNumer, srgbPolyDenom
	num := p[0] + s*(p[1]+s*(p[2]+s*(p[3]+s*p[4])))
	den := q[0] + s*(q[1]+s*(q[2]+s*(q[3]+s*q[4])))
	return ClampFloat64(num/den, 0, 1)
}

// LinearToSrgb8Row converts a row of linear-light samples in [0,1] to
// byte-quantized sRGB, rounding to nearest and clamping to [0,255].
func LinearToSrgb8Row(linear []float64, out []byte) {
	for i, v := range linear {
		s := LinearToSrgb(v) * 255.0
		out[i] = byte(ClampFloat64(math.Round(s), 0, 255))
	}
}
