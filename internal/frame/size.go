// Package frame decodes the JPEG XL size, image-metadata, loop-filter,
// and frame headers. The Rect/Plane/Image3 container types used
// throughout decode live in internal/image.
//
// Grounded on the teacher's internal/codestream.Header: a plain struct
// per marker/section, accessor methods for derived values, and a
// Validate/CalculateDerivedValues pattern rather than parsing inline.
package frame

import (
	"github.com/ixvil/jxlcore/internal/bitio"
	"github.com/ixvil/jxlcore/internal/field"
)

// aspectRatios are the eight SizeHeader ratio codes, expressed as
// xsize/ysize multipliers; ratio 0 means "read xsize explicitly".
var aspectRatios = [8][2]uint32{
	{0, 0}, // custom
	{1, 1},
	{6, 5},
	{4, 3},
	{3, 2},
	{16, 9},
	{5, 4},
	{2, 1},
}

// SizeHeader holds the decoded frame dimensions.
type SizeHeader struct {
	XSize, YSize uint32
}

// ReadSizeHeader decodes a SizeHeader per spec.md §4.8: a small-image
// fast path (5-bit height plus a ratio code) or full U32-coded
// dimensions.
func ReadSizeHeader(r *bitio.Reader) SizeHeader {
	small := field.ReadBool(r)
	if small {
		y5 := r.Read(5)
		ysize := 8 * (uint32(y5) + 1)
		ratio := r.Read(3)
		if ratio == 0 {
			x5 := r.Read(5)
			xsize := 8 * (uint32(x5) + 1)
			return SizeHeader{XSize: xsize, YSize: ysize}
		}
		rr := aspectRatios[ratio]
		xsize := ysize * rr[0] / rr[1]
		return SizeHeader{XSize: xsize, YSize: ysize}
	}

	ysize := field.ReadU32(r, field.BitsOffset(9, 1), field.BitsOffset(13, 1), field.BitsOffset(18, 1), field.BitsOffset(30, 1))
	xsize := field.ReadU32(r, field.BitsOffset(9, 1), field.BitsOffset(13, 1), field.BitsOffset(18, 1), field.BitsOffset(30, 1))
	return SizeHeader{XSize: xsize, YSize: ysize}
}
