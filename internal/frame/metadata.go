package frame

import (
	"github.com/ixvil/jxlcore/internal/bitio"
	"github.com/ixvil/jxlcore/internal/field"
)

// ImageMetadata carries the image-level properties that apply to every
// frame in the codestream: orientation, color-encoding defaults, and the
// xyb_encoded flag selecting the Color pipeline path.
type ImageMetadata struct {
	Orientation  uint32
	XybEncoded   bool
	BitsPerSample uint32
	SRGB         bool
}

// DefaultImageMetadata returns the canonical all_default=1 metadata
// (spec.md §4.8): orientation 1, XYB-encoded, 8-bit sRGB.
func DefaultImageMetadata() ImageMetadata {
	return ImageMetadata{Orientation: 1, XybEncoded: true, BitsPerSample: 8, SRGB: true}
}

// ReadImageMetadata decodes ImageMetadata, short-circuiting to the
// canonical defaults when the all_default flag is set.
func ReadImageMetadata(r *bitio.Reader) ImageMetadata {
	allDefault := field.ReadBool(r)
	if allDefault {
		return DefaultImageMetadata()
	}
	m := ImageMetadata{}
	m.Orientation = field.ReadU32(r, field.Val(1), field.BitsOffset(3, 1), field.BitsOffset(3, 9), field.BitsOffset(3, 1))
	m.XybEncoded = field.ReadBool(r)
	m.BitsPerSample = field.ReadU32(r, field.Val(8), field.Val(10), field.Val(12), field.BitsOffset(6, 1))
	m.SRGB = field.ReadBool(r)
	return m
}

// LoopFilter carries the Gaborish/EPF parameters the RenderPipeline
// builder consults.
type LoopFilter struct {
	Gab      bool
	EpfIters uint32
	GabLut   [3]float32
	SharpLut [8]float32
}

// defaultGabWeights are the canonical per-channel Gaborish weights.
var defaultGabWeights = [3]float32{0.115169525, 0.061248592, 0.115169525}

// defaultSharpLut are the canonical EPF sharpness-to-sigma lookup values.
var defaultSharpLut = [8]float32{0, 1, 2, 3, 4, 5, 6, 7}

// DefaultLoopFilter returns the canonical all_default=1 loop filter:
// Gaborish on, two EPF passes, default LUTs.
func DefaultLoopFilter() LoopFilter {
	return LoopFilter{Gab: true, EpfIters: 2, GabLut: defaultGabWeights, SharpLut: defaultSharpLut}
}

// ReadLoopFilter decodes a LoopFilter, short-circuiting to the canonical
// defaults when all_default is set.
func ReadLoopFilter(r *bitio.Reader) LoopFilter {
	allDefault := field.ReadBool(r)
	if allDefault {
		return DefaultLoopFilter()
	}
	lf := LoopFilter{}
	lf.Gab = field.ReadBool(r)
	lf.EpfIters = field.ReadU32(r, field.Val(2), field.Val(0), field.Val(1), field.Val(3))
	lf.GabLut = defaultGabWeights
	lf.SharpLut = defaultSharpLut
	return lf
}

// FrameType distinguishes regular frames from reference-only/LF-only
// frames used for progressive/animated coding (out of scope beyond the
// tag itself).
type FrameType uint8

const (
	FrameTypeRegular FrameType = iota
	FrameTypeLFFrame
	FrameTypeReferenceOnly
	FrameTypeSkipProgressive
)

// FrameHeader carries the per-frame coding parameters the decoder needs
// to set up the modular/VarDCT engine and render pipeline for one frame.
type FrameHeader struct {
	Type    FrameType
	IsLast  bool
	UsesVarDCT bool
	LF      LoopFilter
}

// DefaultFrameHeader returns the canonical all_default=1 frame header: a
// regular, VarDCT-coded, final frame.
func DefaultFrameHeader() FrameHeader {
	return FrameHeader{Type: FrameTypeRegular, IsLast: true, UsesVarDCT: true, LF: DefaultLoopFilter()}
}

// ReadFrameHeader decodes a FrameHeader, short-circuiting to the
// canonical defaults when all_default is set.
func ReadFrameHeader(r *bitio.Reader) FrameHeader {
	allDefault := field.ReadBool(r)
	if allDefault {
		return DefaultFrameHeader()
	}
	fh := FrameHeader{}
	typeSel := field.ReadU32(r, field.Val(0), field.Val(1), field.Val(2), field.Val(3))
	fh.Type = FrameType(typeSel)
	fh.UsesVarDCT = field.ReadBool(r)
	fh.IsLast = field.ReadBool(r)
	fh.LF = ReadLoopFilter(r)
	return fh
}
