// Package field implements the JPEG XL field coder: the small family of
// self-describing variable-length integer and float decoders used
// throughout the codestream to read header fields, transform parameters,
// and other small values whose distribution is known ahead of time to
// both encoder and decoder.
package field

import (
	"math"

	"github.com/ixvil/jxlcore/internal/bitio"
)

// Distr describes one of the four distributions a U32 field selects
// between. It is either a constant (Val) or a width-plus-offset read
// (BitsOffset); spec.md §4.2 requires that decoder and encoder agree on
// the exact (d0..d3) tuple for every field, so Distr values are plain data
// rather than behavior, mirroring the teacher's enum-like marker/flag
// constants in codestream/header.go.
type Distr struct {
	Width  uint   // number of raw bits to read; 0 for a constant distribution
	Offset uint32 // value added to the raw bits (or the constant itself when Width==0)
}

// Val returns a constant distribution.
func Val(c uint32) Distr { return Distr{Width: 0, Offset: c} }

// BitsOffset returns a distribution that reads w raw bits and adds c.
func BitsOffset(w uint, c uint32) Distr { return Distr{Width: w, Offset: c} }

// ReadU32 decodes a value using the 2-bit-selected 4-distribution U32
// coder. The four distributions must be the exact tuple the encoder used
// for this field.
func ReadU32(r *bitio.Reader, d0, d1, d2, d3 Distr) uint32 {
	sel := r.Read(2)
	var d Distr
	switch sel {
	case 0:
		d = d0
	case 1:
		d = d1
	case 2:
		d = d2
	default:
		d = d3
	}
	if d.Width == 0 {
		return d.Offset
	}
	return uint32(r.Read(d.Width)) + d.Offset
}

// ReadU64 decodes a value using the JXL U64 coder: a 2-bit selector chooses
// among a zero constant, a 4-bit range, an 8-bit range, or 12 raw bits
// followed by a chain of flag-prefixed 8-bit continuation groups (up to 64
// value bits total).
func ReadU64(r *bitio.Reader) uint64 {
	sel := r.Read(2)
	switch sel {
	case 0:
		return 0
	case 1:
		return 1 + r.Read(4)
	case 2:
		return 17 + r.Read(8)
	default:
		// selector == 3: 12 raw bits, then while a 1-bit continuation
		// flag is set, read 8 more bits shifted up by 8 additional bits
		// each round.
		value := r.Read(12)
		shift := uint(12)
		for {
			cont := r.Read(1)
			if cont == 0 {
				break
			}
			if shift >= 60 {
				// 64-bit ceiling reached: the last group carries only the
				// 4 remaining bits and no further flag follows.
				next := r.Read(4)
				value |= next << shift
				break
			}
			next := r.Read(8)
			value |= next << shift
			shift += 8
		}
		return value
	}
}

// ReadF16 reads 16 raw bits as an IEEE half-precision float and widens it
// to float32. It returns ok=false if the exponent field is all-ones
// (Inf/NaN), which the JXL bitstream never legally encodes.
func ReadF16(r *bitio.Reader) (value float32, ok bool) {
	raw := uint16(r.Read(16))
	sign := uint32(raw>>15) & 1
	exp := uint32(raw>>10) & 0x1F
	mant := uint32(raw) & 0x3FF

	if exp == 31 {
		return 0, false
	}

	if exp == 0 {
		if mant == 0 {
			bits := sign << 31
			return math.Float32frombits(bits), true
		}
		// Subnormal half: normalize by shifting until the implicit bit
		// appears, adjusting the biased exponent accordingly.
		e := int32(-14)
		for mant&0x400 == 0 {
			mant <<= 1
			e--
		}
		mant &= 0x3FF
		bits := (sign << 31) | uint32(e+127) << 23 | (mant << 13)
		return math.Float32frombits(bits), true
	}

	e32 := int32(exp) - 15 + 127
	bits := (sign << 31) | (uint32(e32) << 23) | (mant << 13)
	return math.Float32frombits(bits), true
}

// PackSigned maps a signed integer to an unsigned token using the
// zigzag-like scheme spec.md §4.2 requires: non-negative values map to
// even tokens, negative values to odd tokens.
func PackSigned(x int64) uint64 {
	if x >= 0 {
		return uint64(x) * 2
	}
	return uint64(-x)*2 - 1
}

// UnpackSigned inverts PackSigned.
func UnpackSigned(u uint64) int64 {
	if u&1 != 0 {
		return -int64((u + 1) >> 1)
	}
	return int64(u >> 1)
}

// ReadBool reads a single boolean bit.
func ReadBool(r *bitio.Reader) bool {
	return r.Read(1) != 0
}
