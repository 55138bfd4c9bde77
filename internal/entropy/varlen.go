package entropy

import "github.com/ixvil/jxlcore/internal/bitio"

// ReadVarLenUint8 reads a JXL "VarLenUint8": a zero flag bit, or an
// exponent-prefixed tail, assembled as (1<<nbits)+tail. Used when decoding
// histogram symbol counts.
func ReadVarLenUint8(r *bitio.Reader) uint32 {
	if r.Read(1) == 0 {
		return 0
	}
	nbits := r.Read(3)
	if nbits == 0 {
		return 1
	}
	tail := r.Read(uint(nbits))
	return (uint32(1) << nbits) + uint32(tail)
}

// ReadVarLenUint16 is the 16-bit-range counterpart of ReadVarLenUint8,
// using a wider exponent field.
func ReadVarLenUint16(r *bitio.Reader) uint32 {
	if r.Read(1) == 0 {
		return 0
	}
	nbits := r.Read(4)
	if nbits == 0 {
		return 1
	}
	tail := r.Read(uint(nbits))
	return (uint32(1) << nbits) + uint32(tail)
}
