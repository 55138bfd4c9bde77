package entropy

import (
	"github.com/pkg/errors"

	"github.com/ixvil/jxlcore/internal/bitio"
)

// PrefixMaxBits is the longest code length a JXL prefix code may use
// (spec.md §6).
const PrefixMaxBits = 15

// defaultRootBits is the root LUT size for canonical-length codes whose
// longest code fits within a single lookup; codes deeper than this use a
// secondary table held in the root entry's secondary field.
const defaultRootBits = 8

type huffEntry struct {
	bits  uint8 // 0 means "unused" for root entries that only point to a secondary table
	value uint16
	// secondary, when non-nil, is consulted after consuming rootBits when
	// the code is longer than the root table can resolve directly.
	secondary []huffEntry
	secBits   uint8
}

// HuffmanLUT is a canonical Huffman decode table: a root table of size
// 1<<rootBits, with secondary tables hung off root entries for codes
// whose length exceeds rootBits.
type HuffmanLUT struct {
	root     []huffEntry
	rootBits uint
}

// BuildHuffmanLUT builds a canonical Huffman table from code lengths
// (index = symbol, value = code length in bits; 0 = symbol unused).
func BuildHuffmanLUT(lengths []uint8) (*HuffmanLUT, error) {
	maxLen := uint8(0)
	numCodes := 0
	for _, l := range lengths {
		if l > PrefixMaxBits {
			return nil, errors.Wrap(ErrHistogram, "prefix code length exceeds PrefixMaxBits")
		}
		if l > maxLen {
			maxLen = l
		}
		if l > 0 {
			numCodes++
		}
	}
	if numCodes == 0 {
		return &HuffmanLUT{root: make([]huffEntry, 1), rootBits: 0}, nil
	}

	// Canonical codes: symbols sorted by (length, symbol index) get
	// consecutive code values within each length, matching the assignment
	// order the encoder must also use.
	type symLen struct {
		sym int
		len uint8
	}
	syms := make([]symLen, 0, numCodes)
	for i, l := range lengths {
		if l > 0 {
			syms = append(syms, symLen{i, l})
		}
	}
	// Stable sort by length then symbol index.
	for i := 1; i < len(syms); i++ {
		for j := i; j > 0 && (syms[j].len < syms[j-1].len ||
			(syms[j].len == syms[j-1].len && syms[j].sym < syms[j-1].sym)); j-- {
			syms[j], syms[j-1] = syms[j-1], syms[j]
		}
	}

	code := uint32(0)
	prevLen := uint8(0)
	type coded struct {
		sym  int
		len  uint8
		code uint32
	}
	all := make([]coded, len(syms))
	for i, s := range syms {
		code <<= (s.len - prevLen)
		all[i] = coded{s.sym, s.len, code}
		code++
		prevLen = s.len
	}

	rootBits := uint(maxLen)
	if rootBits > defaultRootBits {
		rootBits = defaultRootBits
	}

	lut := &HuffmanLUT{root: make([]huffEntry, 1<<rootBits), rootBits: rootBits}

	for _, c := range all {
		// Codes are canonical MSB-first; the bitstream is read LSB-first,
		// so the code bits are reversed before table placement (standard
		// trick for LSB-first canonical Huffman decoding).
		rev := reverseBits(c.code, uint(c.len))
		if uint(c.len) <= rootBits {
			step := uint32(1) << c.len
			for idx := rev; idx < uint32(1)<<rootBits; idx += step {
				lut.root[idx] = huffEntry{bits: c.len, value: uint16(c.sym)}
			}
		} else {
			rootIdx := rev & ((1 << rootBits) - 1)
			e := &lut.root[rootIdx]
			if e.secondary == nil {
				secBits := uint(maxLen) - rootBits
				e.secondary = make([]huffEntry, 1<<secBits)
				e.secBits = uint8(secBits)
				e.bits = 0 // marks "consult secondary"
			}
			subRev := rev >> rootBits
			subLen := uint(c.len) - rootBits
			step := uint32(1) << subLen
			for idx := subRev; idx < uint32(1)<<e.secBits; idx += step {
				e.secondary[idx] = huffEntry{bits: c.len - uint8(rootBits), value: uint16(c.sym)}
			}
		}
	}
	return lut, nil
}

func reverseBits(v uint32, n uint) uint32 {
	var r uint32
	for i := uint(0); i < n; i++ {
		r = (r << 1) | (v & 1)
		v >>= 1
	}
	return r
}

// Decode reads one symbol: up to rootBits bits resolve directly from the
// root table; if the root entry has no code (bits==0) but a secondary
// table, additional bits are consumed to resolve it there.
func (h *HuffmanLUT) Decode(r *bitio.Reader) (uint32, error) {
	if len(h.root) == 1 && h.rootBits == 0 {
		return uint32(h.root[0].value), nil
	}
	r.Refill()
	idx := uint32(r.Peek(h.rootBits))
	e := h.root[idx]
	if e.bits > 0 {
		r.Consume(uint(e.bits))
		return uint32(e.value), nil
	}
	if e.secondary == nil {
		return 0, errors.Wrap(ErrHistogram, "invalid Huffman code")
	}
	r.Consume(h.rootBits)
	r.Refill()
	sub := uint32(r.Peek(uint(e.secBits)))
	se := e.secondary[sub]
	if se.bits == 0 {
		return 0, errors.Wrap(ErrHistogram, "invalid Huffman code (secondary)")
	}
	r.Consume(uint(se.bits))
	return uint32(se.value), nil
}
