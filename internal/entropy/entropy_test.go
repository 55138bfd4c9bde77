package entropy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ixvil/jxlcore/internal/bitio"
)

func TestFlatHistogramSumsAndBalanced(t *testing.T) {
	counts := CreateFlatHistogram(5, AnsTabSize)
	var sum uint32
	var min, max uint32 = AnsTabSize, 0
	for _, c := range counts {
		sum += c
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	if sum != AnsTabSize {
		t.Errorf("sum = %d, want %d", sum, AnsTabSize)
	}
	if max-min > 1 {
		t.Errorf("max-min = %d, want <= 1", max-min)
	}
}

func TestAliasTableUniformLookupIsUniform(t *testing.T) {
	const n = 8
	counts := CreateFlatHistogram(n, AnsTabSize)
	table := BuildAliasTable(counts, AnsLogTabSize)

	seen := make([]int, n)
	for xi := uint32(0); xi < AnsTabSize; xi++ {
		sym, _, _ := table.Lookup(xi)
		seen[sym]++
	}
	want := AnsTabSize / n
	for i, c := range seen {
		if c != want {
			t.Errorf("symbol %d seen %d times, want %d", i, c, want)
		}
	}
}

func TestAliasTableLookupReturnsSymbolFrequency(t *testing.T) {
	counts := []uint32{AnsTabSize}
	table := BuildAliasTable(counts, AnsLogTabSize)
	_, _, freq := table.Lookup(0)
	require.Equal(t, uint32(AnsTabSize), freq)
}

// TestRansSingleSymbolStateIsInvariant exercises the canonical rANS
// identity: decoding through a single-symbol, full-weight (AnsTabSize)
// histogram must leave the state unchanged at every step, since
// freq == AnsTabSize cancels the >> AnsLogTabSize exactly. A decoder
// that drops the per-symbol frequency factor (treating every symbol as
// weight 1) fails this for any state above the renormalization
// threshold.
func TestRansSingleSymbolStateIsInvariant(t *testing.T) {
	counts := []uint32{AnsTabSize}
	table := BuildAliasTable(counts, AnsLogTabSize)

	code := NewANSCode([]perContext{{alias: table, config: DefaultHybridUintConfig}}, []int{0}, false, 32, LZ77Params{})

	r := bitio.NewReader(make([]byte, 64), 0, 64)
	rd := NewReader(r, code)
	rd.state = ansFinalState
	rd.initialized = true

	for i := 0; i < 8; i++ {
		before := rd.state
		if _, err := rd.ReadSymbol(0); err != nil {
			t.Fatalf("ReadSymbol: %v", err)
		}
		if rd.state != before {
			t.Fatalf("state changed from 0x%X to 0x%X on a full-weight single-symbol histogram", before, rd.state)
		}
	}
}

func TestHybridUintRoundTrip(t *testing.T) {
	cfg := HybridUintConfig{SplitExponent: 4, MSBInToken: 2, LSBInToken: 0}
	for v := uint32(0); v < 65536; v++ {
		token, nbits, extra := cfg.Encode(v)

		w := bitio.NewWriter()
		if nbits > 0 {
			w.Write(nbits, uint64(extra))
		}
		w.ZeroPadToByte()
		r := bitio.NewReader(w.Bytes(), 0, len(w.Bytes()))

		got := cfg.Decode(token, func(n uint) uint32 { return uint32(r.Read(n)) })
		if got != v {
			t.Fatalf("HybridUint round trip for %d: got %d (token=%d nbits=%d extra=%d)", v, got, token, nbits, extra)
		}
	}
}

func TestHuffmanLUTRoundTrip(t *testing.T) {
	// Three symbols with lengths 1,2,2 - a valid canonical code.
	lengths := []uint8{1, 2, 2}
	lut, err := BuildHuffmanLUT(lengths)
	require.NoError(t, err)

	// Canonical codes (MSB-first): sym0="0", sym1="10", sym2="11".
	// LSB-first bitstream with reversed bits: sym0 -> 0 (1 bit),
	// sym1 -> 01 (2 bits reversed), sym2 -> 11 (2 bits reversed).
	w := bitio.NewWriter()
	w.Write(1, 0)    // sym0
	w.Write(2, 0b01) // sym1 reversed
	w.Write(2, 0b11) // sym2 reversed
	w.ZeroPadToByte()
	r := bitio.NewReader(w.Bytes(), 0, len(w.Bytes()))

	for _, want := range []uint32{0, 1, 2} {
		got, err := lut.Decode(r)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}
