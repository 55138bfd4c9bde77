package field

import (
	"testing"

	"github.com/ixvil/jxlcore/internal/bitio"
)

func TestSignedPackRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 2, -2, 1000, -1000, 1 << 20, -(1 << 20)} {
		u := PackSigned(v)
		got := UnpackSigned(u)
		if got != v {
			t.Errorf("UnpackSigned(PackSigned(%d)) = %d, want %d", v, got, v)
		}
	}
}

func TestU64SelectorTwo(t *testing.T) {
	w := bitio.NewWriter()
	w.Write(2, 2)   // selector
	w.Write(8, 100) // bits
	w.ZeroPadToByte()
	r := bitio.NewReader(w.Bytes(), 0, len(w.Bytes()))
	if got := ReadU64(r); got != 117 {
		t.Errorf("ReadU64() = %d, want 117", got)
	}
}

func TestU64SelectorZeroAndOne(t *testing.T) {
	w := bitio.NewWriter()
	w.Write(2, 0)
	w.Write(2, 1)
	w.Write(4, 5)
	w.ZeroPadToByte()
	r := bitio.NewReader(w.Bytes(), 0, len(w.Bytes()))
	if got := ReadU64(r); got != 0 {
		t.Errorf("ReadU64() selector 0 = %d, want 0", got)
	}
	if got := ReadU64(r); got != 6 {
		t.Errorf("ReadU64() selector 1 = %d, want 6", got)
	}
}

func TestU32Distributions(t *testing.T) {
	w := bitio.NewWriter()
	w.Write(2, 1) // selector -> d1
	w.Write(5, 7) // BitsOffset(5, 1)
	w.ZeroPadToByte()
	r := bitio.NewReader(w.Bytes(), 0, len(w.Bytes()))
	got := ReadU32(r, Val(0), BitsOffset(5, 1), BitsOffset(9, 1), BitsOffset(13, 1))
	if got != 8 {
		t.Errorf("ReadU32() = %d, want 8", got)
	}
}

func TestF16OneAndNaN(t *testing.T) {
	w := bitio.NewWriter()
	w.Write(16, 0x3C00)
	w.Write(16, 0x7C00)
	w.ZeroPadToByte()
	r := bitio.NewReader(w.Bytes(), 0, len(w.Bytes()))

	v, ok := ReadF16(r)
	if !ok || v != 1.0 {
		t.Errorf("ReadF16(0x3C00) = (%v, %v), want (1.0, true)", v, ok)
	}
	_, ok = ReadF16(r)
	if ok {
		t.Error("ReadF16(0x7C00) ok = true, want false (Inf/NaN)")
	}
}
