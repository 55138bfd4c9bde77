package bitio

import "testing"

func TestReaderReadLSBFirst(t *testing.T) {
	// 0b00010111 = 0x17: low 2 bits = 0b11, next 4 bits = 0b0101.
	r := NewReader([]byte{0x17}, 0, 1)
	if got := r.Read(2); got != 0b11 {
		t.Errorf("Read(2) = %b, want 11", got)
	}
	if got := r.Read(4); got != 0b0101 {
		t.Errorf("Read(4) = %b, want 0101", got)
	}
}

func TestWriterThenReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	w.Write(2, 0b11)
	w.Write(4, 0b0101)
	w.ZeroPadToByte()
	got := w.Bytes()
	want := []byte{0x17}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("Bytes() = %v, want %v", got, want)
	}

	r := NewReader(got, 0, len(got))
	if v := r.Read(2); v != 0b11 {
		t.Errorf("Read(2) = %b, want 11", v)
	}
	if v := r.Read(4); v != 0b0101 {
		t.Errorf("Read(4) = %b, want 0101", v)
	}
}

func TestReaderOverreadSynthesizesZeros(t *testing.T) {
	r := NewReader([]byte{0xFF}, 0, 1)
	r.Read(8)
	v := r.Read(8)
	if v != 0 {
		t.Errorf("Read past EOF = %d, want 0", v)
	}
	if r.AllReadsWithinBounds() {
		t.Error("AllReadsWithinBounds() = true, want false after overread")
	}
	if err := r.Close(); err == nil {
		t.Error("Close() = nil, want error for unacknowledged overread")
	}
	r.AcknowledgeOverread()
	if err := r.Close(); err != nil {
		t.Errorf("Close() after acknowledge = %v, want nil", err)
	}
}

func TestJumpToByteBoundary(t *testing.T) {
	r := NewReader([]byte{0b00000111}, 0, 1)
	r.Read(3)
	if err := r.JumpToByteBoundary(); err != nil {
		t.Fatalf("JumpToByteBoundary() = %v, want nil", err)
	}
	if r.TotalBitsConsumed()%8 != 0 {
		t.Errorf("TotalBitsConsumed() = %d, not byte-aligned", r.TotalBitsConsumed())
	}
}

func TestJumpToByteBoundaryNonZeroPadding(t *testing.T) {
	r := NewReader([]byte{0b00001111}, 0, 1)
	r.Read(3)
	if err := r.JumpToByteBoundary(); err == nil {
		t.Error("JumpToByteBoundary() = nil, want error for non-zero padding")
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	r := NewReader([]byte{0xAB}, 0, 1)
	r.Refill()
	first := r.Peek(4)
	second := r.Peek(4)
	if first != second {
		t.Errorf("Peek(4) not idempotent: %d != %d", first, second)
	}
}

func TestSkipBits(t *testing.T) {
	r := NewReader([]byte{0x17, 0xFF}, 0, 2)
	r.SkipBits(2)
	if got := r.Read(4); got != 0b0101 {
		t.Errorf("Read(4) after SkipBits(2) = %b, want 0101", got)
	}
}
