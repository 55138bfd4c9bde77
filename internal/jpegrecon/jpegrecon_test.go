package jpegrecon

import "testing"

func TestWriteJPEGMinimalStartsAndEndsCorrectly(t *testing.T) {
	jd := &JPEGData{MarkerOrder: []byte{0xC0, MarkerEOI}}
	out, err := WriteJPEG(jd)
	if err != nil {
		t.Fatalf("WriteJPEG: %v", err)
	}
	if len(out) < 4 {
		t.Fatalf("output too short: %v", out)
	}
	if out[0] != 0xFF || out[1] != MarkerSOI {
		t.Errorf("output does not start with FF D8: %v", out[:2])
	}
	if out[len(out)-2] != 0xFF || out[len(out)-1] != MarkerEOI {
		t.Errorf("output does not end with FF D9: %v", out[len(out)-2:])
	}
}

func TestWriteJPEGEmptyMarkerOrderYieldsNoOutput(t *testing.T) {
	jd := &JPEGData{}
	out, err := WriteJPEG(jd)
	if err != nil {
		t.Fatalf("WriteJPEG: %v", err)
	}
	if out != nil {
		t.Errorf("expected nil output for empty marker order, got %v", out)
	}
}

func TestQuantTablePayload8Bit(t *testing.T) {
	q := QuantTable{Precision: 0, Index: 1}
	p := quantTablePayload(q)
	if len(p) != 1+64 {
		t.Fatalf("len(payload) = %d, want 65", len(p))
	}
	if p[0] != 0x01 {
		t.Errorf("precision/index byte = %x, want 0x01", p[0])
	}
}

func TestHuffmanTablePayloadLength(t *testing.T) {
	h := HuffmanTable{SlotID: 0, Values: []uint8{1, 2, 3}}
	p := huffmanTablePayload(h)
	if len(p) != 1+KJpegHuffmanMaxBitLength+3 {
		t.Errorf("len(payload) = %d, want %d", len(p), 1+KJpegHuffmanMaxBitLength+3)
	}
}
