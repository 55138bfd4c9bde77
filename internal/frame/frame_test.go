package frame

import (
	"testing"

	"github.com/ixvil/jxlcore/internal/bitio"
)

func TestSizeHeaderSmallRatioOne(t *testing.T) {
	w := bitio.NewWriter()
	w.Write(1, 1) // small=true
	w.Write(5, 7) // y5=7 -> ysize=64
	w.Write(3, 1) // ratio=1 -> 1:1
	w.ZeroPadToByte()
	r := bitio.NewReader(w.Bytes(), 0, len(w.Bytes()))

	sh := ReadSizeHeader(r)
	if sh.XSize != 64 || sh.YSize != 64 {
		t.Errorf("SizeHeader = %+v, want {64,64}", sh)
	}
}

func TestDefaultImageMetadata(t *testing.T) {
	w := bitio.NewWriter()
	w.Write(1, 1) // all_default
	w.ZeroPadToByte()
	r := bitio.NewReader(w.Bytes(), 0, len(w.Bytes()))

	m := ReadImageMetadata(r)
	if m.Orientation != 1 || !m.XybEncoded || m.BitsPerSample != 8 || !m.SRGB {
		t.Errorf("default ImageMetadata = %+v, want canonical defaults", m)
	}
}

func TestDefaultFrameHeader(t *testing.T) {
	w := bitio.NewWriter()
	w.Write(1, 1)
	w.ZeroPadToByte()
	r := bitio.NewReader(w.Bytes(), 0, len(w.Bytes()))

	fh := ReadFrameHeader(r)
	if fh.Type != FrameTypeRegular || !fh.IsLast || !fh.UsesVarDCT {
		t.Errorf("default FrameHeader = %+v, want regular/VarDCT/last", fh)
	}
}

func TestGroupLayoutCoversWholeFrame(t *testing.T) {
	gl := NewGroupLayout(300, 300, 256)
	if gl.NumGroups() != 4 {
		t.Fatalf("NumGroups() = %d, want 4", gl.NumGroups())
	}
	x0, y0, w, h := gl.GroupRect(3, 300, 300)
	if x0 != 256 || y0 != 256 || w != 44 || h != 44 {
		t.Errorf("GroupRect(3) = (%d,%d,%d,%d), want (256,256,44,44)", x0, y0, w, h)
	}
}
