package jpegrecon

import (
	"github.com/pkg/errors"

	"github.com/ixvil/jxlcore/internal/bitio"
	"github.com/ixvil/jxlcore/internal/field"
)

// maxMarkerOrder bounds the marker-order list length against a corrupt
// stream (spec.md §4.7: "cap 16384 entries").
const maxMarkerOrder = 16384

// ReadMetadata decodes phase 1 of the JPEG-reconstruction record: the
// field-encoded marker order, table definitions, and scan info. The
// caller must call r.JumpToByteBoundary() immediately afterward and feed
// the remaining bytes through a Brotli decompressor before calling
// ReplayMarkers.
func ReadMetadata(r *bitio.Reader) (*JPEGData, error) {
	jd := &JPEGData{}

	for i := 0; ; i++ {
		if i >= maxMarkerOrder {
			return nil, errors.New("jpegrecon: marker order exceeds maximum length")
		}
		m := field.ReadU32(r, field.Val(0), field.BitsOffset(4, 1), field.BitsOffset(8, 1), field.BitsOffset(16, 1))
		marker := byte(m) | 0xC0
		jd.MarkerOrder = append(jd.MarkerOrder, marker)
		if marker == MarkerEOI {
			break
		}
		if marker == MarkerDRI {
			jd.RestartInterval = field.ReadU32(r, field.Val(0), field.BitsOffset(8, 1), field.BitsOffset(16, 1), field.BitsOffset(32, 1))
		}
	}

	numQuant := field.ReadU32(r, field.Val(0), field.BitsOffset(2, 1), field.BitsOffset(4, 5), field.BitsOffset(8, 21))
	for i := uint32(0); i < numQuant; i++ {
		var q QuantTable
		q.Precision = uint8(field.ReadU32(r, field.Val(0), field.Val(1), field.Val(0), field.Val(0)))
		q.Index = uint8(field.ReadU32(r, field.Val(0), field.Val(1), field.Val(2), field.Val(3)))
		q.IsLast = field.ReadBool(r)
		for k := 0; k < 64; k++ {
			q.Values[k] = uint16(field.ReadU32(r, field.BitsOffset(8, 0), field.BitsOffset(16, 0), field.BitsOffset(16, 0), field.BitsOffset(16, 0)))
		}
		jd.QuantTables = append(jd.QuantTables, q)
	}

	numComponents := field.ReadU32(r, field.Val(1), field.Val(3), field.Val(4), field.BitsOffset(4, 5))
	for i := uint32(0); i < numComponents; i++ {
		var c Component
		c.ID = uint8(field.ReadU32(r, field.BitsOffset(8, 0), field.BitsOffset(8, 0), field.BitsOffset(8, 0), field.BitsOffset(8, 0)))
		c.HSampling = uint8(field.ReadU32(r, field.Val(1), field.Val(2), field.Val(3), field.Val(4)))
		c.VSampling = uint8(field.ReadU32(r, field.Val(1), field.Val(2), field.Val(3), field.Val(4)))
		c.QuantIndex = uint8(field.ReadU32(r, field.Val(0), field.Val(1), field.Val(2), field.Val(3)))
		jd.Components = append(jd.Components, c)
	}

	numHuff := field.ReadU32(r, field.Val(0), field.BitsOffset(3, 1), field.BitsOffset(5, 9), field.BitsOffset(8, 41))
	for i := uint32(0); i < numHuff; i++ {
		var h HuffmanTable
		h.SlotID = uint8(field.ReadU32(r, field.BitsOffset(8, 0), field.BitsOffset(8, 0), field.BitsOffset(8, 0), field.BitsOffset(8, 0)))
		total := 0
		for b := 0; b < KJpegHuffmanMaxBitLength; b++ {
			cnt := uint8(field.ReadU32(r, field.Val(0), field.BitsOffset(3, 1), field.BitsOffset(6, 9), field.BitsOffset(8, 73)))
			h.Counts[b] = cnt
			total += int(cnt)
		}
		h.Values = make([]uint8, total)
		for v := 0; v < total; v++ {
			h.Values[v] = uint8(r.Read(8))
		}
		jd.HuffmanTables = append(jd.HuffmanTables, h)
	}

	numScans := field.ReadU32(r, field.Val(1), field.Val(2), field.Val(3), field.BitsOffset(3, 4))
	for i := uint32(0); i < numScans; i++ {
		scan, err := readScanInfo(r)
		if err != nil {
			return nil, errors.Wrapf(err, "reading scan %d", i)
		}
		jd.Scans = append(jd.Scans, scan)
	}

	return jd, nil
}

func readScanInfo(r *bitio.Reader) (ScanInfo, error) {
	var s ScanInfo
	numComps := field.ReadU32(r, field.Val(1), field.Val(2), field.Val(3), field.Val(4))
	for i := uint32(0); i < numComps; i++ {
		var sc ScanComponent
		sc.ComponentID = uint8(field.ReadU32(r, field.BitsOffset(8, 0), field.BitsOffset(8, 0), field.BitsOffset(8, 0), field.BitsOffset(8, 0)))
		sc.DCTableID = uint8(field.ReadU32(r, field.Val(0), field.Val(1), field.Val(2), field.Val(3)))
		sc.ACTableID = uint8(field.ReadU32(r, field.Val(0), field.Val(1), field.Val(2), field.Val(3)))
		s.Components = append(s.Components, sc)
	}
	s.Ss = uint8(r.Read(8))
	s.Se = uint8(r.Read(8))
	s.Ah = uint8(r.Read(4))
	s.Al = uint8(r.Read(4))

	numResets := field.ReadU32(r, field.Val(0), field.BitsOffset(8, 1), field.BitsOffset(16, 1), field.BitsOffset(32, 1))
	for i := uint32(0); i < numResets; i++ {
		s.ResetPoints = append(s.ResetPoints, field.ReadU32(r, field.BitsOffset(8, 0), field.BitsOffset(16, 0), field.BitsOffset(24, 0), field.BitsOffset(32, 0)))
	}
	numZeroRuns := field.ReadU32(r, field.Val(0), field.BitsOffset(8, 1), field.BitsOffset(16, 1), field.BitsOffset(32, 1))
	for i := uint32(0); i < numZeroRuns; i++ {
		s.ExtraZeroRuns = append(s.ExtraZeroRuns, field.ReadU32(r, field.BitsOffset(8, 0), field.BitsOffset(16, 0), field.BitsOffset(24, 0), field.BitsOffset(32, 0)))
	}
	return s, nil
}
