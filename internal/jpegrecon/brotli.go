package jpegrecon

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/pkg/errors"
)

// Decompressor is the streaming contract JpegRecon consumes; the core
// does not implement Brotli decompression itself (spec.md §6), it only
// requires something satisfying this interface.
type Decompressor interface {
	Decompress(compressed []byte) ([]byte, error)
}

// BrotliDecompressor adapts andybalholm/brotli's io.Reader-based API to
// the Decompressor contract.
type BrotliDecompressor struct{}

// Decompress fully drains a Brotli stream into memory.
func (BrotliDecompressor) Decompress(compressed []byte) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(compressed))
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "jpegrecon: brotli decompress")
	}
	return out, nil
}

// ReplayMarkers fills jd's unknown APP/COM payloads, inter-marker data,
// and tail data from a single Brotli-decompressed side-stream, in the
// fixed order spec.md §4.7 specifies: unknown APP payloads, COM
// payloads, inter-marker data, tail. Known APP types (ICC/Exif/XMP) are
// reconstructed from their fixed tag constants instead of consuming
// side-stream bytes.
func ReplayMarkers(jd *JPEGData, compressed []byte, dec Decompressor) error {
	raw, err := dec.Decompress(compressed)
	if err != nil {
		return errors.Wrap(err, "jpegrecon: replaying markers")
	}
	cursor := 0
	take := func(n int) ([]byte, error) {
		if cursor+n > len(raw) {
			return nil, errors.New("jpegrecon: side-stream exhausted before all markers were filled")
		}
		b := raw[cursor : cursor+n]
		cursor += n
		return b, nil
	}

	numICC := 0
	for i := range jd.AppMarkers {
		am := &jd.AppMarkers[i]
		if am.IsICC {
			numICC++
			am.Payload = append([]byte(KIccProfileTag), byte(numICC))
			continue
		}
		if am.IsExif {
			am.Payload = []byte(KExifTag)
			continue
		}
		if am.IsXMP {
			am.Payload = []byte(KXMPTag)
			continue
		}
		if am.MarkerByte == 0xFE {
			continue
		}
		p, err := take(len(am.Payload))
		if err != nil {
			return err
		}
		am.Payload = p
	}
	for i := range jd.AppMarkers {
		am := &jd.AppMarkers[i]
		if am.MarkerByte != 0xFE {
			continue
		}
		p, err := take(len(am.Payload))
		if err != nil {
			return err
		}
		am.Payload = p
	}
	for i := range jd.AppMarkers {
		am := &jd.AppMarkers[i]
		if am.IsICC && len(am.Payload) > 0 {
			am.Payload[len(am.Payload)-1] = byte(numICC)
		}
	}

	for i := range jd.InterMarkerData {
		p, err := take(len(jd.InterMarkerData[i]))
		if err != nil {
			return err
		}
		jd.InterMarkerData[i] = p
	}

	jd.TailData = raw[cursor:]
	return nil
}
