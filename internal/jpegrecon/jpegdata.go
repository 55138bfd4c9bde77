// Package jpegrecon decodes JPEG XL's JPEG-reconstruction metadata and
// replays it, together with a Brotli-decompressed side-stream, into a
// byte-exact legacy JPEG file.
//
// Grounded on the teacher's internal/codestream.Header/parser.go: a
// marker-driven struct with typed sub-structs per marker kind, populated
// by a sequential field-decode pass with errors.Wrap at every step.
package jpegrecon

// Marker byte values this package cares about; SOF/DHT/DQT/SOS content is
// carried in JPEGData's typed fields rather than raw marker bytes.
const (
	MarkerSOI = 0xD8
	MarkerEOI = 0xD9
	MarkerSOS = 0xDA
	MarkerDRI = 0xDD
)

// Well-known APP-marker payload tags, reconstructed from fixed constants
// rather than streamed through Brotli.
const (
	KIccProfileTag = "ICC_PROFILE\x00"
	KExifTag       = "Exif\x00\x00"
	KXMPTag        = "http://ns.adobe.com/xap/1.0/\x00"
)

const (
	KJpegHuffmanMaxBitLength = 16
	KJpegHuffmanAlphabetSize = 256
)

// QuantTable is one DQT table entry.
type QuantTable struct {
	Precision uint8
	Index     uint8
	IsLast    bool
	Values    [64]uint16
}

// HuffmanTable is one DHT table entry: JPEG's canonical
// (counts-per-length, values) representation.
type HuffmanTable struct {
	SlotID  uint8
	Counts  [KJpegHuffmanMaxBitLength]uint8
	Values  []uint8
}

// Component describes one SOF component.
type Component struct {
	ID          uint8
	HSampling   uint8
	VSampling   uint8
	QuantIndex  uint8
}

// ScanComponent describes one SOS component selector.
type ScanComponent struct {
	ComponentID uint8
	DCTableID   uint8
	ACTableID   uint8
}

// ScanInfo is one SOS section's header.
type ScanInfo struct {
	Components      []ScanComponent
	Ss, Se          uint8
	Ah, Al          uint8
	ResetPoints     []uint32
	ExtraZeroRuns   []uint32
}

// AppMarker is one reconstructed APP/COM marker: either a known type
// (ICC/Exif/XMP, reconstructed from the constants above) or an opaque
// payload replayed verbatim from the Brotli side-stream.
type AppMarker struct {
	MarkerByte byte // 0xE0-0xEF for APPn, 0xFE for COM
	IsICC      bool
	IsExif     bool
	IsXMP      bool
	Payload    []byte
}

// JPEGData is the fully decoded JPEG-reconstruction record: everything
// the writer needs to reassemble the original JPEG byte stream.
type JPEGData struct {
	MarkerOrder []byte // full marker bytes (0xC0-0xFE), in stream order, ending in EOI

	AppMarkers []AppMarker

	QuantTables []QuantTable
	Components  []Component

	HuffmanTables []HuffmanTable

	Scans []ScanInfo

	RestartInterval uint32

	InterMarkerData [][]byte
	TailData        []byte

	PaddingBits []bool
}
