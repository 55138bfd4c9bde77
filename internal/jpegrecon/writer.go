package jpegrecon

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// WriteJPEG reassembles jd's decoded metadata and replayed payloads into
// a byte-exact legacy JPEG stream: SOI, then each marker in
// jd.MarkerOrder with its appropriate payload, then EOI. An empty
// MarkerOrder yields no output (spec.md §4.7).
func WriteJPEG(jd *JPEGData) ([]byte, error) {
	if len(jd.MarkerOrder) == 0 {
		return nil, nil
	}

	var out []byte
	out = append(out, 0xFF, MarkerSOI)

	quantIdx, huffIdx, scanIdx, appIdx, interIdx := 0, 0, 0, 0, 0

	for _, marker := range jd.MarkerOrder {
		switch {
		case marker == MarkerEOI:
			out = append(out, 0xFF, MarkerEOI)
		case marker >= 0xE0 && marker <= 0xEF || marker == 0xFE:
			if appIdx >= len(jd.AppMarkers) {
				return nil, errors.Errorf("jpegrecon: marker order references APP marker %d beyond %d decoded", appIdx, len(jd.AppMarkers))
			}
			am := jd.AppMarkers[appIdx]
			appIdx++
			out = appendMarkerWithPayload(out, marker, am.Payload)
		case marker == 0xDB: // DQT
			for quantIdx < len(jd.QuantTables) {
				q := jd.QuantTables[quantIdx]
				quantIdx++
				payload := quantTablePayload(q)
				out = appendMarkerWithPayload(out, marker, payload)
				if q.IsLast {
					break
				}
			}
		case marker == 0xC4: // DHT
			if huffIdx >= len(jd.HuffmanTables) {
				return nil, errors.New("jpegrecon: marker order references more DHT tables than decoded")
			}
			h := jd.HuffmanTables[huffIdx]
			huffIdx++
			out = appendMarkerWithPayload(out, marker, huffmanTablePayload(h))
		case marker >= 0xC0 && marker <= 0xCF && marker != 0xC4 && marker != 0xC8 && marker != 0xCC:
			out = appendMarkerWithPayload(out, marker, sofPayload(jd))
		case marker == MarkerDRI:
			payload := make([]byte, 2)
			binary.BigEndian.PutUint16(payload, uint16(jd.RestartInterval))
			out = appendMarkerWithPayload(out, marker, payload)
		case marker == MarkerSOS:
			if scanIdx >= len(jd.Scans) {
				return nil, errors.New("jpegrecon: marker order references more scans than decoded")
			}
			s := jd.Scans[scanIdx]
			scanIdx++
			out = appendMarkerWithPayload(out, marker, sosPayload(s))
			if interIdx < len(jd.InterMarkerData) {
				out = append(out, jd.InterMarkerData[interIdx]...)
				interIdx++
			}
		default:
			if interIdx < len(jd.InterMarkerData) {
				out = append(out, jd.InterMarkerData[interIdx]...)
				interIdx++
			}
		}
	}

	out = append(out, jd.TailData...)
	return out, nil
}

func appendMarkerWithPayload(out []byte, marker byte, payload []byte) []byte {
	out = append(out, 0xFF, marker)
	size := len(payload) + 2
	out = append(out, byte(size>>8), byte(size))
	out = append(out, payload...)
	return out
}

func quantTablePayload(q QuantTable) []byte {
	payload := []byte{q.Precision<<4 | q.Index}
	for _, v := range q.Values {
		if q.Precision == 0 {
			payload = append(payload, byte(v))
		} else {
			payload = append(payload, byte(v>>8), byte(v))
		}
	}
	return payload
}

func huffmanTablePayload(h HuffmanTable) []byte {
	payload := []byte{h.SlotID}
	for _, c := range h.Counts {
		payload = append(payload, c)
	}
	payload = append(payload, h.Values...)
	return payload
}

func sofPayload(jd *JPEGData) []byte {
	payload := []byte{8, 0, 0, 0, 0, byte(len(jd.Components))}
	for _, c := range jd.Components {
		payload = append(payload, c.ID, c.HSampling<<4|c.VSampling, c.QuantIndex)
	}
	return payload
}

func sosPayload(s ScanInfo) []byte {
	payload := []byte{byte(len(s.Components))}
	for _, c := range s.Components {
		payload = append(payload, c.ComponentID, c.DCTableID<<4|c.ACTableID)
	}
	payload = append(payload, s.Ss, s.Se, s.Ah<<4|s.Al)
	return payload
}
