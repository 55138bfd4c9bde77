package entropy

import (
	"github.com/ixvil/jxlcore/internal/bitio"
)

// ReadContextMap decodes the mapping from up to numContexts raw contexts
// to (at most 256) entropy-coder clusters: spec.md §4.3's 1-bit "single
// cluster" shortcut, else an MTF-coded cluster-index sequence with an
// optional post-MTF pass, itself entropy-coded with a small histogram.
func ReadContextMap(r *bitio.Reader, numContexts int) ([]int, int, error) {
	if r.Read(1) == 1 {
		ctxMap := make([]int, numContexts)
		return ctxMap, 1, nil
	}

	useMTF := r.Read(1) == 1

	lengths, err := readPrefixCodeLengths(r, 256+16)
	if err != nil {
		return nil, 0, err
	}
	lut, err := BuildHuffmanLUT(lengths)
	if err != nil {
		return nil, 0, err
	}

	raw := make([]int, numContexts)
	maxCluster := 0
	for i := 0; i < numContexts; i++ {
		sym, err := lut.Decode(r)
		if err != nil {
			return nil, 0, err
		}
		raw[i] = int(sym)
		if raw[i] > maxCluster {
			maxCluster = raw[i]
		}
	}

	if useMTF {
		raw = InverseMTF(raw, maxCluster+1)
		for _, v := range raw {
			if v > maxCluster {
				maxCluster = v
			}
		}
	}
	return raw, maxCluster + 1, nil
}
