package entropy

import (
	"github.com/pkg/errors"

	"github.com/ixvil/jxlcore/internal/bitio"
	"github.com/ixvil/jxlcore/internal/field"
)

// ReadANSCode decodes a complete entropy configuration (spec.md §4.3's
// ANSCode) for numRawContexts raw contexts: an optional LZ77 prelude, the
// context map, then per-cluster HybridUintConfig plus either a histogram
// (ANS path) or code lengths (prefix path).
func ReadANSCode(r *bitio.Reader, numRawContexts int) (*ANSCode, error) {
	lz77 := LZ77Params{}
	lz77.Enabled = field.ReadBool(r)
	if lz77.Enabled {
		lz77.MinSymbol = field.ReadU32(r, field.Val(224), field.BitsOffset(8, 0), field.BitsOffset(10, 0), field.BitsOffset(18, 0))
		lz77.MinLength = field.ReadU32(r, field.Val(3), field.BitsOffset(4, 3), field.BitsOffset(5, 19), field.BitsOffset(9, 51))
		lz77.LengthContext = numRawContexts
		lz77.DistContext = numRawContexts + 1
		numRawContexts += 2
	}

	ctxMap, numClusters, err := ReadContextMap(r, numRawContexts)
	if err != nil {
		return nil, errors.Wrap(err, "reading context map")
	}

	usePrefix := field.ReadBool(r)

	contexts := make([]perContext, numClusters)
	maxNumBits := uint(0)
	for c := 0; c < numClusters; c++ {
		cfg := readHybridUintConfig(r)
		if uint(cfg.SplitExponent) > maxNumBits {
			maxNumBits = cfg.SplitExponent
		}
		pc := perContext{config: cfg}
		if usePrefix {
			lengths, err := readPrefixCodeLengths(r, AnsTabSize)
			if err != nil {
				return nil, errors.Wrapf(err, "reading prefix lengths for cluster %d", c)
			}
			lut, err := BuildHuffmanLUT(lengths)
			if err != nil {
				return nil, errors.Wrapf(err, "building Huffman table for cluster %d", c)
			}
			pc.huff = lut
		} else {
			hist, err := ReadHistogram(r, AnsTabSize)
			if err != nil {
				return nil, errors.Wrapf(err, "reading histogram for cluster %d", c)
			}
			pc.alias = BuildAliasTable(hist.Counts, AnsLogTabSize)
		}
		contexts[c] = pc
	}

	return NewANSCode(contexts, ctxMap, usePrefix, maxNumBits, lz77), nil
}

// readHybridUintConfig decodes the three small integers parameterizing a
// context's hybrid-uint token scheme.
func readHybridUintConfig(r *bitio.Reader) HybridUintConfig {
	splitExponent := field.ReadU32(r, field.Val(0), field.BitsOffset(3, 1), field.BitsOffset(4, 9), field.BitsOffset(5, 25))
	if splitExponent == 0 {
		return HybridUintConfig{SplitExponent: 0, MSBInToken: 0, LSBInToken: 0}
	}
	msbBits := uint(0)
	for (uint32(1) << msbBits) <= splitExponent {
		msbBits++
	}
	msb := field.ReadU32(r, field.Val(0), field.BitsOffset(1, 0), field.BitsOffset(2, 0), field.BitsOffset(uint(msbBits), 0))
	if msb > splitExponent {
		msb = splitExponent
	}
	lsbMax := splitExponent - msb
	lsbBits := uint(0)
	for (uint32(1) << lsbBits) <= lsbMax+1 {
		lsbBits++
	}
	lsb := field.ReadU32(r, field.Val(0), field.BitsOffset(1, 0), field.BitsOffset(2, 0), field.BitsOffset(lsbBits, 0))
	if lsb > lsbMax {
		lsb = lsbMax
	}
	return HybridUintConfig{SplitExponent: uint(splitExponent), MSBInToken: uint(msb), LSBInToken: uint(lsb)}
}
