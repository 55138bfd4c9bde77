package entropy

import (
	"github.com/pkg/errors"

	"github.com/ixvil/jxlcore/internal/bitio"
)

// ErrHistogram reports a malformed histogram encoding.
var ErrHistogram = errors.New("entropy: malformed histogram")

// kCodeLengthCodes is the number of meta-Huffman code-length symbols used
// to serialize a prefix code's code lengths.
const kCodeLengthCodes = 18

// Histogram is a decoded discrete distribution over an alphabet, scaled to
// AnsTabSize total weight, ready for alias-table construction.
type Histogram struct {
	Counts []uint32
}

// ReadHistogram decodes one histogram for an alphabet of the given size,
// following spec.md §4.3: a 1-bit "simple code" flag selects between an
// explicit small-alphabet encoding and a general, possibly-flat
// distribution.
func ReadHistogram(r *bitio.Reader, alphabetSize int) (*Histogram, error) {
	if r.Read(1) == 1 {
		return readSimpleHistogram(r, alphabetSize)
	}
	return readGeneralHistogram(r, alphabetSize)
}

func readSimpleHistogram(r *bitio.Reader, alphabetSize int) (*Histogram, error) {
	numSymbolsMinusOne := int(r.Read(2))
	numSymbols := numSymbolsMinusOne + 1

	symbols := make([]int, numSymbols)
	for i := range symbols {
		symbols[i] = int(ReadVarLenUint8(r))
		if symbols[i] >= alphabetSize {
			return nil, errors.Wrapf(ErrHistogram, "simple histogram symbol %d out of range (alphabet %d)", symbols[i], alphabetSize)
		}
	}

	counts := make([]uint32, alphabetSize)
	switch numSymbols {
	case 1:
		counts[symbols[0]] = AnsTabSize
	case 2:
		split := r.Read(AnsLogTabSize)
		counts[symbols[0]] = uint32(split)
		counts[symbols[1]] = AnsTabSize - uint32(split)
	default:
		// 3 or 4 symbols: read explicit weights for all but the last,
		// which takes the remainder.
		total := uint32(0)
		for i := 0; i < numSymbols-1; i++ {
			w := uint32(r.Read(AnsLogTabSize))
			counts[symbols[i]] = w
			total += w
		}
		if total > AnsTabSize {
			return nil, errors.Wrap(ErrHistogram, "simple histogram weights exceed table size")
		}
		counts[symbols[numSymbols-1]] = AnsTabSize - total
	}
	return &Histogram{Counts: counts}, nil
}

func readGeneralHistogram(r *bitio.Reader, alphabetSize int) (*Histogram, error) {
	if r.Read(1) == 1 {
		// Flat distribution over the full alphabet.
		return &Histogram{Counts: CreateFlatHistogram(alphabetSize, AnsTabSize)}, nil
	}

	lengths, err := readPrefixCodeLengths(r, alphabetSize)
	if err != nil {
		return nil, err
	}

	counts := make([]uint32, alphabetSize)
	remaining := uint32(AnsTabSize)
	remainingSymbols := 0
	lastNonzero := -1
	for i, l := range lengths {
		if l == 0 {
			continue
		}
		remainingSymbols++
		lastNonzero = i
	}
	if remainingSymbols == 0 {
		return nil, errors.Wrap(ErrHistogram, "prefix histogram has no nonzero-length symbols")
	}
	if remainingSymbols == 1 {
		counts[lastNonzero] = AnsTabSize
		return &Histogram{Counts: counts}, nil
	}

	for i, l := range lengths {
		if l == 0 {
			continue
		}
		w := r.Read(AnsLogTabSize - uint(l) + 1)
		counts[i] = uint32(w)
		if counts[i] > remaining {
			return nil, errors.Wrap(ErrHistogram, "prefix histogram weight exceeds remaining mass")
		}
		remaining -= counts[i]
	}
	if remaining != 0 {
		return nil, errors.Wrap(ErrHistogram, "prefix histogram weights do not sum to table size")
	}
	return &Histogram{Counts: counts}, nil
}

// readPrefixCodeLengths decodes the code-length-of-code-lengths meta code
// and then the MTF-coded per-symbol code lengths it gates, per spec.md
// §4.3's "meta-Huffman" description.
func readPrefixCodeLengths(r *bitio.Reader, alphabetSize int) ([]uint8, error) {
	var clCodeLengths [kCodeLengthCodes]uint8
	order := [kCodeLengthCodes]int{1, 2, 3, 4, 0, 5, 17, 6, 16, 7, 8, 9, 10, 11, 12, 13, 14, 15}

	numCodes := 0
	for i := 0; i < kCodeLengthCodes; i++ {
		l := r.Read(4)
		idx := order[i]
		clCodeLengths[idx] = uint8(l)
		if l != 0 {
			numCodes++
		}
		if numCodes >= 4 && i >= 4 {
			break
		}
	}

	clHuff, err := BuildHuffmanLUT(clCodeLengths[:])
	if err != nil {
		return nil, errors.Wrap(err, "building code-length Huffman table")
	}

	lengths := make([]uint8, alphabetSize)
	mtf := newMTF()
	i := 0
	var prevLen uint8 = 8
	repeatCount := 0
	for i < alphabetSize {
		sym, err := clHuff.Decode(r)
		if err != nil {
			return nil, err
		}
		switch {
		case sym < 16:
			repeatCount = 0
			v := mtf.decode(int(sym))
			lengths[i] = uint8(v)
			if v != 0 {
				prevLen = uint8(v)
			}
			i++
		case sym == 16:
			// Repeat previous non-zero length.
			repeatCount++
			extra := r.Read(2)
			count := 3 + int(extra)
			if repeatCount > 1 {
				count += 4 * (repeatCount - 1)
			}
			for k := 0; k < count && i < alphabetSize; k++ {
				lengths[i] = prevLen
				i++
			}
		default: // sym == 17
			repeatCount = 0
			extra := r.Read(7)
			count := 11 + int(extra)
			for k := 0; k < count && i < alphabetSize; k++ {
				lengths[i] = 0
				i++
			}
		}
	}
	return lengths, nil
}

// CreateFlatHistogram distributes total weight as evenly as possible over
// k symbols: every count is either floor(total/k) or that plus one, so
// max-min <= 1, and the counts sum exactly to total.
func CreateFlatHistogram(k int, total uint32) []uint32 {
	counts := make([]uint32, k)
	if k == 0 {
		return counts
	}
	base := total / uint32(k)
	extra := total % uint32(k)
	for i := 0; i < k; i++ {
		counts[i] = base
		if uint32(i) < extra {
			counts[i]++
		}
	}
	return counts
}
