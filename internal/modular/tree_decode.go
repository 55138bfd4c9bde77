package modular

import (
	"github.com/pkg/errors"

	"github.com/ixvil/jxlcore/internal/entropy"
)

// Tree-decoding contexts. The tree itself is coded as a small token stream
// over a handful of fixed contexts, distinct from the per-pixel contexts
// the resulting tree later selects.
const (
	treeCtxProperty = iota
	treeCtxPredictor
	treeCtxOffset
	treeCtxMulLog
	treeCtxMulBits
	treeCtxSplitVal
	numTreeContexts
)

// maxTreeNodes bounds runaway recursion from a corrupt stream.
const maxTreeNodes = 1 << 20

// ReadTree decodes the flat MA tree via ansReader, recursively depth-first
// in the same order the encoder serialized it: a property index of -1
// marks a leaf (encoded as token 0 over treeCtxProperty, biased by +1 so
// index 0 is "leaf"), any other value is a split node's property.
func ReadTree(ansReader *entropy.Reader) (*Tree, error) {
	t := &Tree{}
	nextContext := 0
	var build func() (int, error)
	build = func() (int, error) {
		if len(t.Nodes) > maxTreeNodes {
			return 0, errors.New("modular: MA tree exceeds node limit")
		}
		propPlusOne, err := ansReader.ReadSymbol(treeCtxProperty)
		if err != nil {
			return 0, errors.Wrap(err, "reading tree property")
		}

		idx := len(t.Nodes)
		t.Nodes = append(t.Nodes, Node{})

		if propPlusOne == 0 {
			predSym, err := ansReader.ReadSymbol(treeCtxPredictor)
			if err != nil {
				return 0, errors.Wrap(err, "reading leaf predictor")
			}
			offsetU, err := ansReader.ReadSymbol(treeCtxOffset)
			if err != nil {
				return 0, errors.Wrap(err, "reading leaf offset")
			}
			mulLog, err := ansReader.ReadSymbol(treeCtxMulLog)
			if err != nil {
				return 0, errors.Wrap(err, "reading leaf multiplier log")
			}
			mulBits, err := ansReader.ReadSymbol(treeCtxMulBits)
			if err != nil {
				return 0, errors.Wrap(err, "reading leaf multiplier bits")
			}
			ctx := nextContext
			nextContext++
			t.Nodes[idx] = Node{
				IsLeaf:     true,
				Context:    ctx,
				Predictor:  Predictor(predSym),
				Offset:     unpackSigned64(offsetU),
				Multiplier: (mulBits + 1) << mulLog,
			}
			return idx, nil
		}

		property := int(propPlusOne) - 1
		splitU, err := ansReader.ReadSymbol(treeCtxSplitVal)
		if err != nil {
			return 0, errors.Wrap(err, "reading tree split value")
		}
		splitVal := int32(unpackSigned64(splitU))

		left, err := build()
		if err != nil {
			return 0, err
		}
		right, err := build()
		if err != nil {
			return 0, err
		}
		t.Nodes[idx] = Node{
			IsLeaf:   false,
			Property: property,
			SplitVal: splitVal,
			Left:     left,
			Right:    right,
		}
		return idx, nil
	}

	if _, err := build(); err != nil {
		return nil, err
	}
	return t, nil
}

func unpackSigned64(u uint32) int64 {
	v := uint64(u)
	if v&1 != 0 {
		return -int64((v + 1) >> 1)
	}
	return int64(v >> 1)
}

// NumTreeContexts returns the fixed number of raw contexts the tree's own
// entropy stream uses, independent of however many pixel contexts the
// decoded tree itself defines.
func NumTreeContexts() int { return numTreeContexts }
