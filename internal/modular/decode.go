package modular

import (
	"github.com/pkg/errors"

	"github.com/ixvil/jxlcore/internal/entropy"
)

// DecodeChannel fills one channel's pixels in row-major order from
// ansReader, consulting tree for each pixel's (context, predictor,
// offset, multiplier) and the weighted predictor for WP-based leaves.
//
// group and channelIndex feed the PropChannel/PropGroup tree properties;
// they do not affect decode order, only context selection.
func DecodeChannel(ansReader *entropy.Reader, tree *Tree, channelIndex, group int, ch *Channel, wpHeader WeightedHeader) error {
	w, h := ch.W, ch.H
	if w == 0 || h == 0 {
		return nil
	}

	wp := NewWeightedState(wpHeader, w)

	rowAt := func(y int) []int32 {
		if y < 0 {
			return nil
		}
		return ch.Data.Row(y)
	}

	for y := 0; y < h; y++ {
		row := ch.Data.Row(y)
		topRow := rowAt(y - 1)
		topTopRow := rowAt(y - 2)

		for x := 0; x < w; x++ {
			n := neighborhoodAt(row, topRow, topTopRow, x, w)

			wpPred := wp.Predict(x, n)
			props := BuildProperties(channelIndex, group, y, x, n, wp.LastError())
			leaf := tree.Lookup(props)

			u, err := ansReader.ReadSymbol(leaf.Context)
			if err != nil {
				return errors.Wrapf(err, "decoding pixel (%d,%d) of channel %d", x, y, channelIndex)
			}
			residual := unpackSigned64(u)

			var predicted int32
			if leaf.Predictor == PredictorWeighted {
				predicted = wpPred
			} else {
				predicted = PredictOne(leaf.Predictor, n)
			}

			value := int32(residual)*int32(leaf.Multiplier) + int32(leaf.Offset) + predicted
			row[x] = value
			wp.Update(x, value)
		}
	}
	return nil
}

// neighborhoodAt reads the six causal neighbor samples for column x of
// the current row, given the current and two prior rows; out-of-range
// neighbors (first row/column) read as zero, matching the encoder's
// border convention, except TR at the last column, which reads T.
func neighborhoodAt(row, topRow, topTopRow []int32, x, w int) Neighborhood {
	var n Neighborhood
	if x > 0 {
		n.L = row[x-1]
	}
	if x > 1 {
		n.LL = row[x-2]
	}
	if topRow != nil {
		n.T = topRow[x]
		if x > 0 {
			n.TL = topRow[x-1]
		}
		if x+1 < w {
			n.TR = topRow[x+1]
		} else {
			n.TR = topRow[x]
		}
	}
	if topTopRow != nil {
		n.TT = topTopRow[x]
	}
	return n
}
