package modular

import (
	"github.com/ixvil/jxlcore/internal/bitio"
	"github.com/ixvil/jxlcore/internal/field"
)

// GroupHeader carries the per-group modular decode parameters: whether to
// reuse the frame-global MA tree, the weighted-predictor parameters, and
// the ordered transform list the encoder applied (inverses run in
// reverse order after sample decode).
//
// spec.md names these fields but not their bit layout; this module's
// wire format is an original design, following the all_default
// short-circuit and ReadU32-distribution-table shape the rest of the
// codestream's headers use (frame.ReadFrameHeader, frame.ReadLoopFilter),
// not a verified reproduction of a reference bitstream.
type GroupHeader struct {
	UseGlobalTree  bool
	WeightedHeader WeightedHeader
	Transforms     []interface{} // RCT, Palette, or Squeeze values, in encode order
}

// ReadGroupHeader decodes one group's header: the global-tree flag, an
// optional weighted-predictor override, and the transform list.
func ReadGroupHeader(r *bitio.Reader) GroupHeader {
	gh := GroupHeader{}
	gh.UseGlobalTree = field.ReadBool(r)

	gh.WeightedHeader = DefaultWeightedHeader()
	if !field.ReadBool(r) { // wp_all_default
		gh.WeightedHeader.AllDefault = false
		for i := range gh.WeightedHeader.Weight {
			gh.WeightedHeader.Weight[i] = field.ReadU32(r,
				field.Val(16), field.BitsOffset(4, 0), field.BitsOffset(8, 0), field.BitsOffset(16, 0))
		}
	}

	numTransforms := field.ReadU32(r, field.Val(0), field.BitsOffset(2, 1), field.BitsOffset(4, 5), field.BitsOffset(8, 21))
	gh.Transforms = make([]interface{}, 0, numTransforms)
	for i := uint32(0); i < numTransforms; i++ {
		kind := field.ReadU32(r, field.Val(0), field.Val(1), field.Val(2), field.Val(2))
		switch kind {
		case 0:
			perm := int(field.ReadU32(r, field.BitsOffset(3, 0), field.BitsOffset(3, 0), field.BitsOffset(3, 0), field.BitsOffset(3, 0))) % len(rctPermutations)
			typ := int(field.ReadU32(r, field.BitsOffset(3, 0), field.BitsOffset(3, 0), field.BitsOffset(3, 0), field.BitsOffset(3, 0))) % 7
			gh.Transforms = append(gh.Transforms, RCT{PermutationIndex: perm, Type: typ})
		case 1:
			beginC := int(field.ReadU32(r, field.Val(0), field.BitsOffset(3, 1), field.BitsOffset(6, 9), field.BitsOffset(10, 73)))
			numC := int(field.ReadU32(r, field.Val(1), field.Val(3), field.Val(4), field.BitsOffset(13, 1)))
			nbColors := int(field.ReadU32(r, field.BitsOffset(8, 0), field.BitsOffset(10, 256), field.BitsOffset(12, 1280), field.BitsOffset(16, 5376)))
			nbDeltas := int(field.ReadU32(r, field.Val(0), field.BitsOffset(8, 1), field.BitsOffset(10, 257), field.BitsOffset(16, 1281)))
			gh.Transforms = append(gh.Transforms, Palette{BeginC: beginC, NumC: numC, NbColors: nbColors, NbDeltas: nbDeltas})
		default:
			horizontal := field.ReadBool(r)
			gh.Transforms = append(gh.Transforms, Squeeze{Horizontal: horizontal})
		}
	}
	return gh
}

// ExpandChannelsForTransforms builds the channel layout DecodeChannel
// must actually decode samples into: starting from the base xsize x
// ysize x 3 image a frame without any modular transforms would have, it
// applies each transform's forward channel-list effect in order, the
// mirror image of ApplyInverseTransforms's reverse-order collapse.
func ExpandChannelsForTransforms(xsize, ysize int, transforms []interface{}) *Image {
	im := &Image{Channels: []Channel{
		NewChannel(xsize, ysize, 0, 0),
		NewChannel(xsize, ysize, 0, 0),
		NewChannel(xsize, ysize, 0, 0),
	}}
	for _, tr := range transforms {
		switch t := tr.(type) {
		case RCT:
			// Channel count and shape are unaffected.
		case Palette:
			expandPalette(im, t)
		case Squeeze:
			expandSqueeze(im)
		}
	}
	return im
}

func expandPalette(im *Image, tr Palette) {
	if tr.BeginC < 0 || tr.BeginC+tr.NumC > len(im.Channels) || tr.NumC == 0 {
		return
	}
	removed := im.Channels[tr.BeginC]
	paletteMeta := NewChannel(tr.NbColors, tr.NumC, 0, 0)
	indexCh := NewChannel(removed.W, removed.H, removed.HShift, removed.VShift)

	newChannels := make([]Channel, 0, len(im.Channels)-tr.NumC+2)
	newChannels = append(newChannels, im.Channels[:tr.BeginC]...)
	newChannels = append(newChannels, paletteMeta, indexCh)
	newChannels = append(newChannels, im.Channels[tr.BeginC+tr.NumC:]...)
	im.Channels = newChannels
	im.NumMetaChannels++
}

// expandSqueeze splits the last channel into average and residual
// channels of half its width; vertical squeezes are not distinguished and
// are laid out the same way.
func expandSqueeze(im *Image) {
	if len(im.Channels) == 0 {
		return
	}
	last := im.Channels[len(im.Channels)-1]
	halfW := (last.W + 1) / 2
	avg := NewChannel(halfW, last.H, last.HShift+1, last.VShift)
	res := NewChannel(halfW, last.H, last.HShift+1, last.VShift)
	im.Channels = append(im.Channels[:len(im.Channels)-1], avg, res)
}
