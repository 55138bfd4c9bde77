// Package modular implements the JPEG XL modular image decoder: the MA
// decision tree, the predictor catalog (including the weighted
// predictor), the per-group pixel decode loop, and the invertible RCT,
// Palette, and Squeeze transforms.
//
// It is grounded on the teacher's internal/mct package for the shape of
// an invertible transform over int32 component slices (small pure
// functions plus a clamp helper), generalized from a single 3x3 color
// transform to a list of channels and a tagged-variant transform
// pipeline.
package modular

import "github.com/ixvil/jxlcore/internal/image"

// Channel is one modular-image component: an integer plane plus the
// subsampling shifts relating its coordinates to the frame origin.
type Channel struct {
	W, H           int
	HShift, VShift int
	Data           *image.Plane[int32]
}

// NewChannel allocates a zero-filled channel of the given logical size.
func NewChannel(w, h, hshift, vshift int) Channel {
	return Channel{W: w, H: h, HShift: hshift, VShift: vshift, Data: image.NewPlane[int32](w, h)}
}

// Image is an ordered list of channels; the first NumMetaChannels entries
// are non-spatial (palettes, meta channels produced by transforms).
type Image struct {
	Channels       []Channel
	NumMetaChannels int
}

// InsertMetaChannel inserts ch at position idx among the meta channels and
// bumps NumMetaChannels, as the Palette transform does when it creates
// its lookup-table channel.
func (im *Image) InsertMetaChannel(idx int, ch Channel) {
	im.Channels = append(im.Channels, Channel{})
	copy(im.Channels[idx+1:], im.Channels[idx:])
	im.Channels[idx] = ch
	im.NumMetaChannels++
}

// RemoveChannel deletes the channel at idx, decrementing NumMetaChannels
// if it was a meta channel.
func (im *Image) RemoveChannel(idx int) {
	if idx < im.NumMetaChannels {
		im.NumMetaChannels--
	}
	im.Channels = append(im.Channels[:idx], im.Channels[idx+1:]...)
}
