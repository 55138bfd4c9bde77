package pipeline

import "github.com/ixvil/jxlcore/internal/color"

// XybToLinearStage converts three XYB channels to linear RGB in place via
// the shared OpsinParams.
type XybToLinearStage struct {
	Opsin *color.OpsinParams
}

func (s *XybToLinearStage) Name() string { return "XybToLinear" }

func (s *XybToLinearStage) ChannelModes() [3]ChannelMode {
	return [3]ChannelMode{ChannelInPlace, ChannelInPlace, ChannelInPlace}
}

func (s *XybToLinearStage) ProcessRow(rows [3][]float32, xsize, xpos, ypos, threadID int) bool {
	x, y, b := rows[0], rows[1], rows[2]
	for i := 0; i < xsize; i++ {
		r, g, bl := s.Opsin.XybToLinearRgb(float64(x[i]), float64(y[i]), float64(b[i]))
		x[i], y[i], b[i] = float32(r), float32(g), float32(bl)
	}
	return true
}

// LinearToSrgbStage applies the sRGB transfer function to three linear
// channels in place.
type LinearToSrgbStage struct{}

func (s *LinearToSrgbStage) Name() string { return "LinearToSrgb" }

func (s *LinearToSrgbStage) ChannelModes() [3]ChannelMode {
	return [3]ChannelMode{ChannelInPlace, ChannelInPlace, ChannelInPlace}
}

func (s *LinearToSrgbStage) ProcessRow(rows [3][]float32, xsize, xpos, ypos, threadID int) bool {
	for c := 0; c < 3; c++ {
		row := rows[c]
		if row == nil {
			continue
		}
		for i := 0; i < xsize; i++ {
			row[i] = float32(color.LinearToSrgb(float64(row[i])))
		}
	}
	return true
}

// YCbCrToRgbStage applies the JPEG-convention YCbCr->RGB transform to
// channels interpreted as (Cb, Y, Cr), per spec.md §4.6.
type YCbCrToRgbStage struct{}

func (s *YCbCrToRgbStage) Name() string { return "YCbCrToRgb" }

func (s *YCbCrToRgbStage) ChannelModes() [3]ChannelMode {
	return [3]ChannelMode{ChannelInPlace, ChannelInPlace, ChannelInPlace}
}

func (s *YCbCrToRgbStage) ProcessRow(rows [3][]float32, xsize, xpos, ypos, threadID int) bool {
	cb, y, cr := rows[0], rows[1], rows[2]
	for i := 0; i < xsize; i++ {
		r := y[i] + 1.402*cr[i]
		g := y[i] - 0.344136*cb[i] - 0.714136*cr[i]
		b := y[i] + 1.772*cb[i]
		cb[i], y[i], cr[i] = r, g, b
	}
	return true
}
