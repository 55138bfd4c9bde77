package pipeline

import (
	"github.com/ixvil/jxlcore/internal/color"
	"github.com/ixvil/jxlcore/internal/frame"
)

// BuildParams bundles what the builder needs beyond the frame header:
// the shared OpsinParams (nil when the frame doesn't use the XYB path)
// and an optional precomputed sigma image for EPF.
type BuildParams struct {
	Opsin      *color.OpsinParams
	Sigma      *SigmaImage
	Upsampling int
}

// Build assembles the stage list for one frame, following spec.md
// §4.6's fixed ordering: Gaborish, EPF, upsampling, color transform,
// then linear->sRGB when the XYB path is used.
func Build(lf frame.LoopFilter, xybEncoded bool, p BuildParams) *Pipeline {
	pl := &Pipeline{}

	if lf.Gab {
		pl.Stages = append(pl.Stages, &GaborishStage{Weights: lf.GabLut})
	}
	for pass := 0; pass < int(lf.EpfIters) && p.Sigma != nil; pass++ {
		pl.Stages = append(pl.Stages, &EPFStage{Pass: pass, Sigma: p.Sigma})
	}
	if p.Upsampling > 1 {
		for c := 0; c < 3; c++ {
			pl.Stages = append(pl.Stages, &UpsampleStage{Factor: p.Upsampling, Channel: c, Kernel: DefaultKernel2x})
		}
	}
	if xybEncoded {
		if p.Opsin != nil {
			pl.Stages = append(pl.Stages, &XybToLinearStage{Opsin: p.Opsin})
		}
		pl.Stages = append(pl.Stages, &LinearToSrgbStage{})
	} else {
		pl.Stages = append(pl.Stages, &YCbCrToRgbStage{})
	}
	return pl
}
