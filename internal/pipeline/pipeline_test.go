package pipeline

import (
	"testing"

	"github.com/ixvil/jxlcore/internal/color"
)

func TestGaborishIdentityOnFlatRow(t *testing.T) {
	g := &GaborishStage{Weights: [3]float32{0.1, 0.1, 0.1}}
	row := []float32{5, 5, 5, 5}
	rows := [3][]float32{row, nil, nil}
	g.ProcessRow(rows, 4, 0, 0, 0)
	for i, v := range row {
		if v < 4.99 || v > 5.01 {
			t.Errorf("flat row changed at %d: %v", i, v)
		}
	}
}

func TestYCbCrToRgbIdentityAtZero(t *testing.T) {
	s := &YCbCrToRgbStage{}
	cb := []float32{0}
	y := []float32{0.5}
	cr := []float32{0}
	rows := [3][]float32{cb, y, cr}
	s.ProcessRow(rows, 1, 0, 0, 0)
	if y[0] != 0.5 || cb[0] != 0.5 || cr[0] != 0.5 {
		t.Errorf("zero chroma should leave R=G=B=Y: got r=%v g=%v b=%v", cb[0], y[0], cr[0])
	}
}

func TestXybToLinearStageZeroInput(t *testing.T) {
	s := &XybToLinearStage{Opsin: color.NewOpsinParams(255)}
	x := []float32{0}
	y := []float32{0}
	b := []float32{0}
	rows := [3][]float32{x, y, b}
	s.ProcessRow(rows, 1, 0, 0, 0)
	for _, v := range []float32{x[0], y[0], b[0]} {
		if v < -0.01 || v > 0.01 {
			t.Errorf("XYB(0,0,0) should map near zero, got %v", v)
		}
	}
}

func TestPipelineRunsAllStages(t *testing.T) {
	p := &Pipeline{Stages: []Stage{&YCbCrToRgbStage{}}}
	cb := []float32{0}
	y := []float32{1}
	cr := []float32{0}
	ok := p.ProcessRow([3][]float32{cb, y, cr}, 1, 0, 0, 0)
	if !ok {
		t.Error("ProcessRow returned false")
	}
}
