// Package pipeline implements the JPEG XL RenderPipeline: a declarative
// per-row stage catalog (Gaborish, EPF, upsampling, color transforms)
// assembled by frame header into an ordered list that ProcessRow walks
// over disjoint (ypos, thread_id) pairs.
//
// Grounded on the teacher's decoder.go / colorspace.go pairing of a
// dispatch table keyed by an enum to small pure functions, generalized
// from a single post-decode color step to an ordered stage list.
package pipeline

// ChannelMode tags how a stage treats one of its declared channels.
type ChannelMode uint8

const (
	ChannelIgnored ChannelMode = iota
	ChannelInput
	ChannelOutput
	ChannelInPlace
	ChannelInOut
)

// Stage is one render-pipeline step. Implementations are leaf data with
// no shared state, dispatched by a tag rather than a class hierarchy
// (spec.md §9 design note): ProcessRow must be a pure function of its
// declared inputs and the stage's own static parameters.
type Stage interface {
	Name() string
	ChannelModes() [3]ChannelMode
	// ProcessRow transforms one row of up to three channels in place.
	// xsize is the row's pixel width, xpos/ypos its frame-relative
	// origin, threadID identifies the calling worker for stages that
	// keep per-thread scratch space.
	ProcessRow(rows [3][]float32, xsize, xpos, ypos, threadID int) bool
}

// Pipeline is an ordered list of stages a frame's rows are run through,
// single-threaded within a group and parallel across groups (spec.md
// §5).
type Pipeline struct {
	Stages []Stage
}

// ProcessRow runs rows through every stage in order.
func (p *Pipeline) ProcessRow(rows [3][]float32, xsize, xpos, ypos, threadID int) bool {
	for _, s := range p.Stages {
		if !s.ProcessRow(rows, xsize, xpos, ypos, threadID) {
			return false
		}
	}
	return true
}
