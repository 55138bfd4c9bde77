package frame

// GroupLayout describes how a frame's pixels are partitioned into
// independently decodable groups: each group owns its own bit/entropy
// readers and the modular engine reads it in full isolation (spec.md §5:
// "single-threaded within a group, parallel across groups").
type GroupLayout struct {
	GroupDim      int
	GroupsPerRow  int
	GroupsPerCol  int
}

// NewGroupLayout computes the group grid for a frame of size (xsize,
// ysize) using the given group dimension (typically 256).
func NewGroupLayout(xsize, ysize, groupDim int) GroupLayout {
	gpr := (xsize + groupDim - 1) / groupDim
	gpc := (ysize + groupDim - 1) / groupDim
	return GroupLayout{GroupDim: groupDim, GroupsPerRow: gpr, GroupsPerCol: gpc}
}

// NumGroups returns the total group count.
func (g GroupLayout) NumGroups() int {
	return g.GroupsPerRow * g.GroupsPerCol
}

// GroupRect returns the pixel rectangle owned by group index idx,
// clamped to the frame's outer bounds.
func (g GroupLayout) GroupRect(idx, xsize, ysize int) (x0, y0, w, h int) {
	gx := idx % g.GroupsPerRow
	gy := idx / g.GroupsPerRow
	x0 = gx * g.GroupDim
	y0 = gy * g.GroupDim
	w = g.GroupDim
	if x0+w > xsize {
		w = xsize - x0
	}
	h = g.GroupDim
	if y0+h > ysize {
		h = ysize - y0
	}
	return x0, y0, w, h
}
