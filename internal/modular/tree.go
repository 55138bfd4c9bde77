package modular

// Property indices name the 16 numeric inputs an MA-tree split node can
// test, in the wire order from spec.md §4.4.
const (
	PropChannel = iota
	PropGroup
	PropY
	PropX
	PropAbsT
	PropAbsL
	PropT
	PropL
	PropLMinusAbsT
	PropLPlusTMinusTL
	PropLMinusTL
	PropTLMinusT
	PropTMinusTR
	PropTMinusTT
	PropLMinusLL
	PropWPError
	numProperties
)

// Node is one entry of the flat, topologically ordered MA decision tree.
// A split node tests Properties[Property] <= SplitVal and branches to
// Left/Right; a leaf (Left == Right == 0 and IsLeaf true) carries the
// decoded context, predictor, and affine residual parameters.
type Node struct {
	IsLeaf bool

	// Split fields.
	Property      int
	SplitVal      int32
	Left, Right   int

	// Leaf fields.
	Context    int
	Predictor  Predictor
	Offset     int64
	Multiplier uint32
}

// Tree is the flat array of Nodes rooted at index 0.
type Tree struct {
	Nodes []Node
}

// Lookup walks the tree from the root, testing properties against split
// nodes, and returns the leaf reached.
func (t *Tree) Lookup(properties [numProperties]int32) Node {
	idx := 0
	for {
		n := t.Nodes[idx]
		if n.IsLeaf {
			return n
		}
		if properties[n.Property] <= n.SplitVal {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
}

// NumContexts returns one past the highest leaf Context value in the
// tree, the raw-context count the tree's pixel-entropy stream must
// supply.
func (t *Tree) NumContexts() int {
	max := 0
	for _, n := range t.Nodes {
		if n.IsLeaf && n.Context+1 > max {
			max = n.Context + 1
		}
	}
	return max
}

// BuildProperties assembles the 16-entry property vector for the pixel at
// (x, y) in the given channel/group, from its causal neighborhood and the
// weighted predictor's last error.
func BuildProperties(channel, group, y, x int, n Neighborhood, wpErr int32) [numProperties]int32 {
	var p [numProperties]int32
	p[PropChannel] = int32(channel)
	p[PropGroup] = int32(group)
	p[PropY] = int32(y)
	p[PropX] = int32(x)
	p[PropAbsT] = abs32(n.T)
	p[PropAbsL] = abs32(n.L)
	p[PropT] = n.T
	p[PropL] = n.L
	p[PropLMinusAbsT] = n.L - abs32(n.T)
	p[PropLPlusTMinusTL] = n.L + n.T - n.TL
	p[PropLMinusTL] = n.L - n.TL
	p[PropTLMinusT] = n.TL - n.T
	p[PropTMinusTR] = n.T - n.TR
	p[PropTMinusTT] = n.T - n.TT
	p[PropLMinusLL] = n.L - n.LL
	p[PropWPError] = wpErr
	return p
}
