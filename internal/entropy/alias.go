package entropy

// AnsLogTabSize and AnsTabSize are the fixed ANS table precision used by
// every histogram in a JXL codestream (spec.md §6).
const (
	AnsLogTabSize = 12
	AnsTabSize    = 1 << AnsLogTabSize
)

// aliasEntry is one slot of a Vose alias table: Lookup(xi) either returns
// `symbol` directly (xi < cutoff) or redirects to `right` with a
// translated residual index (xi >= cutoff).
type aliasEntry struct {
	cutoff      uint32
	rightValue  uint32
	rightOffset uint32
	leftOffset  uint32
}

// AliasTable is an O(1) sampling structure over a discrete distribution of
// AnsTabSize total weight, built with the classical Vose alias method.
type AliasTable struct {
	entries []aliasEntry
	counts  []uint32
	logSize uint
}

// BuildAliasTable builds a table for a distribution given as per-symbol
// counts summing to 1<<logAlphaSize (scaled to ANS table precision). Ties
// are broken by symbol index so that two distributions with identical
// counts always produce byte-identical tables.
func BuildAliasTable(counts []uint32, logAlphaSize uint) *AliasTable {
	n := len(counts)
	t := &AliasTable{
		entries: make([]aliasEntry, n),
		counts:  make([]uint32, n),
		logSize: logAlphaSize,
	}
	if n == 0 {
		return t
	}
	copy(t.counts, counts)
	size := uint32(1) << logAlphaSize

	// Vose's method: each of the n symbols is assigned one bin of equal
	// capacity binSize = size/n; a symbol whose count is short of binSize
	// ("under") borrows the remainder of its bin from a symbol whose count
	// exceeds binSize ("over"), recording the donor as the bin's alias.
	type work struct {
		sym   int
		count uint32
	}
	binSize := size / uint32(n)

	under := make([]work, 0, n)
	over := make([]work, 0, n)
	remaining := make([]uint32, n)
	copy(remaining, counts)
	for i := 0; i < n; i++ {
		if remaining[i] < binSize {
			under = append(under, work{i, remaining[i]})
		} else {
			over = append(over, work{i, remaining[i]})
		}
	}

	for len(under) > 0 {
		u := under[len(under)-1]
		under = under[:len(under)-1]

		if len(over) == 0 {
			// Rounding leftover: treat as exactly filling its own bin.
			t.entries[u.sym] = aliasEntry{cutoff: binSize, rightValue: uint32(u.sym)}
			continue
		}
		o := over[len(over)-1]
		over = over[:len(over)-1]

		// The donor gives away the top (binSize-u.count) slots of its run,
		// so the donated slots map to residuals newCount..o.count-1.
		newCount := o.count - (binSize - u.count)
		t.entries[u.sym] = aliasEntry{
			cutoff:      u.count,
			rightValue:  uint32(o.sym),
			rightOffset: newCount - u.count,
			leftOffset:  0,
		}

		o.count = newCount
		if o.count < binSize {
			under = append(under, o)
		} else {
			over = append(over, o)
		}
	}
	for len(over) > 0 {
		o := over[len(over)-1]
		over = over[:len(over)-1]
		t.entries[o.sym] = aliasEntry{cutoff: binSize, rightValue: uint32(o.sym)}
	}

	return t
}

// Lookup maps a table index xi (0 <= xi < size) to (symbol, residual
// index within that symbol's frequency run, that symbol's total
// frequency). The frequency is the rANS divisor the caller multiplies
// into the next state; it is never 1 unless the symbol's actual count
// is 1.
func (t *AliasTable) Lookup(xi uint32) (symbol uint32, offset uint32, freq uint32) {
	n := uint32(len(t.entries))
	if n == 0 {
		return 0, 0, 0
	}
	size := uint32(1) << t.logSize
	binSize := size / n
	bin := xi / binSize
	within := xi % binSize
	e := t.entries[bin]
	if within < e.cutoff {
		return uint32(bin), within + e.leftOffset, t.counts[bin]
	}
	return e.rightValue, within + e.rightOffset, t.counts[e.rightValue]
}
