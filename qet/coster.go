package qet

import "math/bits"

// Cost and size formulas here are deliberately simple, monotone, and
// consistent with how a sort-merge planner's relative costs behave: scans
// are linear in their size, sorts add an n log n term, joins are linear in
// the sum of their sorted inputs.

// log2Ceil returns ceil(log2(n)), treating n <= 1 as 0.
func log2Ceil(n uint64) uint64 {
	if n <= 1 {
		return 0
	}
	return uint64(bits.Len64(n - 1))
}

func scanCost(size uint64) uint64 {
	return size
}

func sortCost(child Tree) uint64 {
	size := child.SizeEstimate()
	return child.CostEstimate() + size*log2Ceil(size)
}

func orderByCost(child Tree, numKeys int) uint64 {
	size := child.SizeEstimate()
	keys := uint64(numKeys)
	if keys == 0 {
		keys = 1
	}
	return child.CostEstimate() + size*log2Ceil(size)*keys
}

// joinSize estimates a sort-merge equi-join's output cardinality. Lacking
// per-column distinct-value counts, this uses the common simplifying
// assumption that the smaller input's cardinality bounds the join (every
// row of the smaller side matches at most proportionally many rows of the
// larger side, dominated by whichever side is already selective).
func joinSize(left, right Tree) uint64 {
	l, r := left.SizeEstimate(), right.SizeEstimate()
	if l < r {
		return l
	}
	return r
}

func joinCost(left, right Tree) uint64 {
	return left.CostEstimate() + right.CostEstimate() + left.SizeEstimate() + right.SizeEstimate()
}

// defaultFilterSelectivityDivisor divides a filter's input size to estimate
// its output: a filter with no statistics is assumed to retain half its rows.
const defaultFilterSelectivityDivisor = 2

func filterSize(child Tree) uint64 {
	return child.SizeEstimate() / defaultFilterSelectivityDivisor
}

func filterCost(child Tree) uint64 {
	return child.CostEstimate() + child.SizeEstimate()
}

func distinctSize(child Tree) uint64 {
	return child.SizeEstimate()
}

func distinctCost(child Tree) uint64 {
	return child.CostEstimate() + child.SizeEstimate()
}

// textWithFilterCost models one binary-search probe into the text result per
// row of the filter input, rather than the full sort-merge join cost of
// computing a TextWithoutFilter leaf and joining it -- this is the whole
// reason the rewrite exists: it can come out cheaper than the ordinary join
// when the filter input is small relative to the text result.
func textWithFilterCost(filterInput Tree, textSize uint64) uint64 {
	n := filterInput.SizeEstimate()
	return filterInput.CostEstimate() + n*log2Ceil(textSize+1)
}
