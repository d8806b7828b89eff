package planner

import (
	"sort"

	"github.com/sparql-qp/qp/qet"
)

// connected reports whether a and b may be joined directly: their covered
// node sets must be disjoint, and some node of a must be adjacent (in tg) to
// some node of b. This is deliberately not a symmetric connectivity
// predicate -- it short-circuits to false on overlap, which is exactly
// what DP merging needs ("disjoint-and-adjacent").
func connected(a, b SubtreePlan, tg *TripleGraph) bool {
	if a.CoveredNodes.Intersects(b.CoveredNodes) {
		return false
	}
	adjacent := false
	a.CoveredNodes.ForEach(func(i int) {
		if adjacent {
			return
		}
		for _, adj := range tg.Adj[NodeID(i)] {
			if b.CoveredNodes.Contains(int(adj)) {
				adjacent = true
				return
			}
		}
	})
	return adjacent
}

// joinColumn returns the single shared variable name between two column
// maps and its column index on each side. It returns ok=false if the
// column maps share zero or more than one variable.
func joinColumn(left, right qet.ColumnMap) (variable string, leftCol, rightCol int, ok bool) {
	count := 0
	for v, lc := range left {
		if rc, present := right[v]; present {
			count++
			variable, leftCol, rightCol = v, lc, rc
		}
	}
	return variable, leftCol, rightCol, count == 1
}

// mergedColumns builds the variable-column map for an ordinary join: left's
// columns unchanged, right's columns (other than the join variable, already
// present via left) appended after left's highest column.
func mergedColumns(left, right qet.ColumnMap, joinVar string) qet.ColumnMap {
	out := make(qet.ColumnMap, len(left)+len(right))
	next := 0
	for v, c := range left {
		out[v] = c
		if c+1 > next {
			next = c + 1
		}
	}
	for v := range right {
		if v == joinVar {
			continue
		}
		if _, exists := out[v]; exists {
			continue
		}
		out[v] = next
		next++
	}
	return out
}

// isTextWithoutFilterLeaf reports whether p is a bare TextWithoutFilter
// leaf, the only shape eligible for the text-with-filter rewrite.
func isTextWithoutFilterLeaf(p SubtreePlan) bool {
	return p.QET.Op() == qet.TextWithoutFilterOp
}

// textWithFilterColumns builds the column map for the TextWithFilter
// rewrite: the text plan's columns keep their offsets (cvar=0, score=1,
// bound variables from 2 up); the filter input's columns are appended,
// skipping the shared join variable, at the next free offset.
func textWithFilterColumns(textCols, filterCols qet.ColumnMap, joinVar string) qet.ColumnMap {
	out := make(qet.ColumnMap, len(textCols)+len(filterCols))
	next := 0
	for v, c := range textCols {
		out[v] = c
		if c+1 > next {
			next = c + 1
		}
	}
	var rest []string
	for v := range filterCols {
		if v == joinVar {
			continue
		}
		if _, exists := out[v]; exists {
			continue
		}
		rest = append(rest, v)
	}
	sort.Strings(rest)
	for _, v := range rest {
		out[v] = next
		next++
	}
	return out
}

// mergePlans enumerates every joinable pair (a, b) ∈ A×B and returns the
// pruned set of resulting plans. A pair whose join would
// need more than one join column is a NotImplementedError -- that pair's
// two node sets can never be joined validly by any split, so this aborts
// the whole planning call rather than silently skipping it.
func mergePlans(a, b []SubtreePlan, tg *TripleGraph) ([]SubtreePlan, error) {
	var out []SubtreePlan
	for _, pa := range a {
		for _, pb := range b {
			if !connected(pa, pb, tg) {
				continue
			}
			merged, err := mergePair(pa, pb)
			if err != nil {
				return nil, err
			}
			out = append(out, merged...)
		}
	}
	return prunePlans(out), nil
}

func mergePair(pa, pb SubtreePlan) ([]SubtreePlan, error) {
	joinVar, leftCol, rightCol, ok := joinColumn(pa.QET.VariableColumns(), pb.QET.VariableColumns())
	if !ok {
		return nil, &NotImplementedError{
			Triple: joinVar,
			Reason: "join would require zero or multiple join columns (cyclic query or secondary columns)",
		}
	}

	covered := pa.CoveredNodes.Copy()
	covered.UnionWith(pb.CoveredNodes)
	filters := pa.CoveredFilters.Copy()
	filters.UnionWith(pb.CoveredFilters)

	var plans []SubtreePlan

	if aText, bText := isTextWithoutFilterLeaf(pa), isTextWithoutFilterLeaf(pb); aText != bText {
		var textPlan, otherPlan SubtreePlan
		if aText {
			textPlan, otherPlan = pa, pb
		} else {
			textPlan, otherPlan = pb, pa
		}
		textPriv := textPlan.QET.Private().(qet.TextWithoutFilterPrivate)
		otherCol := leftCol
		if aText {
			otherCol = rightCol
		}
		cols := textWithFilterColumns(textPlan.QET.VariableColumns(), otherPlan.QET.VariableColumns(), joinVar)
		size := textPlan.QET.SizeEstimate()
		tree := qet.TextWithFilter(textPriv.Cvar, textPriv.WordPart, otherPlan.QET, otherCol, cols, size)
		plans = append(plans, SubtreePlan{QET: tree, CoveredNodes: covered, CoveredFilters: filters})
	}

	left, right := pa.QET, pb.QET
	left = qet.Sort(left, leftCol)
	right = qet.Sort(right, rightCol)
	cols := mergedColumns(pa.QET.VariableColumns(), pb.QET.VariableColumns(), joinVar)
	joined := qet.Join(left, right, leftCol, rightCol, cols, cols[joinVar])
	plans = append(plans, SubtreePlan{QET: joined, CoveredNodes: covered, CoveredFilters: filters})

	return plans, nil
}
