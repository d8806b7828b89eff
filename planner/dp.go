package planner

import (
	"github.com/sparql-qp/qp/qet"
	"github.com/sparql-qp/qp/query"
)

// applyFiltersIfPossible returns a new row where each plan has every filter
// applied whose two referenced variables are both bound, repeated to a
// fixpoint (applying one filter can never unbind a variable another filter
// needs, so this always terminates within len(filters) iterations). A
// filtered plan replaces its parent in the row -- there is no variant
// explosion.
func applyFiltersIfPossible(row []SubtreePlan, filters []query.Filter) []SubtreePlan {
	out := make([]SubtreePlan, len(row))
	for i, p := range row {
		out[i] = applyAllFilters(p, filters)
	}
	return out
}

func applyAllFilters(p SubtreePlan, filters []query.Filter) SubtreePlan {
	for {
		applied := false
		cols := p.QET.VariableColumns()
		for idx, f := range filters {
			if p.CoveredFilters.Contains(idx) {
				continue
			}
			lc, lok := cols[f.LHS]
			rc, rok := cols[f.RHS]
			if !lok || !rok {
				continue
			}
			p.QET = qet.Filter(p.QET, f.Kind, lc, rc, idx)
			newFilters := p.CoveredFilters.Copy()
			newFilters.Add(idx)
			p.CoveredFilters = newFilters
			applied = true
		}
		if !applied {
			return p
		}
	}
}

// fillDPTable builds rows[1..n]: row 1 is the pruned, filtered leaf seeds;
// row k is built from merging row i with row k-i for
// each split size i in [1, k/2], with filters applied after each split's
// merge is appended, and the accumulated row pruned once it is complete.
func fillDPTable(tg *TripleGraph, seeds []SubtreePlan, filters []query.Filter) ([][]SubtreePlan, error) {
	n := len(tg.Nodes)
	rows := make([][]SubtreePlan, n+1)
	rows[1] = applyFiltersIfPossible(prunePlans(seeds), filters)

	for k := 2; k <= n; k++ {
		var row []SubtreePlan
		for i := 1; i <= k/2; i++ {
			j := k - i
			merged, err := mergePlans(rows[i], rows[j], tg)
			if err != nil {
				return nil, err
			}
			merged = applyFiltersIfPossible(merged, filters)
			row = append(row, merged...)
		}
		rows[k] = prunePlans(row)
	}
	return rows, nil
}
