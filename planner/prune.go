package planner

import (
	"strconv"
	"strings"

	"github.com/gogo/protobuf/sortkeys"
	"github.com/zeebo/xxh3"

	"github.com/sparql-qp/qp/internal/obs"
)

// sortVariableName returns the variable name mapped to plan's sort column,
// or "" if the plan is unsorted.
func sortVariableName(p SubtreePlan) string {
	col, ok := p.QET.SortColumn()
	if !ok {
		return ""
	}
	for v, c := range p.QET.VariableColumns() {
		if c == col {
			return v
		}
	}
	return ""
}

// pruningKey builds the canonical (sort-variable-name, sorted covered-node-
// ids) signature, then fingerprints it with xxh3 so
// the map key used by prunePlans is a fixed-size integer rather than a
// string built and compared on every insertion.
func pruningKey(p SubtreePlan) uint64 {
	ids := make([]int64, 0, p.CoveredNodes.Len())
	p.CoveredNodes.ForEach(func(i int) { ids = append(ids, int64(i)) })
	sortkeys.Int64s(ids)

	var b strings.Builder
	b.WriteString(sortVariableName(p))
	b.WriteByte('|')
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(id, 10))
	}
	return xxh3.HashString(b.String())
}

// prunePlans keeps, per pruning key, only the minimum-cost plan; ties are
// broken by insertion order (first seen wins).
func prunePlans(plans []SubtreePlan) []SubtreePlan {
	best := make(map[uint64]int, len(plans))
	out := make([]SubtreePlan, 0, len(plans))
	for _, p := range plans {
		key := pruningKey(p)
		if idx, exists := best[key]; exists {
			if p.QET.CostEstimate() < out[idx].QET.CostEstimate() {
				obs.Logger().Debug().Uint64("key", key).Uint64("cost", out[idx].QET.CostEstimate()).
					Msg("pruning away higher-cost plan")
				out[idx] = p
			} else {
				obs.Logger().Debug().Uint64("key", key).Uint64("cost", p.QET.CostEstimate()).
					Msg("pruning away higher-cost plan")
			}
			continue
		}
		best[key] = len(out)
		out = append(out, p)
	}
	return out
}
