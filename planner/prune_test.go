package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sparql-qp/qp/qet"
)

func planWithCost(id NodeID, cost uint64) SubtreePlan {
	cfg := qet.ScanConfig{Shape: qet.POSBoundObject}
	tr := qet.NewScan(cfg, qet.ColumnMap{"?x": 0}, cost)
	return SubtreePlan{QET: tr, CoveredNodes: nodeSetOf(id)}
}

func TestPrunePlansKeepsMinCostPerKey(t *testing.T) {
	cheap := planWithCost(0, 5)
	expensive := planWithCost(0, 50)
	out := prunePlans([]SubtreePlan{expensive, cheap})
	require.Len(t, out, 1)
	require.Equal(t, uint64(5), out[0].QET.CostEstimate())
}

func TestPrunePlansTiesKeepFirstSeen(t *testing.T) {
	first := planWithCost(0, 5)
	second := planWithCost(0, 5)
	out := prunePlans([]SubtreePlan{first, second})
	require.Len(t, out, 1)
	require.Same(t, first.QET, out[0].QET)
}

func TestPrunePlansIsDeterministicUnderReordering(t *testing.T) {
	a := planWithCost(0, 5)
	b := planWithCost(0, 50)
	c := planWithCost(1, 1)

	out1 := prunePlans([]SubtreePlan{a, b, c})
	out2 := prunePlans([]SubtreePlan{c, a, b})

	require.Len(t, out1, 2)
	require.Len(t, out2, 2)
	require.ElementsMatch(t, []uint64{5, 1}, []uint64{out1[0].QET.CostEstimate(), out1[1].QET.CostEstimate()})
	require.ElementsMatch(t, []uint64{5, 1}, []uint64{out2[0].QET.CostEstimate(), out2[1].QET.CostEstimate()})
}

func TestPruningKeyDistinguishesSortVariable(t *testing.T) {
	xSorted := SubtreePlan{
		QET:          qet.NewScan(qet.ScanConfig{}, qet.ColumnMap{"?x": 0}, 5),
		CoveredNodes: nodeSetOf(0),
	}
	ySorted := SubtreePlan{
		QET:          qet.NewScan(qet.ScanConfig{}, qet.ColumnMap{"?y": 0}, 5),
		CoveredNodes: nodeSetOf(0),
	}
	require.NotEqual(t, pruningKey(xSorted), pruningKey(ySorted))
}
