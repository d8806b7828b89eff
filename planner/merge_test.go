package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sparql-qp/qp/cat"
	"github.com/sparql-qp/qp/qet"
	"github.com/sparql-qp/qp/query"
)

func TestConnectedRequiresDisjointAndAdjacent(t *testing.T) {
	triples := chainTriples()
	tg := NewTripleGraph(triples)

	a := SubtreePlan{CoveredNodes: nodeSetOf(0)}
	b := SubtreePlan{CoveredNodes: nodeSetOf(1)}
	c := SubtreePlan{CoveredNodes: nodeSetOf(2)}

	require.True(t, connected(a, b, tg), "0 and 1 share ?y")
	require.False(t, connected(a, c, tg), "0 and 2 share no variable")

	overlapping := SubtreePlan{CoveredNodes: nodeSetOf(0, 1)}
	require.False(t, connected(a, overlapping, tg), "overlapping node sets are never connected")
}

func TestJoinColumnSingleShared(t *testing.T) {
	left := qet.ColumnMap{"?x": 0, "?y": 1}
	right := qet.ColumnMap{"?y": 0, "?z": 1}
	v, lc, rc, ok := joinColumn(left, right)
	require.True(t, ok)
	require.Equal(t, "?y", v)
	require.Equal(t, 1, lc)
	require.Equal(t, 0, rc)
}

func TestJoinColumnNoSharedFails(t *testing.T) {
	left := qet.ColumnMap{"?x": 0}
	right := qet.ColumnMap{"?z": 0}
	_, _, _, ok := joinColumn(left, right)
	require.False(t, ok)
}

func TestMergePlansProducesJoinScenarioB(t *testing.T) {
	triples := []query.Triple{
		{S: "?x", P: "<p1>", O: "?y"},
		{S: "?y", P: "<p2>", O: "?z"},
	}
	tg := NewTripleGraph(triples)
	oracle := cat.NewCatalog()
	seeds, err := seedLeaves(tg, oracle)
	require.NoError(t, err)
	require.Len(t, seeds, 4, "two alternatives per two-variable triple")

	var row0, row1 []SubtreePlan
	for _, p := range seeds {
		if p.CoveredNodes.Contains(0) {
			row0 = append(row0, p)
		} else {
			row1 = append(row1, p)
		}
	}

	merged, err := mergePlans(row0, row1, tg)
	require.NoError(t, err)
	require.NotEmpty(t, merged)
	for _, p := range merged {
		require.Equal(t, qet.JoinOp, p.QET.Op())
		require.True(t, p.CoveredNodes.Contains(0))
		require.True(t, p.CoveredNodes.Contains(1))
	}
}

func TestMergePlansEmitsTextWithFilterAlternative(t *testing.T) {
	triples := []query.Triple{
		{S: "?x", P: "<p>", O: "<o>"},
		{S: "?c", P: "<in-context>", O: "keyword"},
		{S: "?x", P: "<in-context>", O: "?c"},
	}
	tg := NewTripleGraph(triples)
	collapsed, err := tg.CollapseTextCliques(textCfg)
	require.NoError(t, err)
	require.Len(t, collapsed.Nodes, 2)

	oracle := cat.NewCatalog()
	seeds, err := seedLeaves(collapsed, oracle)
	require.NoError(t, err)

	var scanPlans, textPlans []SubtreePlan
	for _, p := range seeds {
		if p.QET.Op() == qet.TextWithoutFilterOp {
			textPlans = append(textPlans, p)
		} else {
			scanPlans = append(scanPlans, p)
		}
	}
	require.Len(t, scanPlans, 1)
	require.Len(t, textPlans, 1)

	merged, err := mergePlans(scanPlans, textPlans, collapsed)
	require.NoError(t, err)

	var sawJoin, sawTextWithFilter bool
	for _, p := range merged {
		switch p.QET.Op() {
		case qet.JoinOp:
			sawJoin = true
		case qet.TextWithFilterOp:
			sawTextWithFilter = true
		}
	}
	require.True(t, sawJoin, "ordinary join alternative must survive pruning or at least be produced")
	require.True(t, sawTextWithFilter, "text-with-filter rewrite must be produced alongside the join")
}
