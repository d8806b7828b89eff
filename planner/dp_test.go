package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sparql-qp/qp/cat"
	"github.com/sparql-qp/qp/query"
)

func TestApplyFiltersIsIdempotent(t *testing.T) {
	triples := []query.Triple{{S: "?x", P: "<p>", O: "?y"}}
	tg := NewTripleGraph(triples)
	oracle := cat.NewCatalog()
	seeds, err := seedLeaves(tg, oracle)
	require.NoError(t, err)

	filters := []query.Filter{{Kind: query.FilterLess, LHS: "?x", RHS: "?y"}}
	once := applyFiltersIfPossible(seeds, filters)
	twice := applyFiltersIfPossible(once, filters)

	require.Len(t, once, len(twice))
	for i := range once {
		require.Equal(t, once[i].CoveredFilters, twice[i].CoveredFilters)
		require.Equal(t, once[i].QET.CostEstimate(), twice[i].QET.CostEstimate())
	}
}

func TestApplyFiltersOnlyWhenBothVarsBound(t *testing.T) {
	triples := []query.Triple{{S: "?x", P: "<p>", O: "<o>"}}
	tg := NewTripleGraph(triples)
	oracle := cat.NewCatalog()
	seeds, err := seedLeaves(tg, oracle)
	require.NoError(t, err)

	filters := []query.Filter{{Kind: query.FilterLess, LHS: "?x", RHS: "?unbound"}}
	out := applyFiltersIfPossible(seeds, filters)
	require.True(t, out[0].CoveredFilters.Empty())
}

func TestFillDPTableMonotoneCoverage(t *testing.T) {
	triples := []query.Triple{
		{S: "?x", P: "<p1>", O: "?y"},
		{S: "?y", P: "<p2>", O: "?z"},
		{S: "?z", P: "<p3>", O: "<o>"},
	}
	tg := NewTripleGraph(triples)
	oracle := cat.NewCatalog()
	seeds, err := seedLeaves(tg, oracle)
	require.NoError(t, err)

	rows, err := fillDPTable(tg, seeds, nil)
	require.NoError(t, err)
	for k := 1; k <= len(triples); k++ {
		for _, p := range rows[k] {
			require.Equal(t, k, p.CoveredNodes.Len(), "row %d plan should cover exactly %d nodes", k, k)
		}
	}
	require.NotEmpty(t, rows[len(triples)])
}

func TestFillDPTableAppliesFilterAfterMerge(t *testing.T) {
	// scenario (f): ?x <p1> ?y . ?y <p2> ?z . FILTER(?x < ?z)
	triples := []query.Triple{
		{S: "?x", P: "<p1>", O: "?y"},
		{S: "?y", P: "<p2>", O: "?z"},
	}
	filters := []query.Filter{{Kind: query.FilterLess, LHS: "?x", RHS: "?z"}}
	tg := NewTripleGraph(triples)
	oracle := cat.NewCatalog()
	seeds, err := seedLeaves(tg, oracle)
	require.NoError(t, err)

	require.True(t, applyFiltersIfPossible(seeds, filters)[0].CoveredFilters.Empty(),
		"neither leaf binds both ?x and ?z")

	rows, err := fillDPTable(tg, seeds, filters)
	require.NoError(t, err)
	row2 := rows[2]
	require.NotEmpty(t, row2)
	for _, p := range row2 {
		require.True(t, p.CoveredFilters.Contains(0), "row 2 plan must have the filter applied")
	}
}
