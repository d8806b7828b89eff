package cat_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sparql-qp/qp/cat"
)

func TestCatalogUnknownPredicateFallsBack(t *testing.T) {
	c := cat.NewCatalog()
	require.EqualValues(t, 1000, c.SizeBoundPO("<unknown>", "<o>"))
	require.EqualValues(t, 1000, c.SizeBoundPS("<unknown>", "<s>"))
	require.EqualValues(t, 1000, c.SizeFreePSO("<unknown>"))
	require.EqualValues(t, 100, c.SizeText("climate"))
}

func TestCatalogExactFrequencyWins(t *testing.T) {
	c := cat.NewCatalog()
	c.AddPredicate(&cat.PredicateStats{
		Predicate:        "<p>",
		TotalTriples:     100,
		DistinctSubjects: 10,
		DistinctObjects:  20,
		ObjectFrequency:  map[string]uint64{"<o1>": 7},
		SubjectFrequency: map[string]uint64{"<s1>": 3},
	})

	require.EqualValues(t, 7, c.SizeBoundPO("<p>", "<o1>"))
	require.EqualValues(t, 3, c.SizeBoundPS("<p>", "<s1>"))
	require.EqualValues(t, 100, c.SizeFreePSO("<p>"))

	// unseen object/subject fall back to the uniform-distribution estimate
	require.EqualValues(t, 5, c.SizeBoundPO("<p>", "<o-unseen>"))
	require.EqualValues(t, 10, c.SizeBoundPS("<p>", "<s-unseen>"))
}

func TestCatalogAddText(t *testing.T) {
	c := cat.NewCatalog()
	c.AddText("climate change", 42)
	require.EqualValues(t, 42, c.SizeText("climate change"))
	require.EqualValues(t, 100, c.SizeText("other words"))
}
