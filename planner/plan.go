package planner

import (
	"github.com/cockroachdb/cockroach/pkg/util"

	"github.com/sparql-qp/qp/qet"
)

// NodeSet is a set of TripleGraph node ids, generalized from a set of
// column indexes to a set of node ids.
type NodeSet = util.FastIntSet

// FilterSet is a set of filter ids, indices into the ParsedQuery.Filters
// slice that a plan has already applied.
type FilterSet = util.FastIntSet

// SubtreePlan is one candidate plan considered during DP fill: a QET
// together with which triple-graph nodes and which filters it accounts for.
type SubtreePlan struct {
	QET            qet.Tree
	CoveredNodes   NodeSet
	CoveredFilters FilterSet
}

func nodeSetOf(ids ...NodeID) NodeSet {
	var s NodeSet
	for _, id := range ids {
		s.Add(int(id))
	}
	return s
}

// leafPlan builds a SubtreePlan covering exactly one node and no filters:
// its covered-nodes set is the singleton of its node id, and its
// covered-filters set is empty.
func leafPlan(id NodeID, tree qet.Tree) SubtreePlan {
	return SubtreePlan{QET: tree, CoveredNodes: nodeSetOf(id)}
}
