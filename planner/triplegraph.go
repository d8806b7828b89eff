package planner

import (
	"github.com/sparql-qp/qp/query"
)

// NodeID is a dense node index into a TripleGraph, in [0, len(Nodes)).
// Dense integer ids plus parallel adjacency slices avoid the ownership
// cycles a pointer-linked graph would have in Go.
type NodeID int

// Node is one TripleGraph vertex: either a regular triple pattern, or (once
// CollapseTextCliques has run) a collapsed text clique.
type Node struct {
	ID NodeID

	// Triple is the originating triple pattern for a regular node. It is
	// the zero Triple for a collapsed text node.
	Triple query.Triple

	// IsText marks a collapsed text node. Cvar, WordPart, and Absorbed are
	// only meaningful when IsText is true.
	IsText   bool
	Cvar     string
	WordPart string
	Absorbed []query.Triple

	// Variables is the set of variable names this node covers -- for a
	// regular node, those appearing in its triple; for a text node, the
	// union across all absorbed triples.
	Variables map[string]struct{}
}

// TripleGraph is an undirected graph whose nodes are triple patterns (or,
// after collapse, text cliques) and whose edges connect nodes sharing a
// variable. Adjacency is symmetric; self-edges never occur.
type TripleGraph struct {
	Nodes []Node
	Adj   [][]NodeID
}

func variablesOf(t query.Triple) map[string]struct{} {
	vars := make(map[string]struct{}, 2)
	for _, term := range []string{t.S, t.P, t.O} {
		if query.IsVariable(term) {
			vars[term] = struct{}{}
		}
	}
	return vars
}

// NewTripleGraph builds a TripleGraph with one node per triple, in
// insertion order, with an edge (i, j) iff triples i and j share at least
// one variable across any position. No validation is performed here --
// it is purely structural; triple-shape errors (zero variables, three-plus
// variables, predicate variables) surface later, while seeding leaves for
// the surviving non-text nodes.
func NewTripleGraph(triples []query.Triple) *TripleGraph {
	tg := &TripleGraph{
		Nodes: make([]Node, len(triples)),
		Adj:   make([][]NodeID, len(triples)),
	}
	for i, t := range triples {
		tg.Nodes[i] = Node{ID: NodeID(i), Triple: t, Variables: variablesOf(t)}
		tg.Adj[i] = nil
	}
	for i := range tg.Nodes {
		for j := 0; j < i; j++ {
			if shareVariable(tg.Nodes[i].Variables, tg.Nodes[j].Variables) {
				tg.Adj[i] = append(tg.Adj[i], NodeID(j))
				tg.Adj[j] = append(tg.Adj[j], NodeID(i))
			}
		}
	}
	return tg
}

func shareVariable(a, b map[string]struct{}) bool {
	small, big := a, b
	if len(big) < len(small) {
		small, big = big, small
	}
	for v := range small {
		if _, ok := big[v]; ok {
			return true
		}
	}
	return false
}
