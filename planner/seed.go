package planner

import (
	"github.com/sparql-qp/qp/cat"
	"github.com/sparql-qp/qp/qet"
	"github.com/sparql-qp/qp/query"
)

// seedLeaves builds the row-1 candidate plans for every node of tg.
// Regular one-variable nodes yield one scan; two-variable
// nodes yield two alternative scans, both kept in the DP; text nodes yield
// one TextWithoutFilter leaf.
func seedLeaves(tg *TripleGraph, oracle cat.IndexOracle) ([]SubtreePlan, error) {
	var plans []SubtreePlan
	for _, n := range tg.Nodes {
		if n.IsText {
			plans = append(plans, seedTextLeaf(n, oracle))
			continue
		}
		ps, err := seedRegularLeaves(n, oracle)
		if err != nil {
			return nil, err
		}
		plans = append(plans, ps...)
	}
	return plans, nil
}

func seedRegularLeaves(n Node, oracle cat.IndexOracle) ([]SubtreePlan, error) {
	t := n.Triple
	if query.IsVariable(t.P) {
		return nil, &NotImplementedError{Triple: t.String(), Reason: "predicate variables"}
	}
	if !query.IsIRI(t.P) {
		return nil, &BadQueryError{Triple: t.String(), Reason: "predicate must be an IRI"}
	}
	sVar, oVar := query.IsVariable(t.S), query.IsVariable(t.O)

	switch {
	case !sVar && !oVar:
		return nil, &BadQueryError{Triple: t.String(), Reason: "triple has no variable"}

	case sVar && !oVar:
		size := oracle.SizeBoundPO(t.P, t.O)
		cfg := qet.ScanConfig{Shape: qet.POSBoundObject, Predicate: t.P, Bound: t.O}
		tree := qet.NewScan(cfg, qet.ColumnMap{t.S: 0}, size)
		return []SubtreePlan{leafPlan(n.ID, tree)}, nil

	case !sVar && oVar:
		size := oracle.SizeBoundPS(t.P, t.S)
		cfg := qet.ScanConfig{Shape: qet.PSOBoundSubject, Predicate: t.P, Bound: t.S}
		tree := qet.NewScan(cfg, qet.ColumnMap{t.O: 0}, size)
		return []SubtreePlan{leafPlan(n.ID, tree)}, nil

	default: // both variables: two alternatives
		size := oracle.SizeFreePSO(t.P)
		psoCfg := qet.ScanConfig{Shape: qet.PSOFreeSubject, Predicate: t.P}
		posCfg := qet.ScanConfig{Shape: qet.POSFreeObject, Predicate: t.P}
		psoTree := qet.NewScan(psoCfg, qet.ColumnMap{t.S: 0, t.O: 1}, size)
		posTree := qet.NewScan(posCfg, qet.ColumnMap{t.O: 0, t.S: 1}, size)
		return []SubtreePlan{leafPlan(n.ID, psoTree), leafPlan(n.ID, posTree)}, nil
	}
}

func seedTextLeaf(n Node, oracle cat.IndexOracle) SubtreePlan {
	cols := qet.ColumnMap{n.Cvar: 0, qet.ScoreColumn(n.Cvar): 1}
	col := 2
	seen := map[string]bool{n.Cvar: true}
	for _, t := range n.Absorbed {
		for _, term := range []string{t.S, t.O} {
			if !query.IsVariable(term) || seen[term] {
				continue
			}
			seen[term] = true
			cols[term] = col
			col++
		}
	}
	size := oracle.SizeText(n.WordPart)
	tree := qet.NewTextWithoutFilter(n.Cvar, n.WordPart, cols, size)
	return leafPlan(n.ID, tree)
}

// pureTextQuery builds the single-node plan for a graph collapsed to exactly
// one text node and nothing else.
func pureTextQuery(tg *TripleGraph, oracle cat.IndexOracle) SubtreePlan {
	n := tg.Nodes[0]
	size := oracle.SizeText(n.WordPart)
	tree := qet.NewTextForContexts(n.Cvar, n.WordPart, size)
	return leafPlan(n.ID, tree)
}
