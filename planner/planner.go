package planner

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/sparql-qp/qp/cat"
	"github.com/sparql-qp/qp/internal/obs"
	"github.com/sparql-qp/qp/qet"
	"github.com/sparql-qp/qp/query"
)

// Plan is the planner's sole entry point: it is a pure function of pq and
// oracle. It builds the triple graph, collapses text cliques, seeds and
// enumerates candidate plans bottom-up, applies filters and ORDER BY /
// DISTINCT / text-limit, and returns the single cheapest QET.
func Plan(pq query.ParsedQuery, oracle cat.IndexOracle, cfg Config) (qet.Tree, error) {
	obs.Logger().Debug().Int("triples", len(pq.WhereTriples)).Msg("planning query")

	if len(pq.WhereTriples) == 0 {
		return nil, &BadQueryError{Triple: "", Reason: "query has no triple patterns"}
	}

	tg := NewTripleGraph(pq.WhereTriples)
	tg, err := tg.CollapseTextCliques(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "collapsing text cliques")
	}

	var lastRow []SubtreePlan
	if tg.IsPureTextQuery() {
		lastRow = []SubtreePlan{pureTextQuery(tg, oracle)}
	} else {
		seeds, err := seedLeaves(tg, oracle)
		if err != nil {
			return nil, errors.Wrap(err, "seeding leaves")
		}
		rows, err := fillDPTable(tg, seeds, pq.Filters)
		if err != nil {
			return nil, errors.Wrap(err, "filling DP table")
		}
		lastRow = rows[len(tg.Nodes)]
	}

	if len(pq.OrderBy) > 0 {
		ordered := make([]SubtreePlan, len(lastRow))
		for i, p := range lastRow {
			ordered[i] = applyOrderBy(p, pq.OrderBy)
		}
		lastRow = ordered
	}

	best, err := selectMinCost(lastRow)
	if err != nil {
		return nil, errors.Wrap(err, "selecting final plan")
	}

	tree := best.QET
	if pq.Distinct {
		tree = qet.Distinct(tree, distinctColumns(tree.VariableColumns(), pq.SelectedVariables))
	}

	limit, err := parseTextLimit(pq.TextLimit)
	if err != nil {
		return nil, errors.Wrap(err, "parsing text limit")
	}
	tree = tree.SetTextLimit(limit)

	obs.Logger().Debug().Uint64("cost", tree.CostEstimate()).Uint64("size", tree.SizeEstimate()).Msg("plan selected")
	return tree, nil
}

// applyOrderBy implements the order-by stage for one plan: reuse
// it unchanged if it is already sorted ascending on the sole ORDER BY key,
// otherwise wrap it in Sort (single ascending key) or OrderBy (everything
// else).
func applyOrderBy(p SubtreePlan, keys []query.OrderKey) SubtreePlan {
	cols := p.QET.VariableColumns()
	if len(keys) == 1 && !keys[0].Descending {
		col, ok := cols[keys[0].Variable]
		if !ok {
			return p
		}
		if sc, sorted := p.QET.SortColumn(); sorted && sc == col {
			return p
		}
		p.QET = qet.Sort(p.QET, col)
		return p
	}

	var orderCols []qet.OrderColumn
	for _, k := range keys {
		col, ok := cols[k.Variable]
		if !ok {
			continue
		}
		orderCols = append(orderCols, qet.OrderColumn{Col: col, Descending: k.Descending})
	}
	p.QET = qet.OrderBy(p.QET, orderCols)
	return p
}

func selectMinCost(row []SubtreePlan) (SubtreePlan, error) {
	if len(row) == 0 {
		return SubtreePlan{}, errors.New("no plan covers all triples")
	}
	best := row[0]
	for _, p := range row[1:] {
		if p.QET.CostEstimate() < best.QET.CostEstimate() {
			best = p
		}
	}
	return best, nil
}

// distinctColumns returns, in projection order, the column indices of the
// selected variables that are actually bound in cols -- unbound selected
// variables are skipped.
func distinctColumns(cols qet.ColumnMap, selected []string) []int {
	var out []int
	for _, v := range selected {
		if c, ok := cols[v]; ok {
			out = append(out, c)
		}
	}
	return out
}

// parseTextLimit parses the text-limit contract: empty
// string means 1, otherwise it is a decimal unsigned integer.
func parseTextLimit(s string) (uint64, error) {
	if s == "" {
		return 1, nil
	}
	return strconv.ParseUint(s, 10, 64)
}
