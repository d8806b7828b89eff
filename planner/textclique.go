package planner

import "github.com/sparql-qp/qp/query"

// CollapseTextCliques rewrites every group of text triples sharing a
// context variable into a single text node. It never
// mutates tg: when tg has no text triples it returns tg itself, otherwise
// it returns a new TripleGraph. Surviving regular nodes keep
// their relative order, renumbered to come after the new text nodes.
func (tg *TripleGraph) CollapseTextCliques(cfg Config) (*TripleGraph, error) {
	isTextNode := make([]bool, len(tg.Nodes))
	any := false
	for i, n := range tg.Nodes {
		if cfg.isTextPredicate(n.Triple.P) {
			isTextNode[i] = true
			any = true
		}
	}
	if !any {
		return tg, nil
	}

	contextVars := make(map[string]bool)
	for i, isText := range isTextNode {
		if !isText {
			continue
		}
		t := tg.Nodes[i].Triple
		if !query.IsVariable(t.S) {
			if query.IsVariable(t.O) {
				contextVars[t.O] = true
			} else {
				return nil, &BadQueryError{Triple: t.String(), Reason: "text triple needs at least one variable"}
			}
		}
		if !query.IsVariable(t.O) {
			if query.IsVariable(t.S) {
				contextVars[t.S] = true
			} else {
				return nil, &BadQueryError{Triple: t.String(), Reason: "text triple needs at least one variable"}
			}
		}
	}

	var cvarOrder []string
	seenCvar := make(map[string]bool)
	groups := make(map[string][]NodeID)
	wordParts := make(map[string]string)
	for i, isText := range isTextNode {
		if !isText {
			continue
		}
		t := tg.Nodes[i].Triple
		sIsCvar := contextVars[t.S]
		oIsCvar := contextVars[t.O]
		if sIsCvar && oIsCvar {
			return nil, &NotImplementedError{Triple: t.String(), Reason: "cycle broken through text: multiple bound variables in a single text operation"}
		}
		var cvar string
		switch {
		case sIsCvar:
			cvar = t.S
		case oIsCvar:
			cvar = t.O
		default:
			return nil, &BadQueryError{Triple: t.String(), Reason: "text triple does not connect to any context variable"}
		}
		if !seenCvar[cvar] {
			seenCvar[cvar] = true
			cvarOrder = append(cvarOrder, cvar)
		}
		groups[cvar] = append(groups[cvar], NodeID(i))

		var word string
		if t.S == cvar && query.IsWord(t.O) {
			word = t.O
		} else if t.O == cvar && query.IsWord(t.S) {
			word = t.S
		}
		if word != "" {
			if wordParts[cvar] == "" {
				wordParts[cvar] = word
			} else {
				wordParts[cvar] += " " + word
			}
		}
	}

	for _, cvar := range cvarOrder {
		if wordParts[cvar] == "" {
			return nil, &BadQueryError{Triple: cvar, Reason: "text operation has no word part"}
		}
	}

	out := &TripleGraph{}
	oldToNew := make(map[NodeID]NodeID, len(tg.Nodes))

	for _, cvar := range cvarOrder {
		ids := groups[cvar]
		newID := NodeID(len(out.Nodes))
		absorbed := make([]query.Triple, len(ids))
		variables := map[string]struct{}{}
		for i, oldID := range ids {
			absorbed[i] = tg.Nodes[oldID].Triple
			for v := range tg.Nodes[oldID].Variables {
				variables[v] = struct{}{}
			}
			oldToNew[oldID] = newID
		}
		out.Nodes = append(out.Nodes, Node{
			ID:        newID,
			IsText:    true,
			Cvar:      cvar,
			WordPart:  wordParts[cvar],
			Absorbed:  absorbed,
			Variables: variables,
		})
	}

	for i, n := range tg.Nodes {
		if isTextNode[i] {
			continue
		}
		newID := NodeID(len(out.Nodes))
		oldToNew[NodeID(i)] = newID
		cp := n
		cp.ID = newID
		out.Nodes = append(out.Nodes, cp)
	}

	out.Adj = make([][]NodeID, len(out.Nodes))
	for _, cvar := range cvarOrder {
		newID := out.findTextNode(cvar)
		adjSet := make(map[NodeID]struct{})
		for _, oldID := range groups[cvar] {
			for _, oldAdj := range tg.Adj[oldID] {
				target := oldToNew[oldAdj]
				if target == newID {
					continue
				}
				adjSet[target] = struct{}{}
			}
		}
		out.Adj[newID] = sortedNodeIDs(adjSet)
	}
	for i := range tg.Nodes {
		if isTextNode[i] {
			continue
		}
		newID := oldToNew[NodeID(i)]
		adjSet := make(map[NodeID]struct{})
		for _, oldAdj := range tg.Adj[i] {
			target := oldToNew[oldAdj]
			if target == newID {
				continue
			}
			adjSet[target] = struct{}{}
		}
		out.Adj[newID] = sortedNodeIDs(adjSet)
	}

	return out, nil
}

func (tg *TripleGraph) findTextNode(cvar string) NodeID {
	for _, n := range tg.Nodes {
		if n.IsText && n.Cvar == cvar {
			return n.ID
		}
	}
	internalf("text node for cvar %q not found after collapse", cvar)
	return -1
}

func sortedNodeIDs(set map[NodeID]struct{}) []NodeID {
	out := make([]NodeID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// IsPureTextQuery reports whether tg, after collapse, consists of a single
// text node with no bound-from-context variable besides its own cvar --
// the only legal case for the trivial TextForContexts plan.
// A single text node that still carries a bound-to-context variable (e.g.
// `?x <in-context> ?c`) is NOT pure: it still
// needs a column for ?x, so it goes through ordinary TextWithoutFilter
// seeding instead.
func (tg *TripleGraph) IsPureTextQuery() bool {
	return len(tg.Nodes) == 1 && tg.Nodes[0].IsText && len(tg.Nodes[0].Variables) == 1
}
