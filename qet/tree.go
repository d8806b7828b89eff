// Package qet implements the query execution tree: the opaque handle the
// planner builds up and ultimately returns. A Tree is immutable once
// constructed; plans share sub-trees by reference, since constructing a
// new Tree never copies its children.
package qet

import (
	"fmt"

	"github.com/cockroachdb/cockroach/pkg/util/treeprinter"
	"github.com/sparql-qp/qp/query"
)

// ColumnMap maps a variable's lexical name (or, for text operations, the
// synthetic "SCORE(?cvar)" name) to its column index in the tree's result.
type ColumnMap map[string]int

// clone returns a shallow copy so callers can't mutate a Tree's map through
// a reference they passed in after construction.
func (c ColumnMap) clone() ColumnMap {
	out := make(ColumnMap, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// ScoreColumn returns the synthetic variable name used for a context
// variable's text-match score column.
func ScoreColumn(cvar string) string {
	return "SCORE(" + cvar + ")"
}

// Tree is the query execution tree contract every operator satisfies.
type Tree interface {
	Op() Op
	// SortColumn returns the column the result is sorted on, and whether
	// the tree is sorted at all.
	SortColumn() (int, bool)
	VariableColumns() ColumnMap
	ContextVariables() map[string]struct{}
	SizeEstimate() uint64
	CostEstimate() uint64
	TextLimit() uint64
	SetTextLimit(uint64) Tree
	// Children returns the immediate children of this node, in operator
	// order (e.g. [left, right] for Join; only [filterInput] for
	// TextWithFilter, whose text operation is not a child -- see its doc).
	Children() []Tree
	// Private returns operator-specific configuration: ScanConfig for Scan,
	// []OrderColumn for OrderBy, query.Filter-shaped data for Filter, etc.
	// Callers type-switch on Op() first.
	Private() interface{}
	String() string
}

type tree struct {
	op       Op
	children []Tree
	sortCol  int // -1 means "none"
	cols     ColumnMap
	ctxVars  map[string]struct{}
	size     uint64
	cost     uint64
	limit    uint64
	private  interface{}
}

func (t *tree) Op() Op { return t.op }

func (t *tree) SortColumn() (int, bool) {
	if t.sortCol < 0 {
		return 0, false
	}
	return t.sortCol, true
}

func (t *tree) VariableColumns() ColumnMap { return t.cols }

func (t *tree) ContextVariables() map[string]struct{} { return t.ctxVars }

func (t *tree) SizeEstimate() uint64 { return t.size }

func (t *tree) CostEstimate() uint64 { return t.cost }

func (t *tree) TextLimit() uint64 { return t.limit }

func (t *tree) SetTextLimit(limit uint64) Tree {
	cp := *t
	cp.limit = limit
	return &cp
}

func (t *tree) Children() []Tree { return t.children }

func (t *tree) Private() interface{} { return t.private }

func (t *tree) String() string {
	tp := treeprinter.New()
	t.format(tp)
	return tp.String()
}

func unionContextVars(children ...Tree) map[string]struct{} {
	out := make(map[string]struct{})
	for _, c := range children {
		if c == nil {
			continue
		}
		for v := range c.ContextVariables() {
			out[v] = struct{}{}
		}
	}
	return out
}

func addContextVar(vars map[string]struct{}, cvar string) map[string]struct{} {
	out := make(map[string]struct{}, len(vars)+1)
	for v := range vars {
		out[v] = struct{}{}
	}
	out[cvar] = struct{}{}
	return out
}

// NewScan builds an IndexScan leaf. The shape's bound/free pattern
// determines the sort column: both single-variable shapes yield a single
// column (index 0) with no meaningful alternate sort order; the two
// two-variable shapes are pre-sorted on their first column.
func NewScan(cfg ScanConfig, cols ColumnMap, size uint64) Tree {
	t := &tree{
		op:      ScanOp,
		cols:    cols.clone(),
		ctxVars: map[string]struct{}{},
		size:    size,
		private: cfg,
	}
	t.sortCol = 0
	t.cost = scanCost(size)
	return t
}

// NewTextWithoutFilter builds a TextWithoutFilter leaf over one text
// clique. cols must place cvar at 0, ScoreColumn(cvar) at 1, and each
// remaining bound variable at a distinct column from 2 upward.
func NewTextWithoutFilter(cvar, wordPart string, cols ColumnMap, size uint64) Tree {
	t := &tree{
		op:      TextWithoutFilterOp,
		cols:    cols.clone(),
		ctxVars: map[string]struct{}{cvar: {}},
		size:    size,
		sortCol: 0,
		private: TextWithoutFilterPrivate{Cvar: cvar, WordPart: wordPart},
	}
	t.cost = scanCost(size)
	return t
}

// TextWithoutFilterPrivate is the Private() payload for a TextWithoutFilter
// node.
type TextWithoutFilterPrivate struct {
	Cvar     string
	WordPart string
}

// NewTextForContexts builds the single-node plan for a pure text query: no
// other triples exist. Columns are {cvar: 0, SCORE(cvar): 1}.
func NewTextForContexts(cvar, wordPart string, size uint64) Tree {
	cols := ColumnMap{cvar: 0, ScoreColumn(cvar): 1}
	t := &tree{
		op:      TextForContextsOp,
		cols:    cols,
		ctxVars: map[string]struct{}{cvar: {}},
		size:    size,
		sortCol: 0,
		private: TextForContextsPrivate{Cvar: cvar, WordPart: wordPart},
	}
	t.cost = scanCost(size)
	return t
}

// TextForContextsPrivate is the Private() payload for a TextForContexts
// node.
type TextForContextsPrivate struct {
	Cvar     string
	WordPart string
}

// NewTextForEntities builds a TextOperationForEntities node: one bound
// entity variable, plus zero or more free variables that get a full cross
// product. This operator is defined for tagged-sum completeness but is
// not used by the live planner path -- the multi-bound-variable rewrite
// that would produce it is not implemented.
func NewTextForEntities(cvar, wordPart, entityVar string, freeVars []string, cols ColumnMap, size uint64) Tree {
	t := &tree{
		op:      TextForEntitiesOp,
		cols:    cols.clone(),
		ctxVars: map[string]struct{}{cvar: {}},
		size:    size,
		sortCol: 0,
		private: TextForEntitiesPrivate{Cvar: cvar, WordPart: wordPart, EntityVar: entityVar, FreeVars: append([]string(nil), freeVars...)},
	}
	t.cost = scanCost(size)
	return t
}

// TextForEntitiesPrivate is the Private() payload for a TextForEntities
// node.
type TextForEntitiesPrivate struct {
	Cvar      string
	WordPart  string
	EntityVar string
	FreeVars  []string
}

// Sort wraps child in a single-key ascending Sort, unless child is already
// sorted on col.
func Sort(child Tree, col int) Tree {
	if sc, ok := child.SortColumn(); ok && sc == col {
		return child
	}
	t := &tree{
		op:       SortOp,
		children: []Tree{child},
		cols:     child.VariableColumns().clone(),
		ctxVars:  unionContextVars(child),
		size:     child.SizeEstimate(),
		sortCol:  col,
		private:  col,
	}
	t.cost = sortCost(child)
	return t
}

// OrderBy wraps child in a multi-key sort. If keys has exactly one
// ascending entry, the result's sort column is that key's column;
// otherwise the result is considered unsorted for join purposes, since a
// descending or multi-key order is not representable as the single
// ascending sort column other operators key off of.
func OrderBy(child Tree, keys []OrderColumn) Tree {
	t := &tree{
		op:       OrderByOp,
		children: []Tree{child},
		cols:     child.VariableColumns().clone(),
		ctxVars:  unionContextVars(child),
		size:     child.SizeEstimate(),
		sortCol:  -1,
		private:  append([]OrderColumn(nil), keys...),
	}
	if len(keys) == 1 && !keys[0].Descending {
		t.sortCol = keys[0].Col
	}
	t.cost = orderByCost(child, len(keys))
	return t
}

// Join builds a sort-merge Join of two inputs already sorted on their
// respective join columns. cols is the merged variable-column map; sortCol
// is the column (in the merged schema) that the result ends up sorted on,
// which is always the join column shared by both sides.
func Join(left, right Tree, leftCol, rightCol int, cols ColumnMap, sortCol int) Tree {
	t := &tree{
		op:       JoinOp,
		children: []Tree{left, right},
		cols:     cols.clone(),
		ctxVars:  unionContextVars(left, right),
		sortCol:  sortCol,
		private:  JoinPrivate{LeftCol: leftCol, RightCol: rightCol},
	}
	t.size = joinSize(left, right)
	t.cost = joinCost(left, right)
	return t
}

// JoinPrivate is the Private() payload for a Join node.
type JoinPrivate struct {
	LeftCol, RightCol int
}

// FilterPrivate is the Private() payload for a Filter node.
type FilterPrivate struct {
	Kind     query.FilterKind
	LHSCol   int
	RHSCol   int
	FilterID int
}

// Filter wraps child, applying a predicate over two already-bound columns.
// Column mapping and sort order are unchanged.
func Filter(child Tree, kind query.FilterKind, lhsCol, rhsCol, filterID int) Tree {
	t := &tree{
		op:       FilterOp,
		children: []Tree{child},
		cols:     child.VariableColumns().clone(),
		ctxVars:  unionContextVars(child),
		private:  FilterPrivate{Kind: kind, LHSCol: lhsCol, RHSCol: rhsCol, FilterID: filterID},
	}
	if sc, ok := child.SortColumn(); ok {
		t.sortCol = sc
	} else {
		t.sortCol = -1
	}
	t.size = filterSize(child)
	t.cost = filterCost(child)
	return t
}

// Distinct wraps child, keeping only keepCols (in the given order) in the
// conceptual projection used for deduplication. The underlying row schema
// (VariableColumns) is unchanged; keepCols records which columns determine
// uniqueness.
func Distinct(child Tree, keepCols []int) Tree {
	t := &tree{
		op:       DistinctOp,
		children: []Tree{child},
		cols:     child.VariableColumns().clone(),
		ctxVars:  unionContextVars(child),
		private:  append([]int(nil), keepCols...),
	}
	if sc, ok := child.SortColumn(); ok {
		t.sortCol = sc
	} else {
		t.sortCol = -1
	}
	t.size = distinctSize(child)
	t.cost = distinctCost(child)
	return t
}

// TextWithFilterPrivate is the Private() payload for a TextWithFilter node.
type TextWithFilterPrivate struct {
	Cvar          string
	WordPart      string
	FilterJoinCol int
}

// TextWithFilter builds the text-with-filter rewrite: a text operation
// restricted to rows whose entity also appears in filterInput's
// filterJoinCol. Children are [filterInput] only -- the text leaf itself
// is not a child tree since it has no stored sub-plan, matching
// TextOperationWithFilter's single-input shape in the original planner.
func TextWithFilter(cvar, wordPart string, filterInput Tree, filterJoinCol int, cols ColumnMap, size uint64) Tree {
	t := &tree{
		op:       TextWithFilterOp,
		children: []Tree{filterInput},
		cols:     cols.clone(),
		ctxVars:  addContextVar(filterInput.ContextVariables(), cvar),
		sortCol:  0,
		size:     size,
		private:  TextWithFilterPrivate{Cvar: cvar, WordPart: wordPart, FilterJoinCol: filterJoinCol},
	}
	t.cost = textWithFilterCost(filterInput, size)
	return t
}

func (t *tree) format(tp treeprinter.Node) {
	node := tp.Childf("%s", t.describe())
	for _, c := range t.children {
		ct, ok := c.(*tree)
		if !ok {
			continue
		}
		ct.format(node)
	}
}

func (t *tree) describe() string {
	sortDesc := "none"
	if sc, ok := t.SortColumn(); ok {
		sortDesc = fmt.Sprintf("%d", sc)
	}
	return fmt.Sprintf("%s cols=%v sort=%s size=%d cost=%d", t.op, t.cols, sortDesc, t.size, t.cost)
}
