// Package query defines the input contract that the planner consumes: the
// parsed representation of a SPARQL query. Producing a ParsedQuery from
// query text is the job of a parser that lives outside this module.
package query

// Triple is a single (subject, predicate, object) pattern from the WHERE
// clause. Each term is classified lexically: it is a Variable if it starts
// with '?', an IRI if it starts with '<', and a Word otherwise.
type Triple struct {
	S string
	P string
	O string
}

func (t Triple) String() string {
	return t.S + " " + t.P + " " + t.O
}

// FilterKind identifies the comparison a Filter performs.
type FilterKind int

const (
	FilterLess FilterKind = iota
	FilterLessEqual
	FilterGreater
	FilterGreaterEqual
	FilterEqual
	FilterNotEqual
)

// Filter is a predicate over two variables. The planner only needs to know
// which variables it references; the comparison itself is applied at
// execution time by the Filter operator's runtime, which is out of scope
// here.
type Filter struct {
	Kind FilterKind
	LHS  string
	RHS  string
}

// OrderKey is one key of an ORDER BY clause.
type OrderKey struct {
	Variable   string
	Descending bool
}

// ParsedQuery is the parser's output and the planner's sole input.
type ParsedQuery struct {
	WhereTriples      []Triple
	Filters           []Filter
	OrderBy           []OrderKey
	Distinct          bool
	SelectedVariables []string
	TextLimit         string
}

// IsVariable reports whether term is a SPARQL variable (begins with '?').
func IsVariable(term string) bool {
	return len(term) > 0 && term[0] == '?'
}

// IsIRI reports whether term is an IRI reference (begins with '<').
func IsIRI(term string) bool {
	return len(term) > 0 && term[0] == '<'
}

// IsWord reports whether term is a context-search word: non-empty, not a
// variable, and not an IRI.
func IsWord(term string) bool {
	return term != "" && !IsVariable(term) && !IsIRI(term)
}
