package planner

import "fmt"

// BadQueryError reports a malformed input query: a triple with no variable,
// a text triple with no variable, or a text operation with an empty word
// part. The query itself cannot be planned, no matter how the planner is
// configured.
type BadQueryError struct {
	Triple string
	Reason string
}

func (e *BadQueryError) Error() string {
	return fmt.Sprintf("bad query: %s: %s", e.Reason, e.Triple)
}

// NotImplementedError reports a construct this planner does not (yet)
// support: predicate variables, triples with three or more variables,
// joins that would require more than one join column (cyclic queries), or
// a text clique that would need to break a cycle.
type NotImplementedError struct {
	Triple string
	Reason string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not yet implemented: %s: %s", e.Reason, e.Triple)
}

// internalf panics with a formatted message. It is reserved for invariant
// violations inside this package -- bugs in the planner itself, never for
// malformed caller input, which always goes through BadQueryError or
// NotImplementedError instead.
func internalf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}
