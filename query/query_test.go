package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sparql-qp/qp/query"
)

func TestIsVariable(t *testing.T) {
	require.True(t, query.IsVariable("?x"))
	require.False(t, query.IsVariable("<http://example.org/p>"))
	require.False(t, query.IsVariable("word"))
	require.False(t, query.IsVariable(""))
}

func TestIsIRI(t *testing.T) {
	require.True(t, query.IsIRI("<http://example.org/p>"))
	require.False(t, query.IsIRI("?x"))
	require.False(t, query.IsIRI("word"))
}

func TestIsWord(t *testing.T) {
	require.True(t, query.IsWord("climate"))
	require.False(t, query.IsWord("?x"))
	require.False(t, query.IsWord("<http://example.org/p>"))
	require.False(t, query.IsWord(""))
}

func TestTripleString(t *testing.T) {
	tr := query.Triple{S: "?x", P: "<p>", O: "<o>"}
	require.Equal(t, "?x <p> <o>", tr.String())
}
