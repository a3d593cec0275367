package lineage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build_RoundTripIdentity(t *testing.T) {
	// Structured response for "SELECT a AS b FROM t".
	resp := &StructuredResponse{
		Nodes: []Node{
			{ID: "t.a", Label: "a", Group: GroupColumn},
			{ID: "t.b", Label: "b", Group: GroupColumn},
		},
		Edges: []Edge{
			{Source: "t.a", Target: "t.b", Label: EdgeFlowsTo, ConfidenceScore: 5},
		},
	}

	g, err := NewBuilder().Build(resp)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, resp.Nodes, g.Nodes)
	assert.Equal(t, resp.Edges, g.Edges)
	assert.Equal(t, 5, g.Edges[0].ConfidenceScore)
}

func TestBuilder_Build_PreservesEdgeOrder(t *testing.T) {
	resp := &StructuredResponse{
		Nodes: []Node{
			{ID: "a", Label: "a", Group: GroupColumn},
			{ID: "b", Label: "b", Group: GroupColumn},
			{ID: "t", Label: "t", Group: GroupTable},
		},
		Edges: []Edge{
			{Source: "a", Target: "b", Label: EdgeFlowsTo, ConfidenceScore: 3},
			{Source: "a", Target: "t", Label: EdgeIsPartOf},
			{Source: "b", Target: "t", Label: EdgeIsPartOf},
		},
	}

	g, err := NewBuilder().Build(resp)
	require.NoError(t, err)

	for i, edge := range resp.Edges {
		assert.Equal(t, edge, g.Edges[i])
	}
}

func TestBuilder_Build_ErrorField(t *testing.T) {
	resp := &StructuredResponse{
		Nodes: []Node{},
		Edges: []Edge{},
		Error: "Could not extract lineage.",
	}

	g, err := NewBuilder().Build(resp)
	assert.Nil(t, g)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGraphUnavailable)
	assert.Contains(t, err.Error(), "Could not extract lineage.")
}

func TestBuilder_Build_MissingNodes(t *testing.T) {
	g, err := NewBuilder().Build(&StructuredResponse{})
	assert.Nil(t, g)
	assert.ErrorIs(t, err, ErrGraphUnavailable)

	g, err = NewBuilder().Build(nil)
	assert.Nil(t, g)
	assert.ErrorIs(t, err, ErrGraphUnavailable)
}

func TestBuilder_Build_EmptyGraphIsValid(t *testing.T) {
	g, err := NewBuilder().Build(&StructuredResponse{Nodes: []Node{}, Edges: []Edge{}})
	require.NoError(t, err)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
}

func TestBuilder_Build_DanglingEdgesPassedThrough(t *testing.T) {
	resp := &StructuredResponse{
		Nodes: []Node{
			{ID: "a", Label: "a", Group: GroupColumn},
		},
		Edges: []Edge{
			{Source: "a", Target: "ghost", Label: EdgeFlowsTo, ConfidenceScore: 2},
		},
	}

	g, err := NewBuilder().Build(resp)
	require.NoError(t, err)

	// Not dropped, but reported.
	assert.Len(t, g.Edges, 1)
	dangling := g.DanglingEdges()
	require.Len(t, dangling, 1)
	assert.Equal(t, "ghost", dangling[0].Target)
}

func TestBuilder_Build_OutOfRangeConfidencePreserved(t *testing.T) {
	resp := &StructuredResponse{
		Nodes: []Node{
			{ID: "a", Label: "a", Group: GroupColumn},
			{ID: "b", Label: "b", Group: GroupColumn},
		},
		Edges: []Edge{
			{Source: "a", Target: "b", Label: EdgeFlowsTo, ConfidenceScore: 42},
		},
	}

	g, err := NewBuilder().Build(resp)
	require.NoError(t, err)
	assert.Equal(t, 42, g.Edges[0].ConfidenceScore)
}
