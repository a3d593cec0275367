package visualizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage"
)

func testGraph() *lineage.Graph {
	return &lineage.Graph{
		Nodes: []lineage.Node{
			{ID: "t.a", Label: "a", Group: lineage.GroupColumn},
			{ID: "t.b", Label: "b", Group: lineage.GroupColumn},
		},
		Edges: []lineage.Edge{
			{Source: "t.a", Target: "t.b", Label: lineage.EdgeFlowsTo, ConfidenceScore: 5},
		},
	}
}

func TestVisualizer_Render(t *testing.T) {
	viz, err := New()
	require.NoError(t, err)

	out, err := viz.Render(testGraph())
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "vis-network")
	assert.Contains(t, html, `"t.a"`)
	assert.Contains(t, html, `"t.b"`)
	assert.Contains(t, html, "FLOWS_TO")
	assert.Contains(t, html, "Nodes: 2, Edges: 1")

	// Fixed physics constants for the force layout.
	assert.Contains(t, html, `"gravitationalConstant": -10000`)
	assert.Contains(t, html, `"springLength": 200`)
	assert.Contains(t, html, `"damping": 0.15`)
}

func TestVisualizer_RenderToFile(t *testing.T) {
	viz, err := New()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "viz", "graph.html")
	require.NoError(t, viz.RenderToFile(testGraph(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<!DOCTYPE html>")
}
