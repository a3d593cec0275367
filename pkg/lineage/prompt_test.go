package lineage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestBuildReportPrompt_EmbedsSourceVerbatim(t *testing.T) {
	source := "SELECT a AS b FROM t; -- weird 'chars' \"here\" {{and}} %s"
	prompt := BuildReportPrompt(source)

	assert.Contains(t, prompt, source)
	assert.Contains(t, prompt, "column-level data lineage")
	assert.Contains(t, prompt, "## Transformation Summary")
}

func TestBuildGraphPrompt_EmbedsSourceAndContract(t *testing.T) {
	source := "INSERT INTO x SELECT * FROM y"
	prompt := BuildGraphPrompt(source)

	assert.Contains(t, prompt, source)
	for _, label := range []string{EdgeFlowsTo, EdgeProduces, EdgeConsumes, EdgeIsPartOf} {
		assert.Contains(t, prompt, label)
	}
	assert.Contains(t, prompt, "confidence_score")
	assert.Contains(t, prompt, `"error": "Could not extract lineage."`)
}

func TestResponseSchema_Shape(t *testing.T) {
	schema := ResponseSchema()

	require.Equal(t, genai.TypeObject, schema.Type)
	assert.ElementsMatch(t, []string{"nodes", "edges"}, schema.Required)

	nodes := schema.Properties["nodes"]
	require.NotNil(t, nodes)
	require.Equal(t, genai.TypeArray, nodes.Type)
	assert.ElementsMatch(t, []string{"id", "label", "group"}, nodes.Items.Required)
	assert.ElementsMatch(t,
		[]string{GroupTable, GroupColumn, GroupTransformation},
		nodes.Items.Properties["group"].Enum)

	edges := schema.Properties["edges"]
	require.NotNil(t, edges)
	assert.ElementsMatch(t, []string{"source", "target", "label"}, edges.Items.Required)
	assert.ElementsMatch(t,
		[]string{EdgeFlowsTo, EdgeProduces, EdgeConsumes, EdgeIsPartOf},
		edges.Items.Properties["label"].Enum)

	// The 1-5 bound lives only in the prompt rubric.
	confidence := edges.Items.Properties["confidence_score"]
	require.NotNil(t, confidence)
	assert.Equal(t, genai.TypeInteger, confidence.Type)
	assert.Nil(t, confidence.Minimum)
	assert.Nil(t, confidence.Maximum)

	errField := schema.Properties["error"]
	require.NotNil(t, errField)
	assert.Equal(t, genai.TypeString, errField.Type)
}
