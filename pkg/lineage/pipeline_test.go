package lineage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeGateway records calls and plays back canned responses.
type fakeGateway struct {
	textCalls       int
	structuredCalls int
	report          string
	structured      *StructuredResponse
	lastTextPrompt  string
	lastGraphPrompt string
}

func (f *fakeGateway) AskText(ctx context.Context, prompt string) string {
	f.textCalls++
	f.lastTextPrompt = prompt
	return f.report
}

func (f *fakeGateway) AskStructured(ctx context.Context, prompt string, schema *genai.Schema) *StructuredResponse {
	f.structuredCalls++
	f.lastGraphPrompt = prompt
	return f.structured
}

func TestMapper_Map_EmptyInputIsNoOp(t *testing.T) {
	gw := &fakeGateway{}
	mapper := NewMapper(gw)

	for _, input := range []string{"", "   ", "\n\t  \n"} {
		result, err := mapper.Map(context.Background(), input)
		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.Nil(t, result)
	}
	assert.Zero(t, gw.textCalls)
	assert.Zero(t, gw.structuredCalls)
}

func TestMapper_Map_Success(t *testing.T) {
	gw := &fakeGateway{
		report: "## Data Flow Summary\nb is derived from a.",
		structured: &StructuredResponse{
			Nodes: []Node{
				{ID: "t.a", Label: "a", Group: GroupColumn},
				{ID: "t.b", Label: "b", Group: GroupColumn},
			},
			Edges: []Edge{
				{Source: "t.a", Target: "t.b", Label: EdgeFlowsTo, ConfidenceScore: 5},
			},
		},
	}

	result, err := NewMapper(gw).Map(context.Background(), "SELECT a AS b FROM t")
	require.NoError(t, err)

	assert.Equal(t, 1, gw.textCalls)
	assert.Equal(t, 1, gw.structuredCalls)
	assert.Contains(t, gw.lastTextPrompt, "SELECT a AS b FROM t")
	assert.Contains(t, gw.lastGraphPrompt, "SELECT a AS b FROM t")

	assert.Equal(t, gw.report, result.Report)
	require.NotNil(t, result.Graph)
	assert.Len(t, result.Graph.Nodes, 2)
	assert.Len(t, result.Graph.Edges, 1)
	assert.NotEmpty(t, result.RequestID)
}

func TestMapper_Map_StructuredErrorAnnotatesReport(t *testing.T) {
	gw := &fakeGateway{
		report: "## Data Flow Summary\nok",
		structured: &StructuredResponse{
			Nodes: []Node{},
			Edges: []Edge{},
			Error: "Could not extract lineage.",
		},
	}

	result, err := NewMapper(gw).Map(context.Background(), "SELECT 1")
	require.NoError(t, err)

	assert.Nil(t, result.Graph)
	assert.Contains(t, result.Report, "## Data Flow Summary\nok")
	assert.Contains(t, result.Report, "Graph Generation Issue")
	assert.Contains(t, result.Report, "Could not extract lineage.")
}

func TestIsErrorText(t *testing.T) {
	assert.True(t, IsErrorText(ErrorPrefix+"something broke"))
	assert.False(t, IsErrorText("## Data Flow Summary"))
	assert.False(t, IsErrorText(""))
}
