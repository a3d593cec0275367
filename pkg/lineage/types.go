package lineage

import "time"

// Node groups understood by the model and the visualization theme.
const (
	GroupTable          = "table"
	GroupColumn         = "column"
	GroupTransformation = "transformation"
)

// Edge labels describing lineage relationships.
const (
	EdgeFlowsTo  = "FLOWS_TO"
	EdgeProduces = "PRODUCES"
	EdgeConsumes = "CONSUMES"
	EdgeIsPartOf = "IS_PART_OF"
)

// Node represents a table, column or transformation in the lineage graph.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Group string `json:"group"`
	Title string `json:"title,omitempty"`
}

// Edge represents a directed lineage relationship between two nodes.
// ConfidenceScore is only meaningful for FLOWS_TO, PRODUCES and CONSUMES
// edges; values outside 1-5 returned by the model are passed through as-is.
type Edge struct {
	Source          string `json:"source"`
	Target          string `json:"target"`
	Label           string `json:"label"`
	Title           string `json:"title,omitempty"`
	ConfidenceScore int    `json:"confidence_score,omitempty"`
}

// StructuredResponse is the raw object returned by the structured model call.
// Any failure on the gateway side is folded into the Error field, so callers
// distinguish success from failure by checking Error and Nodes.
type StructuredResponse struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
	Error string `json:"error,omitempty"`
}

// Graph is a validated lineage graph built from a structured response.
// Edge order matches the response; node identity is the ID.
type Graph struct {
	Nodes       []Node    `json:"nodes"`
	Edges       []Edge    `json:"edges"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NodeByID returns the node with the given id, or nil.
func (g *Graph) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Result holds the outcome of one mapping request: the narrative report and,
// when the structured call succeeded, the built graph.
type Result struct {
	RequestID string
	Report    string
	Graph     *Graph
	Raw       *StructuredResponse
}
