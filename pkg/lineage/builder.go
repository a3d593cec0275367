package lineage

import (
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrGraphUnavailable is returned when the structured response cannot be
// turned into a graph; callers show a diagnostic and skip rendering.
var ErrGraphUnavailable = errors.New("structured lineage data unavailable")

// Builder converts structured model responses into lineage graphs.
type Builder struct {
	logger *logrus.Logger
}

// NewBuilder creates a graph builder.
func NewBuilder() *Builder {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Builder{logger: logger}
}

// Build validates the structured response and builds a directed lineage
// graph. The mapping is one node per response node and one edge per response
// edge, attributes unchanged and edge order preserved. Dangling edge
// endpoints are logged but not dropped; the rendering layer decides what to
// do with them.
func (b *Builder) Build(resp *StructuredResponse) (*Graph, error) {
	if resp == nil || resp.Nodes == nil {
		return nil, errors.Wrap(ErrGraphUnavailable, "no structured response")
	}
	if resp.Error != "" {
		return nil, errors.Wrap(ErrGraphUnavailable, resp.Error)
	}

	g := &Graph{
		Nodes:       make([]Node, 0, len(resp.Nodes)),
		Edges:       make([]Edge, 0, len(resp.Edges)),
		GeneratedAt: time.Now(),
	}

	knownIDs := mapset.NewSet[string]()
	for _, node := range resp.Nodes {
		g.Nodes = append(g.Nodes, node)
		knownIDs.Add(node.ID)
	}

	for _, edge := range resp.Edges {
		if !knownIDs.Contains(edge.Source) || !knownIDs.Contains(edge.Target) {
			b.logger.WithFields(logrus.Fields{
				"source": edge.Source,
				"target": edge.Target,
				"label":  edge.Label,
			}).Warn("Edge references unknown node id")
		}
		g.Edges = append(g.Edges, edge)
	}

	return g, nil
}

// DanglingEdges returns the edges whose source or target does not reference
// a node in the graph.
func (g *Graph) DanglingEdges() []Edge {
	knownIDs := mapset.NewSet[string]()
	for _, node := range g.Nodes {
		knownIDs.Add(node.ID)
	}

	dangling := make([]Edge, 0)
	for _, edge := range g.Edges {
		if !knownIDs.Contains(edge.Source) || !knownIDs.Contains(edge.Target) {
			dangling = append(dangling, edge)
		}
	}
	return dangling
}
