package lineage

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage/metrics"
)

// ErrorPrefix marks gateway failures on the text path. Callers distinguish
// success from failure by prefix inspection, matching the report the UI shows.
const ErrorPrefix = "❌ "

// IsErrorText reports whether a gateway text response is a failure sentinel.
func IsErrorText(s string) bool {
	return strings.HasPrefix(s, ErrorPrefix)
}

// ErrEmptyInput is returned when the pasted source is empty or whitespace
// only; no model call is issued in that case.
var ErrEmptyInput = errors.New("no ETL code or SQL script to analyze")

// Gateway is the single point of contact with the external model.
// AskText never returns a Go error; failures come back as a sentinel-prefixed
// string. AskStructured folds failures into the response Error field.
type Gateway interface {
	AskText(ctx context.Context, prompt string) string
	AskStructured(ctx context.Context, prompt string, schema *genai.Schema) *StructuredResponse
}

// Mapper runs the full mapping pipeline: prompt construction, the two
// sequential model calls, response validation and graph construction.
type Mapper struct {
	gateway Gateway
	builder *Builder
	logger  *logrus.Logger
}

// NewMapper creates a mapper on top of the given gateway.
func NewMapper(gateway Gateway) *Mapper {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Mapper{
		gateway: gateway,
		builder: NewBuilder(),
		logger:  logger,
	}
}

// Map analyzes the given ETL/SQL source and returns the narrative report plus
// the lineage graph. The two model calls run sequentially; when the
// structured call fails the report is annotated with a diagnostic note and
// the graph is nil.
func (m *Mapper) Map(ctx context.Context, source string) (*Result, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptyInput
	}

	requestID := uuid.New().String()
	log := m.logger.WithField("request_id", requestID)
	log.WithField("source_bytes", len(source)).Info("Mapping data lineage")

	timer := prometheus.NewTimer(metrics.ModelCallDuration.WithLabelValues("text"))
	report := m.gateway.AskText(ctx, BuildReportPrompt(source))
	timer.ObserveDuration()
	if IsErrorText(report) {
		metrics.ModelErrorsTotal.WithLabelValues("text").Inc()
	}

	timer = prometheus.NewTimer(metrics.ModelCallDuration.WithLabelValues("structured"))
	structured := m.gateway.AskStructured(ctx, BuildGraphPrompt(source), ResponseSchema())
	timer.ObserveDuration()

	result := &Result{
		RequestID: requestID,
		Report:    report,
		Raw:       structured,
	}

	graph, err := m.builder.Build(structured)
	if err != nil {
		metrics.ModelErrorsTotal.WithLabelValues("structured").Inc()
		metrics.MappingRequestsTotal.WithLabelValues("partial").Inc()
		log.WithError(err).Warn("Structured lineage unavailable, skipping graph")

		diag := err.Error()
		if structured != nil && structured.Error != "" {
			diag = structured.Error
		}
		result.Report += "\n\n---\n\n" + ErrorPrefix + "**Graph Generation Issue:** " + diag +
			"\n\nThe AI struggled to provide data for the interactive graph. " +
			"Please review the text report and consider simplifying the input for graph generation."
		return result, nil
	}

	result.Graph = graph
	m.observeGraph(graph)
	metrics.MappingRequestsTotal.WithLabelValues("ok").Inc()
	log.WithFields(logrus.Fields{
		"nodes": len(graph.Nodes),
		"edges": len(graph.Edges),
	}).Info("Lineage graph mapped")

	return result, nil
}

func (m *Mapper) observeGraph(g *Graph) {
	nodesByGroup := map[string]int{}
	for _, node := range g.Nodes {
		nodesByGroup[node.Group]++
	}
	for group, n := range nodesByGroup {
		metrics.GraphNodeCount.WithLabelValues(group).Set(float64(n))
	}

	edgesByLabel := map[string]int{}
	for _, edge := range g.Edges {
		edgesByLabel[edge.Label]++
	}
	for label, n := range edgesByLabel {
		metrics.GraphEdgeCount.WithLabelValues(label).Set(float64(n))
	}

	metrics.GraphDanglingEdges.Set(float64(len(g.DanglingEdges())))
}
