// Package visualizer renders lineage graphs as self-contained interactive
// HTML documents. Layout is delegated entirely to vis-network's force
// solver; no layout algorithm is implemented here.
package visualizer

import (
	"bytes"
	"encoding/json"
	"html/template"
	"os"
	"path/filepath"

	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage"
)

// The HTML template for the vis-network visualization. Physics constants and
// the per-group theme (table=box, column=dot, transformation=diamond) are
// fixed; tooltips come from the node/edge title attributes.
const visTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Data Lineage Graph</title>
    <script src="https://unpkg.com/vis-network/standalone/umd/vis-network.min.js"></script>
    <style>
        body {
            margin: 0;
            font-family: Inter, Arial, sans-serif;
            background-color: #1a202c;
        }
        #lineage-graph {
            width: 100%;
            height: 100vh;
        }
        .summary {
            position: absolute;
            top: 10px;
            left: 10px;
            color: #E6EDF3;
            background-color: rgba(45, 55, 72, 0.85);
            padding: 10px;
            border-radius: 5px;
            font-size: 13px;
        }
    </style>
</head>
<body>
    <div id="lineage-graph"></div>
    <div class="summary">Nodes: {{.NodeCount}}, Edges: {{.EdgeCount}}</div>

    <script>
        const graphData = {{.GraphData}};

        const nodes = new vis.DataSet(graphData.nodes.map(n => ({
            id: n.id,
            label: n.label,
            group: n.group || "unknown",
            title: n.title || ("ID: " + n.id + "\nType: " + (n.group || "unknown"))
        })));

        const edges = new vis.DataSet(graphData.edges.map(e => ({
            from: e.source,
            to: e.target,
            label: e.label,
            title: e.title || e.label
        })));

        const options = {
            "physics": {
                "enabled": true,
                "barnesHut": {
                    "gravitationalConstant": -10000,
                    "centralGravity": 0.3,
                    "springLength": 200,
                    "springConstant": 0.03,
                    "damping": 0.15,
                    "avoidOverlap": 0.9
                },
                "maxVelocity": 50,
                "minVelocity": 0.75,
                "solver": "barnesHut"
            },
            "nodes": {
                "font": {
                    "color": "#E6EDF3",
                    "face": "Inter",
                    "size": 16,
                    "strokeWidth": 4,
                    "strokeColor": "#1a202c"
                },
                "borderWidth": 2
            },
            "edges": {
                "color": { "color": "#a0aec0", "highlight": "#63b3ed", "hover": "#63b3ed" },
                "arrows": { "to": { "enabled": true, "scaleFactor": 0.8 } },
                "font": {
                    "color": "#E6EDF3",
                    "face": "Inter",
                    "size": 12,
                    "strokeWidth": 2,
                    "strokeColor": "#1a202c",
                    "align": "middle"
                },
                "dashes": false,
                "width": 1.5
            },
            "groups": {
                "table": { "shape": "box", "color": "#58A6FF" },
                "column": { "shape": "dot", "color": "#3FB950" },
                "transformation": { "shape": "diamond", "color": "#DD9F1B" },
                "unknown": { "shape": "triangle", "color": "#768390" }
            },
            "interaction": {
                "hover": true,
                "navigationButtons": true,
                "zoomView": true
            }
        };

        const container = document.getElementById("lineage-graph");
        new vis.Network(container, { nodes: nodes, edges: edges }, options);
    </script>
</body>
</html>
`

// Visualizer renders lineage graphs with vis-network.
type Visualizer struct {
	tmpl *template.Template
}

// New creates a visualizer.
func New() (*Visualizer, error) {
	tmpl, err := template.New("lineage").Parse(visTemplate)
	if err != nil {
		return nil, err
	}
	return &Visualizer{tmpl: tmpl}, nil
}

// Render produces the embeddable HTML document for the given graph.
func (v *Visualizer) Render(graph *lineage.Graph) ([]byte, error) {
	graphData, err := json.Marshal(graph)
	if err != nil {
		return nil, err
	}

	data := struct {
		GraphData template.JS
		NodeCount int
		EdgeCount int
	}{
		GraphData: template.JS(graphData),
		NodeCount: len(graph.Nodes),
		EdgeCount: len(graph.Edges),
	}

	var buf bytes.Buffer
	if err := v.tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderToFile writes the visualization to the given path, creating parent
// directories as needed.
func (v *Visualizer) RenderToFile(graph *lineage.Graph, outputPath string) error {
	out, err := v.Render(graph)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, out, 0644)
}
