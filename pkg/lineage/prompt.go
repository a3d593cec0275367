package lineage

import (
	"fmt"

	"google.golang.org/genai"
)

// The user input is embedded verbatim; no escaping against prompt injection
// is attempted, adversarial input can steer the model.

const reportPromptTemplate = `As an expert Data Engineer, your task is to analyze the provided ETL code or SQL script.
Identify and extract **column-level data lineage**, describing the flow of data from its sources through transformations to its final targets.

For each target table and column, provide a concise narrative or flow description of how the data for that column is derived.
Clearly mention the source columns and the transformations applied.

Structure the report as follows in Markdown:

## Data Flow Summary
[A brief, high-level summary of the overall data movement and purpose of the script.]

## Detailed Column-Level Lineage

### Target Table: ` + "`[Target Table Name]`" + `
* **` + "`[Target Column Name 1]`" + `**: Derived from ` + "`[Source Table.Column(s)]`" + ` using transformation ` + "`[Description of Transformation]`" + `.
* **` + "`[Target Column Name 2]`" + `**: Directly mapped from ` + "`[Source Table.Column]`" + `.
* ...

## Key Dependencies and Transformations
[A brief narrative summarizing common joins, filtering, or complex transformations that are critical to the data flow.]

## Transformation Summary
List all distinct types of transformations detected in the ETL code (e.g. JOIN, SUM(), CAST, CASE WHEN, GROUP BY, LAG, COALESCE, FILTER, SELECT, MERGE, UNION).

---

If you cannot extract lineage, state "❌ Lineage extraction failed: [Reason]".

**ETL Code/SQL Script:**
` + "```\n%s\n```"

const graphPromptTemplate = `As an expert Data Engineer, your task is to analyze the provided ETL code or SQL script and extract **column-level data lineage** in a structured JSON format suitable for a graph database or visualization.

Represent each table and column as a **node**.
Represent lineage relationships (data flow) and transformations as **edges**.

Node Types (groups):
- ` + "`table`" + `: Represents a database table.
- ` + "`column`" + `: Represents a column within a table.
- ` + "`transformation`" + `: Represents a data transformation operation.

Edge Types (labels):
- ` + "`FLOWS_TO`" + `: From source column to target column.
- ` + "`PRODUCES`" + `: From transformation node to target column.
- ` + "`CONSUMES`" + `: From source column to transformation node.
- ` + "`IS_PART_OF`" + `: From column node to table node.

For each edge representing a FLOWS_TO, PRODUCES, or CONSUMES relationship, also provide a confidence_score (integer, from 1 to 5) indicating your certainty that the lineage or transformation step is correctly identified.
- 5: Highly confident, directly mapped or clearly defined transformation.
- 4: Confident, clear transformation but might involve implicit logic.
- 3: Moderately confident, inferred transformation, minor ambiguities possible.
- 2: Low confidence, heavily inferred, significant ambiguities or complex logic.
- 1: Very low confidence, highly ambiguous or speculative mapping.

Provide the output as a JSON object with two main arrays: nodes and edges.

**Node Object Structure:**
{ "id": "unique_id_string", "label": "display_name", "group": "table" | "column" | "transformation", "title": "tooltip_text" }
- id: A unique identifier (e.g. schema.table.column, table_name, transform_hash).
- label: Display name (e.g. column_name, table_name, SUM_transform).
- group: Categorization for styling.
- title: Optional detailed tooltip for the node.

**Edge Object Structure:**
{ "source": "source_node_id", "target": "target_node_id", "label": "edge_type", "title": "tooltip_text_for_edge", "confidence_score": 1-5 }
- source: ID of the source node.
- target: ID of the target node.
- label: Type of relationship (FLOWS_TO, PRODUCES, CONSUMES, IS_PART_OF).
- title: Optional detailed tooltip for the edge (e.g. "Transformation: SUM(amount)").
- confidence_score: Confidence in this specific lineage connection. Only for FLOWS_TO, PRODUCES, CONSUMES edges.

**Example Structure for JSON Output:**
{
    "nodes": [
        {"id": "raw.transactions", "label": "transactions", "group": "table"},
        {"id": "raw.transactions.quantity", "label": "quantity", "group": "column"},
        {"id": "transform_gross_revenue", "label": "SUM(quantity * unit_price)", "group": "transformation"},
        {"id": "analytics.daily_product_sales.gross_revenue", "label": "gross_revenue", "group": "column"}
    ],
    "edges": [
        {"source": "raw.transactions.quantity", "target": "transform_gross_revenue", "label": "CONSUMES", "confidence_score": 4},
        {"source": "transform_gross_revenue", "target": "analytics.daily_product_sales.gross_revenue", "label": "PRODUCES", "title": "Result of SUM(quantity * unit_price)", "confidence_score": 4},
        {"source": "raw.transactions.quantity", "target": "raw.transactions", "label": "IS_PART_OF"}
    ]
}

**ETL Code/SQL Script to Analyze:**
` + "```\n%s\n```" + `

Please ensure your response is *only* the JSON object defined by the schema, with no additional text or markdown outside the JSON.
If lineage cannot be extracted, return: { "nodes": [], "edges": [], "error": "Could not extract lineage." }`

// BuildReportPrompt builds the narrative-report prompt for the given source.
func BuildReportPrompt(source string) string {
	return fmt.Sprintf(reportPromptTemplate, source)
}

// BuildGraphPrompt builds the schema-constrained graph prompt for the given source.
func BuildGraphPrompt(source string) string {
	return fmt.Sprintf(graphPromptTemplate, source)
}

// ResponseSchema returns the JSON schema the structured model call is
// constrained by. confidence_score deliberately carries no declared bounds,
// matching the prompt-only 1-5 rubric; out-of-range values are passed through.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"nodes": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":    {Type: genai.TypeString},
						"label": {Type: genai.TypeString},
						"group": {Type: genai.TypeString, Enum: []string{GroupTable, GroupColumn, GroupTransformation}},
						"title": {Type: genai.TypeString},
					},
					Required: []string{"id", "label", "group"},
				},
			},
			"edges": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"source":           {Type: genai.TypeString},
						"target":           {Type: genai.TypeString},
						"label":            {Type: genai.TypeString, Enum: []string{EdgeFlowsTo, EdgeProduces, EdgeConsumes, EdgeIsPartOf}},
						"title":            {Type: genai.TypeString},
						"confidence_score": {Type: genai.TypeInteger},
					},
					Required: []string{"source", "target", "label"},
				},
			},
			"error": {Type: genai.TypeString},
		},
		Required: []string{"nodes", "edges"},
	}
}
