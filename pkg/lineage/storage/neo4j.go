package storage

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v4/neo4j"

	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage"
)

// Neo4jStore exports lineage graphs to a Neo4j database. Nodes carry their
// group as a property, lineage labels become the relationship type property
// and confidence scores become edge weights.
type Neo4jStore struct {
	driver neo4j.Driver
	uri    string
}

// NewNeo4jStore creates a Neo4j-backed graph store.
func NewNeo4jStore(uri, username, password string) (*Neo4jStore, error) {
	auth := neo4j.BasicAuth(username, password, "")
	driver, err := neo4j.NewDriver(uri, auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %v", err)
	}

	return &Neo4jStore{
		driver: driver,
		uri:    uri,
	}, nil
}

// Close releases the underlying driver.
func (s *Neo4jStore) Close() error {
	if s.driver != nil {
		return s.driver.Close()
	}
	return nil
}

// StoreGraph writes all nodes and edges in one transaction. Node ids are
// merged, so re-exporting the same graph is idempotent.
func (s *Neo4jStore) StoreGraph(ctx context.Context, graph *lineage.Graph) error {
	session := s.driver.NewSession(neo4j.SessionConfig{})
	defer session.Close()

	_, err := session.WriteTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		for _, node := range graph.Nodes {
			params := map[string]interface{}{
				"id":    node.ID,
				"label": node.Label,
				"group": node.Group,
				"title": node.Title,
			}

			_, err := tx.Run(`
				MERGE (n:LineageNode {id: $id})
				SET n.label = $label,
				    n.group = $group,
				    n.title = $title,
				    n.updated_at = datetime()
			`, params)

			if err != nil {
				return nil, err
			}
		}

		for _, edge := range graph.Edges {
			params := map[string]interface{}{
				"source":     edge.Source,
				"target":     edge.Target,
				"label":      edge.Label,
				"title":      edge.Title,
				"confidence": edge.ConfidenceScore,
			}

			_, err := tx.Run(`
				MATCH (from:LineageNode {id: $source})
				MATCH (to:LineageNode {id: $target})
				MERGE (from)-[r:LINEAGE {label: $label}]->(to)
				SET r.title = $title,
				    r.confidence_score = $confidence,
				    r.updated_at = datetime()
			`, params)

			if err != nil {
				return nil, err
			}
		}

		return nil, nil
	})

	return err
}

// LoadGraph reads back all lineage nodes and relationships.
func (s *Neo4jStore) LoadGraph(ctx context.Context) (*lineage.Graph, error) {
	session := s.driver.NewSession(neo4j.SessionConfig{})
	defer session.Close()

	graph := &lineage.Graph{}

	result, err := session.Run(`MATCH (n:LineageNode) RETURN n`, nil)
	if err != nil {
		return nil, err
	}
	for result.Next() {
		nodeData := result.Record().Values[0].(neo4j.Node)
		node := lineage.Node{
			ID:    nodeData.Props["id"].(string),
			Label: nodeData.Props["label"].(string),
			Group: nodeData.Props["group"].(string),
		}
		if title, ok := nodeData.Props["title"].(string); ok {
			node.Title = title
		}
		graph.Nodes = append(graph.Nodes, node)
	}

	result, err = session.Run(`
		MATCH (from:LineageNode)-[r:LINEAGE]->(to:LineageNode)
		RETURN from.id, to.id, r.label, r.title, r.confidence_score
	`, nil)
	if err != nil {
		return nil, err
	}
	for result.Next() {
		record := result.Record()
		edge := lineage.Edge{
			Source: record.Values[0].(string),
			Target: record.Values[1].(string),
			Label:  record.Values[2].(string),
		}
		if title, ok := record.Values[3].(string); ok {
			edge.Title = title
		}
		if confidence, ok := record.Values[4].(int64); ok {
			edge.ConfidenceScore = int(confidence)
		}
		graph.Edges = append(graph.Edges, edge)
	}

	return graph, nil
}
