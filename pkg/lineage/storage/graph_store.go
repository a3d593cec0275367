package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage"
)

// GraphStore defines an interface for persisting lineage graphs.
type GraphStore interface {
	// StoreGraph persists a lineage graph
	StoreGraph(ctx context.Context, graph *lineage.Graph) error

	// LoadGraph loads a lineage graph from storage
	LoadGraph(ctx context.Context) (*lineage.Graph, error)
}

// JSONGraphStore implements GraphStore using pretty-printed JSON files. The
// same encoding backs the browser download, so a stored file re-parses to an
// equivalent node/edge set.
type JSONGraphStore struct {
	filePath string
}

// NewJSONGraphStore creates a new JSON graph store.
func NewJSONGraphStore(filePath string) *JSONGraphStore {
	return &JSONGraphStore{
		filePath: filePath,
	}
}

// StoreGraph stores the lineage graph as indented JSON.
func (s *JSONGraphStore) StoreGraph(ctx context.Context, graph *lineage.Graph) error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := MarshalGraph(graph)
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0644)
}

// LoadGraph loads a lineage graph from a JSON file.
func (s *JSONGraphStore) LoadGraph(ctx context.Context) (*lineage.Graph, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, err
	}

	var graph lineage.Graph
	if err := json.Unmarshal(data, &graph); err != nil {
		return nil, err
	}

	return &graph, nil
}

// MarshalGraph encodes a graph the way downloads and stores expect it:
// pretty-printed, edge order preserved.
func MarshalGraph(graph *lineage.Graph) ([]byte, error) {
	return json.MarshalIndent(graph, "", "  ")
}
