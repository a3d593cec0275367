package lineage

import "fmt"

// Direction selects which way a trace walks the lineage graph.
type Direction string

const (
	// Upstream walks edges backwards, towards the sources a node is derived from.
	Upstream Direction = "upstream"
	// Downstream walks edges forwards, towards the targets a node feeds into.
	Downstream Direction = "downstream"
)

// Trace performs a breadth-first walk from the given node id, up to maxDepth
// hops, and returns the visited nodes in discovery order (the start node
// first). Used for impact analysis on a mapped graph.
func (g *Graph) Trace(startID string, dir Direction, maxDepth int) ([]Node, error) {
	if dir != Upstream && dir != Downstream {
		return nil, fmt.Errorf("unsupported trace direction: %s", dir)
	}

	start := g.NodeByID(startID)
	if start == nil {
		return nil, fmt.Errorf("node not found: %s", startID)
	}

	visited := map[string]bool{startID: true}
	result := []Node{*start}
	queue := []string{startID}

	for depth := 0; len(queue) > 0 && depth < maxDepth; depth++ {
		levelSize := len(queue)
		for i := 0; i < levelSize; i++ {
			current := queue[0]
			queue = queue[1:]

			for _, edge := range g.Edges {
				var next string
				switch {
				case dir == Downstream && edge.Source == current:
					next = edge.Target
				case dir == Upstream && edge.Target == current:
					next = edge.Source
				default:
					continue
				}

				if visited[next] {
					continue
				}
				visited[next] = true

				// Dangling endpoints have no node to report.
				if node := g.NodeByID(next); node != nil {
					result = append(result, *node)
					queue = append(queue, next)
				}
			}
		}
	}

	return result, nil
}
