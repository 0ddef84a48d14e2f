package graph

import (
	"encoding/json"
	"fmt"

	"github.com/Bitlatte/spade/internal/content"
)

// Graph is the node/edge document written for the graph view.
type Graph struct {
	Edges []Edge `json:"edges"`
	Nodes []Node `json:"nodes"`
}

// Node wraps the data of a single article.
type Node struct {
	Data NodeData `json:"data"`
}

type NodeData struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Edge wraps the data of a single reference between two articles.
type Edge struct {
	Data EdgeData `json:"data"`
}

type EdgeData struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// ExportOptions tunes Export.
type ExportOptions struct {
	// DedupeEdges folds repeated links between the same two articles into
	// a single edge. By default every reference yields an edge, so a pair
	// linked twice produces two edges with the same id.
	DedupeEdges bool
}

// Export derives the graph of articles and the references between them.
// Assets are not nodes and references to them are dropped. Node urls carry
// exactly one leading slash.
func Export(idx *content.Index, rm *ReferenceMap, opts ExportOptions) Graph {
	g := Graph{
		Edges: []Edge{},
		Nodes: []Node{},
	}
	for _, a := range idx.Articles() {
		g.Nodes = append(g.Nodes, Node{Data: NodeData{
			ID:  a.ID,
			URL: content.URL(a.Permalink),
		}})
	}

	for _, source := range rm.Sources() {
		seen := make(map[string]bool)
		for _, target := range rm.refs[source] {
			if item, ok := idx.Get(target); !ok || item.Kind() != content.KindArticle {
				continue
			}
			if opts.DedupeEdges {
				if seen[target] {
					continue
				}
				seen[target] = true
			}
			g.Edges = append(g.Edges, Edge{Data: EdgeData{
				ID:     source + "-" + target,
				Source: source,
				Target: target,
			}})
		}
	}
	return g
}

// JSON encodes the graph.
func (g Graph) JSON() ([]byte, error) {
	b, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encode graph: %w", err)
	}
	return b, nil
}
