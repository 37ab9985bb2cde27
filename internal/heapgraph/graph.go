// Package heapgraph turns the field chunks of a symbolic heap into a directed
// points-to graph: receiver --field--> snapshot.
package heapgraph

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"

	"github.com/viperproject/viper-ide-sub004/internal/model"
	"github.com/viperproject/viper-ide-sub004/internal/symbex"
)

// Node is a vertex of the heap graph. ID is the rendered term.
type Node struct {
	ID   string
	Term model.Term
}

type edgeKey struct{ from, to string }

// HeapGraph is the points-to view of one state's heap.
type HeapGraph struct {
	g      graph.Graph[string, Node]
	labels map[edgeKey][]string
}

// Build creates the graph from the current heap of s. Chunks other than
// basic field chunks carry no points-to information and are skipped.
// Several fields linking the same pair of terms share one edge whose
// label lists every field.
func Build(s *symbex.State) (*HeapGraph, error) {
	hg := &HeapGraph{
		g:      graph.New(func(n Node) string { return n.ID }, graph.Directed()),
		labels: make(map[edgeKey][]string),
	}

	var order []edgeKey
	for _, c := range s.Heap {
		fc, ok := c.(model.FieldChunk)
		if !ok {
			continue
		}
		from, err := hg.addTerm(fc.Receiver)
		if err != nil {
			return nil, err
		}
		to, err := hg.addTerm(fc.Snapshot)
		if err != nil {
			return nil, err
		}
		key := edgeKey{from, to}
		if _, seen := hg.labels[key]; !seen {
			order = append(order, key)
		}
		hg.labels[key] = append(hg.labels[key], fc.Field+" ("+fc.Permission.String()+")")
	}

	for _, key := range order {
		label := strings.Join(hg.labels[key], ", ")
		if err := hg.g.AddEdge(key.from, key.to, graph.EdgeAttribute("label", label)); err != nil {
			return nil, fmt.Errorf("failed to add edge %s -> %s: %w", key.from, key.to, err)
		}
	}
	return hg, nil
}

func (hg *HeapGraph) addTerm(t model.Term) (string, error) {
	n := Node{ID: t.String(), Term: t}
	label := n.ID
	if s, ok := model.SortOf(t); ok {
		label += ": " + s.String()
	}
	err := hg.g.AddVertex(n, graph.VertexAttribute("label", label))
	if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return "", fmt.Errorf("failed to add vertex %s: %w", n.ID, err)
	}
	return n.ID, nil
}

// Order returns the number of vertices.
func (hg *HeapGraph) Order() int {
	n, _ := hg.g.Order()
	return n
}

// Node returns the vertex with the given rendered term.
func (hg *HeapGraph) Node(id string) (Node, bool) {
	n, err := hg.g.Vertex(id)
	if err != nil {
		return Node{}, false
	}
	return n, true
}

// Labels returns the fields on the edge from -> to, or nil if there is none.
func (hg *HeapGraph) Labels(from, to string) []string {
	return hg.labels[edgeKey{from, to}]
}

// Successors returns the direct targets of id, sorted.
func (hg *HeapGraph) Successors(id string) []string {
	adj, err := hg.g.AdjacencyMap()
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(adj[id]))
	for target := range adj[id] {
		out = append(out, target)
	}
	sort.Strings(out)
	return out
}

// Reachable returns every vertex reachable from id, id included, in BFS order.
func (hg *HeapGraph) Reachable(id string) ([]string, error) {
	var visited []string
	err := graph.BFS(hg.g, id, func(v string) bool {
		visited = append(visited, v)
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("failed to traverse from %s: %w", id, err)
	}
	return visited, nil
}

// WriteDOT writes the graph in Graphviz DOT format.
func (hg *HeapGraph) WriteDOT(w io.Writer) error {
	return draw.DOT(hg.g, w, draw.GraphAttribute("rankdir", "LR"))
}
