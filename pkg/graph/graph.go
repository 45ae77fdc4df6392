package graph

import (
	"fmt"

	"github.com/gridsage/cascade/pkg/features"
	"github.com/gridsage/cascade/pkg/model"
)

// EdgeKind distinguishes explicit dependency edges from edges synthesized
// purely out of spatial closeness.
type EdgeKind string

const (
	KindDependency EdgeKind = "dependency"
	KindProximity  EdgeKind = "proximity"
)

// Node is one infrastructure element in the graph.
type Node struct {
	ID        string         `json:"id"`
	Type      model.NodeType `json:"type"`
	Name      string         `json:"name"`
	Embedding []float64      `json:"-"`
}

// Edge is a directed weighted influence link. A reverse edge must be added
// explicitly when influence flows both ways.
type Edge struct {
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	Weight       float64  `json:"weight"`
	Kind         EdgeKind `json:"kind"`
	Relationship string   `json:"relationship"`
}

// Graph owns the node table, the adjacency list keyed by source id, a
// spatial index used only for proximity-edge synthesis, and the derived
// dense adjacency matrix.
type Graph struct {
	nodes     map[string]*Node
	order     []string // insertion order; index i is row/column i of the matrix
	index     map[string]int
	adjacency map[string][]*Edge
	edges     map[string]map[string]*Edge // source -> target -> edge
	spatial   map[string]model.Coordinate
	matrix    [][]float64
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[string]*Node),
		index:     make(map[string]int),
		adjacency: make(map[string][]*Edge),
		edges:     make(map[string]map[string]*Edge),
		spatial:   make(map[string]model.Coordinate),
	}
}

// AddNode inserts a node with its precomputed embedding and position.
// Re-adding an id is a no-op.
func (g *Graph) AddNode(id string, t model.NodeType, name string, embedding []float64, pos model.Coordinate) {
	if _, exists := g.nodes[id]; exists {
		return
	}
	g.nodes[id] = &Node{ID: id, Type: t, Name: name, Embedding: embedding}
	g.index[id] = len(g.order)
	g.order = append(g.order, id)
	g.spatial[id] = pos
}

// AddEdge inserts a directed edge. At most one edge exists per ordered
// (source, target) pair: re-adding keeps the original entry's kind and
// relationship but merges weights by maximum, so the strongest claimed
// influence wins in the adjacency matrix.
func (g *Graph) AddEdge(source, target string, weight float64, kind EdgeKind, relationship string) {
	if source == target {
		return
	}
	if _, ok := g.nodes[source]; !ok {
		return
	}
	if _, ok := g.nodes[target]; !ok {
		return
	}
	if weight <= 0 {
		return
	}
	if weight > 1 {
		weight = 1
	}

	if existing, ok := g.edges[source][target]; ok {
		if weight > existing.Weight {
			existing.Weight = weight
		}
		return
	}

	edge := &Edge{Source: source, Target: target, Weight: weight, Kind: kind, Relationship: relationship}
	if g.edges[source] == nil {
		g.edges[source] = make(map[string]*Edge)
	}
	g.edges[source][target] = edge
	g.adjacency[source] = append(g.adjacency[source], edge)
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.order)
}

// NodeIDs returns every node id in insertion order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// NodeAt returns the node at matrix row i.
func (g *Graph) NodeAt(i int) *Node {
	return g.nodes[g.order[i]]
}

// IndexOf returns the matrix row of a node id.
func (g *Graph) IndexOf(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns every edge in the graph, grouped by source insertion order.
func (g *Graph) Edges() []*Edge {
	var edges []*Edge
	for _, id := range g.order {
		edges = append(edges, g.adjacency[id]...)
	}
	return edges
}

// OutEdges returns the edges leaving the given node.
func (g *Graph) OutEdges(id string) []*Edge {
	return g.adjacency[id]
}

// EdgeCount returns the total number of edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, edges := range g.adjacency {
		count += len(edges)
	}
	return count
}

// Position returns the spatial-index coordinates of a node.
func (g *Graph) Position(id string) (model.Coordinate, bool) {
	pos, ok := g.spatial[id]
	return pos, ok
}

// Matrix returns the dense adjacency matrix built by
// BuildAdjacencyMatrix, or nil if it has not been built.
func (g *Graph) Matrix() [][]float64 {
	return g.matrix
}

// BuildAdjacencyMatrix derives the dense node-count x node-count matrix.
// Each cell holds the maximum weight across edges between that ordered
// pair. It also recomputes every node's connectivity-degree embedding
// slot, since the degree is only known once all edges exist.
func (g *Graph) BuildAdjacencyMatrix() [][]float64 {
	n := len(g.order)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}

	for source, targets := range g.edges {
		si := g.index[source]
		for target, edge := range targets {
			ti := g.index[target]
			if edge.Weight > matrix[si][ti] {
				matrix[si][ti] = edge.Weight
			}
		}
	}

	for _, id := range g.order {
		degree := float64(len(g.adjacency[id]))
		slot := degree / 15
		if slot > 1 {
			slot = 1
		}
		g.nodes[id].Embedding[features.SlotConnectivity] = slot
	}

	g.matrix = matrix
	return matrix
}

// SampleIDs returns up to max node ids, for error messages.
func (g *Graph) SampleIDs(max int) []string {
	if max > len(g.order) {
		max = len(g.order)
	}
	sample := make([]string, max)
	copy(sample, g.order[:max])
	return sample
}

// String describes the graph for logs.
func (g *Graph) String() string {
	return fmt.Sprintf("graph(nodes=%d, edges=%d)", g.NodeCount(), g.EdgeCount())
}
