// Package wordgraph implements the directed, weighted word-transition
// graph learned from a Han corpus: a bigram frequency table used both to
// supply Huffman leaf frequencies and to weight the partitioner's
// candidate draw during encoding.
package wordgraph

// Node holds one word's outgoing edge multiset. Edges never contains a
// zero or negative count, and Total always equals the sum of Edges'
// values; both invariants are maintained solely by AddEdge.
type Node struct {
	Edges map[string]int
	Total int
}

func newNode() *Node {
	return &Node{Edges: make(map[string]int)}
}

// EdgeOrDefault returns the count of the edge to word, or def if no such
// edge exists. Used by the partitioner's weighted draw, which falls back
// to a uniform weight of 1 for any candidate the current word has never
// been observed transitioning to.
func (n *Node) EdgeOrDefault(word string, def int) int {
	if n == nil {
		return def
	}
	if c, ok := n.Edges[word]; ok {
		return c
	}
	return def
}

// Graph is the full word -> Node adjacency map, plus a running count of
// every edge ever added.
type Graph struct {
	nodes       map[string]*Node
	Connections int
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// Len reports the graph's vocabulary size (number of distinct words seen,
// as either edge source or target).
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns the Node for word, or nil if word has never appeared.
func (g *Graph) Node(word string) *Node {
	return g.nodes[word]
}

// Words returns every word in the graph, in map iteration order (i.e.
// unordered); callers that need determinism must sort the result
// themselves, as partitioner.Build does before shuffling.
func (g *Graph) Words() []string {
	words := make([]string, 0, len(g.nodes))
	for w := range g.nodes {
		words = append(words, w)
	}
	return words
}

// Snapshot returns the graph's internal node map for persistence. The
// caller must treat it as read-only; FromSnapshot is the only supported
// way to turn it back into a live Graph.
func (g *Graph) Snapshot() map[string]*Node {
	return g.nodes
}

// FromSnapshot rebuilds a Graph from a previously saved node map and
// connection count, as produced by Snapshot. Used by partitioner.Load to
// reconstruct the WordGraph half of a persisted Partitioner.
func FromSnapshot(nodes map[string]*Node, connections int) *Graph {
	if nodes == nil {
		nodes = make(map[string]*Node)
	}
	return &Graph{nodes: nodes, Connections: connections}
}

// AddEdge records one observed transition w1 -> w2: inserting either word
// as a node if absent, incrementing w1's edge count to w2 (or setting it
// to 1 if this is the first time), and incrementing both w1's Total and
// the graph's Connections.
func (g *Graph) AddEdge(w1, w2 string) {
	src, ok := g.nodes[w1]
	if !ok {
		src = newNode()
		g.nodes[w1] = src
	}
	if _, ok := g.nodes[w2]; !ok {
		g.nodes[w2] = newNode()
	}

	src.Edges[w2]++
	src.Total++
	g.Connections++
}
