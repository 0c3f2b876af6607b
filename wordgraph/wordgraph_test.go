package wordgraph

import (
	"io"
	"testing"
)

func TestAddEdgeAccumulatesCounts(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")

	node := g.Node("a")
	if node == nil {
		t.Fatalf("expected node %q to exist", "a")
	}
	if node.Edges["b"] != 2 {
		t.Fatalf("edge a->b = %d, want 2", node.Edges["b"])
	}
	if node.Edges["c"] != 1 {
		t.Fatalf("edge a->c = %d, want 1", node.Edges["c"])
	}
	if node.Total != 3 {
		t.Fatalf("node a Total = %d, want 3", node.Total)
	}
	if g.Connections != 3 {
		t.Fatalf("graph Connections = %d, want 3", g.Connections)
	}
}

func TestAddEdgeCreatesTargetNodeWithNoOutgoingEdges(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")

	target := g.Node("b")
	if target == nil {
		t.Fatalf("expected node %q to exist", "b")
	}
	if target.Total != 0 {
		t.Fatalf("target node Total = %d, want 0 (no outgoing edges yet)", target.Total)
	}
}

func TestEdgeOrDefault(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	node := g.Node("a")

	if got := node.EdgeOrDefault("b", 9); got != 1 {
		t.Fatalf("EdgeOrDefault known edge = %d, want 1", got)
	}
	if got := node.EdgeOrDefault("z", 9); got != 9 {
		t.Fatalf("EdgeOrDefault unknown edge = %d, want 9", got)
	}

	var nilNode *Node
	if got := nilNode.EdgeOrDefault("b", 5); got != 5 {
		t.Fatalf("EdgeOrDefault on nil node = %d, want 5", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")

	restored := FromSnapshot(g.Snapshot(), g.Connections)
	if restored.Len() != g.Len() {
		t.Fatalf("restored vocabulary size = %d, want %d", restored.Len(), g.Len())
	}
	if restored.Connections != g.Connections {
		t.Fatalf("restored Connections = %d, want %d", restored.Connections, g.Connections)
	}
	if restored.Node("a").EdgeOrDefault("b", -1) != 1 {
		t.Fatalf("restored edge a->b lost")
	}
}

type stubStream struct {
	words []string
	i     int
}

func (s *stubStream) Next() (string, error) {
	if s.i >= len(s.words) {
		return "", io.EOF
	}
	w := s.words[s.i]
	s.i++
	return w, nil
}

func TestBuildFromStreamPairsConsecutiveWords(t *testing.T) {
	stream := &stubStream{words: []string{"a", "b", "c", "b"}}
	g, err := BuildFromStream(stream)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 3 {
		t.Fatalf("vocabulary size = %d, want 3", g.Len())
	}
	if g.Node("a").EdgeOrDefault("b", -1) != 1 {
		t.Fatalf("expected edge a->b")
	}
	if g.Node("b").EdgeOrDefault("c", -1) != 1 {
		t.Fatalf("expected edge b->c")
	}
	if g.Node("c").EdgeOrDefault("b", -1) != 1 {
		t.Fatalf("expected edge c->b")
	}
}

func TestBuildFromStreamEmptyReturnsError(t *testing.T) {
	stream := &stubStream{words: nil}
	if _, err := BuildFromStream(stream); err == nil {
		t.Fatalf("expected error for empty stream")
	}
}
