package huffman

import (
	"testing"

	"github.com/wjx/zencoder/bitstream"
)

func TestBuildSingleWordHasEmptyCode(t *testing.T) {
	tree := Build(map[string]int{"a": 5})
	stream, ok := tree.GetStringBitStream("a")
	if !ok {
		t.Fatalf("expected word %q to be found", "a")
	}
	if stream.Size() != 0 {
		t.Fatalf("single-word tree code size = %d, want 0", stream.Size())
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	freqs := map[string]int{"a": 5, "b": 5, "c": 2, "d": 1, "e": 1}
	t1 := Build(freqs)
	t2 := Build(freqs)

	for w := range freqs {
		s1, ok1 := t1.GetStringBitStream(w)
		s2, ok2 := t2.GetStringBitStream(w)
		if ok1 != ok2 {
			t.Fatalf("word %q found=%v vs found=%v across builds", w, ok1, ok2)
		}
		if s1.String() != s2.String() {
			t.Fatalf("word %q code %q vs %q across builds", w, s1.String(), s2.String())
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	freqs := map[string]int{"a": 10, "b": 6, "c": 4, "d": 2, "e": 1}
	tree := Build(freqs)

	for w := range freqs {
		stream, ok := tree.GetStringBitStream(w)
		if !ok {
			t.Fatalf("word %q not found in tree", w)
		}
		code := stream.String()
		got, ok := tree.CutWord(stream, false)
		if !ok {
			t.Fatalf("CutWord failed to decode word %q's own code", w)
		}
		if got != w {
			t.Fatalf("CutWord decoded %q as %q", w, got)
		}
		if stream.String() != code {
			t.Fatalf("expected CutWord to leave code %q for %q in place, stream is now %q", code, w, stream.String())
		}
	}
}

func TestPrefixProperty(t *testing.T) {
	freqs := map[string]int{"a": 10, "b": 6, "c": 4, "d": 2, "e": 1, "f": 1}
	tree := Build(freqs)

	codes := make(map[string]string, len(freqs))
	for w := range freqs {
		s, _ := tree.GetStringBitStream(w)
		codes[w] = s.String()
	}
	for w1, c1 := range codes {
		for w2, c2 := range codes {
			if w1 == w2 {
				continue
			}
			if len(c1) <= len(c2) && c2[:len(c1)] == c1 {
				t.Fatalf("code %q for %q is a prefix of code %q for %q", c1, w1, c2, w2)
			}
		}
	}
}

func TestFillTailCodeAssignsInternalNodesInRightBeforeLeftOrder(t *testing.T) {
	freqs := map[string]int{"a": 1, "b": 1, "c": 1, "d": 1}
	tree := Build(freqs)

	n := tree.InternalCount()
	if n == 0 {
		t.Fatalf("expected at least one internal node for a 4-leaf tree")
	}
	tailWords := make([]string, n)
	for i := range tailWords {
		tailWords[i] = string(rune('A' + i))
	}
	tree.FillTailCode(tailWords)

	if !tree.FullCode {
		t.Fatalf("expected FullCode to be true after FillTailCode")
	}
	for _, w := range tailWords {
		if _, ok := tree.Index[w]; !ok {
			t.Fatalf("tail word %q missing from index after FillTailCode", w)
		}
	}

	// Four equal-frequency leaves give a root whose two children are both
	// internal: the root takes tailWords[0], then the right child is
	// assigned before the left.
	root := tree.Nodes[tree.Root]
	if got := tree.Nodes[root.Right].Word; got != tailWords[1] {
		t.Fatalf("root's right child tail word = %q, want %q", got, tailWords[1])
	}
	if got := tree.Nodes[root.Left].Word; got != tailWords[2] {
		t.Fatalf("root's left child tail word = %q, want %q", got, tailWords[2])
	}
}

func TestCutWordFallsBackToTailCodeOnExhaustion(t *testing.T) {
	freqs := map[string]int{"a": 1, "b": 1, "c": 1, "d": 1}
	tree := Build(freqs)
	n := tree.InternalCount()
	tailWords := make([]string, n)
	for i := range tailWords {
		tailWords[i] = string(rune('A' + i))
	}
	tree.FillTailCode(tailWords)

	empty := bitstream.Bits(nil)
	word, ok := tree.CutWord(empty, true)
	if !ok {
		t.Fatalf("expected root's tail word to be returned for an empty stream")
	}
	if word == "" {
		t.Fatalf("expected a non-empty tail word")
	}
	if !empty.IsEmpty() {
		t.Fatalf("expected stream to remain empty after CutWord restore")
	}
}

func TestCutWordWithoutTailCodeFailsOnExhaustion(t *testing.T) {
	freqs := map[string]int{"a": 1, "b": 1, "c": 1, "d": 1}
	tree := Build(freqs)

	empty := bitstream.Bits(nil)
	if _, ok := tree.CutWord(empty, false); ok {
		t.Fatalf("expected CutWord to fail without a tail code assigned")
	}
	if !empty.IsEmpty() {
		t.Fatalf("expected stream restored to empty")
	}
}
