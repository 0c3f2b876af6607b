package partitioner

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/wjx/zencoder/bitstream"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	g := buildTestGraph(t, 80)
	p, err := Build(g, 4, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf bytes.Buffer
	if err := Save(p, &buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.K != p.K || loaded.PerTree != p.PerTree {
		t.Fatalf("loaded K/PerTree = %d/%d, want %d/%d", loaded.K, loaded.PerTree, p.K, p.PerTree)
	}
	if loaded.Graph.Len() != p.Graph.Len() {
		t.Fatalf("loaded graph vocabulary = %d, want %d", loaded.Graph.Len(), p.Graph.Len())
	}

	payload := []byte("round trip through a save and load cycle")
	words := p.Encode(bitstream.FromBytes(payload), rand.New(rand.NewSource(3)))

	decoded, ok := loaded.Decode(words)
	if !ok {
		t.Fatalf("loaded partitioner failed to decode a sequence the original encoded")
	}
	got := decoded.ToBytes()
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch after save/load: got %q, want %q", got, payload)
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	if _, err := Load(bytes.NewReader([]byte("not a store file"))); err == nil {
		t.Fatalf("expected an error loading a non-store file")
	}
}
