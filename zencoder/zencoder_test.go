package zencoder

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/wjx/zencoder/partitioner"
	"github.com/wjx/zencoder/wordgraph"
)

func buildTestPartitioner(t *testing.T) *partitioner.Partitioner {
	t.Helper()
	g := wordgraph.New()
	words := make([]string, 80)
	for i := range words {
		words[i] = string(rune('一' + i))
	}
	for i := 0; i < len(words)-1; i++ {
		g.AddEdge(words[i], words[i+1])
		g.AddEdge(words[i+1], words[i])
	}
	p, err := partitioner.Build(g, 4, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return p
}

func TestPlainRoundTrip(t *testing.T) {
	codec := New(buildTestPartitioner(t))
	payload := []byte("steganography over a Han corpus")

	cipherText := codec.EncodePlain(payload)
	if cipherText == "" {
		t.Fatalf("expected non-empty encoded output")
	}

	got, err := codec.DecodePlain(cipherText)
	if err != nil {
		t.Fatalf("DecodePlain: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, payload)
	}
}

func TestDecodePlainRejectsForeignCharacters(t *testing.T) {
	codec := New(buildTestPartitioner(t))
	if _, err := codec.DecodePlain("鿿"); err == nil {
		t.Fatalf("expected an error decoding a character outside every dictionary")
	}
}

func TestCipherRoundTrip(t *testing.T) {
	codec := New(buildTestPartitioner(t))
	key, err := GenerateKey(32)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	payload := []byte("confidential and obfuscated")

	cipherText, err := codec.EncodeCipher(payload, key)
	if err != nil {
		t.Fatalf("EncodeCipher: %v", err)
	}

	got, err := codec.DecodeCipher(cipherText, key)
	if err != nil {
		t.Fatalf("DecodeCipher: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, payload)
	}
}

func TestCipherRoundTripFailsWithWrongKey(t *testing.T) {
	codec := New(buildTestPartitioner(t))
	key, _ := GenerateKey(32)
	wrongKey, _ := GenerateKey(32)
	payload := []byte("only the right key should recover this")

	cipherText, err := codec.EncodeCipher(payload, key)
	if err != nil {
		t.Fatalf("EncodeCipher: %v", err)
	}

	got, err := codec.DecodeCipher(cipherText, wrongKey)
	if err == nil && bytes.Equal(got, payload) {
		t.Fatalf("expected the wrong key to fail to recover the original payload")
	}
}

func TestDeriveKeyIsDeterministic(t *testing.T) {
	salt := []byte("fixed-salt-for-test")
	k1 := DeriveKey("correct horse battery staple", salt, 32)
	k2 := DeriveKey("correct horse battery staple", salt, 32)
	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected DeriveKey to be deterministic for the same inputs")
	}
	k3 := DeriveKey("different passphrase", salt, 32)
	if bytes.Equal(k1, k3) {
		t.Fatalf("expected different passphrases to derive different keys")
	}
}
