// Package partitioner implements the top-level codec primitive: a fixed
// set of disjoint Huffman dictionaries drawn from a word-transition
// graph, encoding a payload as a probabilistically-selected sequence of
// dictionary words and decoding that sequence back losslessly.
package partitioner

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sort"

	"github.com/wjx/zencoder/bitstream"
	"github.com/wjx/zencoder/huffman"
	"github.com/wjx/zencoder/wordgraph"
	"github.com/wjx/zencoder/zerrs"
	"github.com/wjx/zencoder/zlog"
)

var log = zlog.Get("zencoder/partitioner")

// RandSource is the randomness the partitioner needs: a weighted-index
// draw and a shuffle. *math/rand.Rand satisfies it directly, and tests
// substitute a seeded instance for reproducible runs.
type RandSource interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// newDefaultRand seeds a *rand.Rand from crypto/rand, so that callers
// who pass a nil RandSource still get a source that isn't predictable
// across process runs.
func newDefaultRand() *rand.Rand {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		panic(zerrs.Wrap(err, "seeding default random source"))
	}
	return rand.New(rand.NewSource(int64(binary.BigEndian.Uint64(buf[:]))))
}

// Partitioner holds K disjoint Huffman dictionaries built over a shared
// word-transition graph, plus the tail reserve on Trees[0] that lets
// Encode terminate on any payload length.
type Partitioner struct {
	Trees   []*huffman.Tree
	Graph   *wordgraph.Graph
	K       int
	PerTree int
}

// Build partitions graph's vocabulary into K disjoint Huffman
// dictionaries of equal size, reserving enough extra words on the first
// tree to tail-code every one of its internal nodes. rng may be nil, in
// which case a fresh crypto-seeded source is used.
//
// perTree is derived from V = graph.Len() and k as V/(k+1) - 1, which
// leaves one tree's worth of words spare for the tail reserve; if that
// works out to fewer than 2 words per tree, the vocabulary is too small
// to partition and ErrVocabularyTooSmall is returned, per spec.md §7's
// explicit recommendation to refuse rather than build a degenerate
// codec.
func Build(graph *wordgraph.Graph, k int, rng RandSource) (*Partitioner, error) {
	v := graph.Len()
	perTree := v/(k+1) - 1
	if perTree < 2 {
		return nil, zerrs.ErrVocabularyTooSmall
	}

	if rng == nil {
		rng = newDefaultRand()
	}

	words := graph.Words()
	sort.Strings(words)
	rng.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })

	trees := make([]*huffman.Tree, k)
	j := 0
	for i := 0; i < k; i++ {
		freqs := make(map[string]int, perTree)
		for kk := 0; kk < perTree; kk++ {
			w := words[j+kk]
			freqs[w] = graph.Node(w).Total
		}
		j += perTree
		trees[i] = huffman.Build(freqs)
	}

	tailWords := words[j : j+(perTree-1)]
	trees[0].FillTailCode(tailWords)

	log.Info("built partitioner: k=%d perTree=%d vocab=%d", k, perTree, v)
	return &Partitioner{Trees: trees, Graph: graph, K: k, PerTree: perTree}, nil
}

// candidate is one tree's proposed next word during Encode: the word
// itself, the bit path that word consumes from the payload, and the
// weight (transition frequency from the previously emitted word) it
// contributes to the draw.
type candidate struct {
	word string
	bits *bitstream.Stream
	freq int
}

// Encode reads payload to its end, emitting one word per iteration. At
// each step every tree proposes the word whose codeword is a prefix of
// the remaining payload (huffman.Tree.CutWord with tailCode=false); the
// proposals are weighted by their transition frequency from the
// previously emitted word (uniform weight 1 for the first word, or for
// any transition never observed in Graph) and one is drawn via rng.
//
// Once no tree can propose a full-leaf word (the remaining payload is
// shorter than every leaf code, including the case where it's empty),
// Encode falls back to Trees[0]'s tail code, whose path covers whatever
// bits remain — possibly zero — and terminates. Those last bits are left
// in payload, since CutWord restores every bit it inspects.
func (p *Partitioner) Encode(payload *bitstream.Stream, rng RandSource) []string {
	if rng == nil {
		rng = newDefaultRand()
	}

	var out []string
	var current string
	hasCurrent := false

	for {
		var candidates []candidate
		total := 0
		for _, t := range p.Trees {
			w, ok := t.CutWord(payload, false)
			if !ok {
				continue
			}
			bs, _ := t.GetStringBitStream(w)

			freq := 1
			if hasCurrent {
				freq = p.Graph.Node(current).EdgeOrDefault(w, 1)
			}
			candidates = append(candidates, candidate{word: w, bits: bs, freq: freq})
			total += freq
		}

		if len(candidates) == 0 {
			w, _ := p.Trees[0].CutWord(payload, true)
			out = append(out, w)
			return out
		}

		pick := rng.Intn(total)
		chosen := candidates[len(candidates)-1]
		cum := 0
		for _, c := range candidates {
			cum += c.freq
			if pick < cum {
				chosen = c
				break
			}
		}

		current = chosen.word
		hasCurrent = true
		out = append(out, current)
		payload.Cut(chosen.bits)
	}
}

// Decode reverses Encode: it looks each word up in whichever tree
// contains it and appends that word's bit path to the reconstructed
// payload, in order. It returns ok=false if any word is absent from
// every tree, per spec.md's ErrDecodeUnknownWord condition — the caller
// wraps that into a sentinel error.
func (p *Partitioner) Decode(words []string) (*bitstream.Stream, bool) {
	result := bitstream.New()
	for _, w := range words {
		found := false
		for _, t := range p.Trees {
			if bs, ok := t.GetStringBitStream(w); ok {
				result.Append(bs)
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return result, true
}
