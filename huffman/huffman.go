// Package huffman implements the per-dictionary Huffman tree used as a
// candidate generator inside the partitioner: build a tree from a
// word->frequency table, encode a word to its bit path, and decode a bit
// path back to a word — plus the "tail code" extension that lets
// internal nodes stand in for words too, so the encoder can always
// terminate on a bit stream shorter than any leaf's code.
//
// Nodes live in a flat arena (spec.md §9's "contiguous vector with
// parent/left/right as indices") rather than as heap-allocated,
// pointer-linked structs, so the whole tree serializes with
// encoding/gob without cycles.
package huffman

import (
	"container/heap"
	"sort"

	"github.com/wjx/zencoder/bitstream"
)

const noChild = -1

// Node is one arena slot: a leaf if Left == Right == noChild, otherwise
// internal. HasWord distinguishes "no word assigned" from the zero value
// of Word, since an internal node without a tail-code assignment has no
// word at all.
type Node struct {
	Parent, Left, Right int
	Freq                int
	Word                string
	HasWord             bool
}

func (n *Node) isInternal() bool {
	return n.Left != noChild && n.Right != noChild
}

// Tree is a single Huffman dictionary: its arena, the index of the root,
// a reverse index from word to arena slot, and whether FillTailCode has
// run yet.
type Tree struct {
	Nodes    []Node
	Root     int
	Index    map[string]int
	FullCode bool
}

// pqItem is one entry in the build heap: a reference to an arena slot,
// plus the insertion sequence number used to break frequency ties so
// that the same input word->frequency table always yields the same tree
// (spec.md §9's determinism note).
type pqItem struct {
	nodeIdx int
	freq    int
	seq     int
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].freq != pq[j].freq {
		return pq[i].freq < pq[j].freq
	}
	return pq[i].seq < pq[j].seq
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(pqItem))
}
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// Build constructs a Huffman tree over words, a nonempty map from word to
// a positive frequency. Ties in the priority queue are broken by
// insertion order: leaves are inserted in the lexical order of their
// words, and each merged node after every node already queued. This
// gives a build that is deterministic across runs for the same input map
// (Go map iteration order itself is not).
//
// If words has a single entry, the resulting tree's root is that entry's
// own leaf, and GetStringBitStream for it returns an empty Stream.
func Build(words map[string]int) *Tree {
	keys := make([]string, 0, len(words))
	for w := range words {
		keys = append(keys, w)
	}
	sort.Strings(keys)

	t := &Tree{
		Nodes: make([]Node, 0, 2*len(keys)),
		Index: make(map[string]int, len(keys)),
	}

	pq := make(priorityQueue, 0, len(keys))
	seq := 0
	for _, w := range keys {
		idx := len(t.Nodes)
		t.Nodes = append(t.Nodes, Node{
			Parent: noChild, Left: noChild, Right: noChild,
			Freq: words[w], Word: w, HasWord: true,
		})
		t.Index[w] = idx
		heap.Push(&pq, pqItem{nodeIdx: idx, freq: words[w], seq: seq})
		seq++
	}

	for pq.Len() > 1 {
		left := heap.Pop(&pq).(pqItem)
		right := heap.Pop(&pq).(pqItem)

		idx := len(t.Nodes)
		t.Nodes = append(t.Nodes, Node{
			Parent: noChild, Left: left.nodeIdx, Right: right.nodeIdx,
			Freq: left.freq + right.freq,
		})
		t.Nodes[left.nodeIdx].Parent = idx
		t.Nodes[right.nodeIdx].Parent = idx

		heap.Push(&pq, pqItem{nodeIdx: idx, freq: left.freq + right.freq, seq: seq})
		seq++
	}

	root := heap.Pop(&pq).(pqItem)
	t.Root = root.nodeIdx
	return t
}

// FillTailCode assigns words[0], words[1], ... to every internal node,
// in a depth-first order seeded at the root: push left then right, so
// right is popped (and assigned) before left at each level. This exact
// order is part of the persisted-tree contract (spec.md §9): a tree
// built and tail-coded once must always assign the same words to the
// same nodes, so a saved and reloaded Partitioner behaves identically.
//
// words must have at least as many entries as Tree has internal nodes;
// extras are ignored.
func (t *Tree) FillTailCode(words []string) {
	stack := []int{t.Root}
	i := 0
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := &t.Nodes[idx]
		if node.isInternal() {
			node.Word = words[i]
			node.HasWord = true
			t.Index[words[i]] = idx
			i++
		}
		if node.Left != noChild {
			stack = append(stack, node.Left)
		}
		if node.Right != noChild {
			stack = append(stack, node.Right)
		}
	}
	t.FullCode = true
}

// GetStringBitStream returns the root-to-node path for word as a fresh
// Stream (false for a left-child step, true for a right-child step), or
// ok=false if word is not in this tree's reverse index. For a word
// assigned to an internal node via FillTailCode, the returned path is a
// strict prefix of some leaf's code.
func (t *Tree) GetStringBitStream(word string) (stream *bitstream.Stream, ok bool) {
	idx, present := t.Index[word]
	if !present {
		return nil, false
	}

	var bits []bool
	current := idx
	for current != t.Root {
		parent := t.Nodes[current].Parent
		if t.Nodes[parent].Left == current {
			bits = append(bits, false)
		} else {
			bits = append(bits, true)
		}
		current = parent
	}
	for i, j := 0, len(bits)-1; i < j; i, j = i+1, j-1 {
		bits[i], bits[j] = bits[j], bits[i]
	}
	return bitstream.Bits(bits), true
}

// CutWord speculatively walks stream from this tree's root. If it
// reaches a leaf, it restores every bit it inspected and returns the
// leaf's word: the actual consumption of those bits happens later, via
// the caller's Stream.Cut against GetStringBitStream(word). If the
// stream runs out before reaching a leaf, its bits are likewise restored,
// and CutWord returns the current internal node's tail-code word only
// when tailCode is true and FillTailCode has already run and assigned
// that node a word; otherwise it returns ok=false.
func (t *Tree) CutWord(stream *bitstream.Stream, tailCode bool) (word string, ok bool) {
	current := t.Root
	var popped []bool

	for t.Nodes[current].isInternal() {
		if stream.IsEmpty() {
			for i := len(popped) - 1; i >= 0; i-- {
				stream.Recover(popped[i])
			}
			node := t.Nodes[current]
			if tailCode && t.FullCode && node.HasWord {
				return node.Word, true
			}
			return "", false
		}

		bit, _ := stream.Pop() // stream is non-empty, checked above
		popped = append(popped, bit)
		if bit {
			current = t.Nodes[current].Right
		} else {
			current = t.Nodes[current].Left
		}
	}

	for i := len(popped) - 1; i >= 0; i-- {
		stream.Recover(popped[i])
	}
	return t.Nodes[current].Word, true
}

// InternalCount returns the number of internal nodes in the tree, i.e.
// the minimum length FillTailCode's words argument must have.
func (t *Tree) InternalCount() int {
	n := 0
	for i := range t.Nodes {
		if t.Nodes[i].isInternal() {
			n++
		}
	}
	return n
}
