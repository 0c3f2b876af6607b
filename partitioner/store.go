package partitioner

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/wjx/zencoder/huffman"
	"github.com/wjx/zencoder/wordgraph"
	"github.com/wjx/zencoder/zerrs"
)

// Persisted store framing: a fixed magic, a version byte, a blake2b-256
// checksum of the gob body, an 8-byte big-endian body length, then the
// body itself. The checksum guards against truncated or bit-flipped
// files being silently gob-decoded into garbage.
const (
	storeMagic   = "ZENC"
	storeVersion = 1
)

// snapshot is the gob-serializable shape of a Partitioner: Graph is
// flattened to its node map via wordgraph.Snapshot plus its Connections
// count, since gob cannot see Graph's unexported node map.
type snapshot struct {
	Trees            []*huffman.Tree
	GraphNodes       map[string]*wordgraph.Node
	GraphConnections int
	K                int
	PerTree          int
}

// Save writes p to w in the framed, checksummed format Load expects.
func Save(p *Partitioner, w io.Writer) error {
	var body bytes.Buffer
	snap := snapshot{
		Trees:            p.Trees,
		GraphNodes:       p.Graph.Snapshot(),
		GraphConnections: p.Graph.Connections,
		K:                p.K,
		PerTree:          p.PerTree,
	}
	if err := gob.NewEncoder(&body).Encode(&snap); err != nil {
		return zerrs.Wrap(err, "encoding partitioner")
	}

	sum := blake2b.Sum256(body.Bytes())

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(storeMagic); err != nil {
		return zerrs.Wrap(err, "writing store magic")
	}
	if err := bw.WriteByte(storeVersion); err != nil {
		return zerrs.Wrap(err, "writing store version")
	}
	if _, err := bw.Write(sum[:]); err != nil {
		return zerrs.Wrap(err, "writing store checksum")
	}

	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(body.Len()))
	if _, err := bw.Write(lenBuf[:]); err != nil {
		return zerrs.Wrap(err, "writing store body length")
	}
	if _, err := bw.Write(body.Bytes()); err != nil {
		return zerrs.Wrap(err, "writing store body")
	}
	return bw.Flush()
}

// Load reads a Partitioner previously written by Save, verifying its
// magic, version, and checksum before decoding the gob body.
func Load(r io.Reader) (*Partitioner, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, len(storeMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, zerrs.Wrap(zerrs.ErrStoreCorrupt, "reading store magic")
	}
	if string(magic) != storeMagic {
		return nil, zerrs.ErrStoreCorrupt
	}

	version, err := br.ReadByte()
	if err != nil {
		return nil, zerrs.Wrap(zerrs.ErrStoreCorrupt, "reading store version")
	}
	if version != storeVersion {
		return nil, zerrs.ErrStoreVersion
	}

	var wantSum [blake2b.Size256]byte
	if _, err := io.ReadFull(br, wantSum[:]); err != nil {
		return nil, zerrs.Wrap(zerrs.ErrStoreCorrupt, "reading store checksum")
	}

	var lenBuf [8]byte
	if _, err := io.ReadFull(br, lenBuf[:]); err != nil {
		return nil, zerrs.Wrap(zerrs.ErrStoreCorrupt, "reading store body length")
	}
	n := binary.BigEndian.Uint64(lenBuf[:])

	body := make([]byte, n)
	if _, err := io.ReadFull(br, body); err != nil {
		return nil, zerrs.Wrap(zerrs.ErrStoreCorrupt, "reading store body")
	}

	gotSum := blake2b.Sum256(body)
	if gotSum != wantSum {
		return nil, zerrs.ErrStoreCorrupt
	}

	var snap snapshot
	if err := gob.NewDecoder(bytes.NewReader(body)).Decode(&snap); err != nil {
		return nil, zerrs.Wrap(zerrs.ErrStoreCorrupt, "decoding partitioner body")
	}

	graph := wordgraph.FromSnapshot(snap.GraphNodes, snap.GraphConnections)
	return &Partitioner{Trees: snap.Trees, Graph: graph, K: snap.K, PerTree: snap.PerTree}, nil
}

// SaveFile is Save against a freshly created (or truncated) file at path.
func SaveFile(p *Partitioner, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return zerrs.Wrapf(err, "creating store file %q", path)
	}
	defer f.Close()
	return Save(p, f)
}

// LoadFile is Load against the file at path.
func LoadFile(path string) (*Partitioner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, zerrs.Wrapf(err, "opening store file %q", path)
	}
	defer f.Close()
	return Load(f)
}
