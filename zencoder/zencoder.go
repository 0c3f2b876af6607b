// Package zencoder is the top-level codec façade: plain word-sequence
// encoding backed directly by a partitioner.Partitioner, plus an
// AES-CBC-wrapped variant for callers who want confidentiality as well
// as the steganographic transform.
package zencoder

import (
	"github.com/wjx/zencoder/bitstream"
	"github.com/wjx/zencoder/partitioner"
	"github.com/wjx/zencoder/zerrs"
	"github.com/wjx/zencoder/zlog"
)

var log = zlog.Get("zencoder")

// Codec pairs a Partitioner with the encode/decode operations exposed to
// callers. It holds no other state, so it is safe to share across
// goroutines as long as each call constructs its own bitstream.Stream —
// which every method here does.
type Codec struct {
	partitioner *partitioner.Partitioner
}

// New wraps an already-built or already-loaded Partitioner in a Codec.
func New(p *partitioner.Partitioner) *Codec {
	return &Codec{partitioner: p}
}

// EncodePlain encodes payload directly, with no encryption layer, and
// returns the resulting word sequence joined into a single string.
func (c *Codec) EncodePlain(payload []byte) string {
	stream := bitstream.FromBytes(payload)
	words := c.partitioner.Encode(stream, nil)
	return joinWords(words)
}

// DecodePlain reverses EncodePlain. It returns ErrDecodeUnknownWord if
// cipherText contains a code point absent from every dictionary tree.
func (c *Codec) DecodePlain(cipherText string) ([]byte, error) {
	words := splitWords(cipherText)
	stream, ok := c.partitioner.Decode(words)
	if !ok {
		return nil, zerrs.ErrDecodeUnknownWord
	}
	return stream.ToBytes(), nil
}

// joinWords concatenates an encoded word sequence into the single string
// form the codec exchanges with callers; splitWords is its inverse,
// walking cipherText code point by code point rather than by byte, since
// every dictionary word is exactly one Han code point (see wordloader).
func joinWords(words []string) string {
	var out []rune
	for _, w := range words {
		out = append(out, []rune(w)...)
	}
	return string(out)
}

func splitWords(cipherText string) []string {
	runes := []rune(cipherText)
	words := make([]string, len(runes))
	for i, r := range runes {
		words[i] = string(r)
	}
	return words
}
