package wordgraph

import (
	"errors"
	"io"

	"github.com/wjx/zencoder/zerrs"
	"github.com/wjx/zencoder/zlog"
)

var log = zlog.Get("zencoder/wordgraph")

// wordStream is the subset of wordloader.Loader's contract the graph
// builder needs: a bare Next() (string, error) iterator that signals end
// of stream with io.EOF. Kept as a local interface, rather than
// importing wordloader directly, to avoid a dependency cycle (wordloader
// currently has none, but the builder should not have to care).
type wordStream interface {
	Next() (string, error)
}

// BuildFromStream reads loader as w0, w1, w2, ... and calls AddEdge(w_i,
// w_{i+1}) for every consecutive pair, stopping only when loader signals
// end of stream via io.EOF. Partial lines and file boundaries do not
// reset pairing, per spec.md §4.2: the last word of one file and the
// first of the next still form a bigram. Returns ErrCorpusEmpty if the
// loader yields fewer than two words.
func BuildFromStream(loader wordStream) (*Graph, error) {
	g := New()

	last, err := loader.Next()
	if errors.Is(err, io.EOF) {
		return nil, zerrs.ErrCorpusEmpty
	} else if err != nil {
		return nil, zerrs.Wrap(err, "reading first corpus word")
	}

	count := 0
	for {
		next, err := loader.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, zerrs.Wrap(err, "reading corpus word")
		}
		g.AddEdge(last, next)
		last = next
		count++
	}

	if g.Len() == 0 {
		return nil, zerrs.ErrCorpusEmpty
	}
	log.Info("built word graph: %d words, %d connections", g.Len(), g.Connections)
	return g, nil
}
