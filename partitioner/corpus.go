package partitioner

import (
	"github.com/wjx/zencoder/wordgraph"
	"github.com/wjx/zencoder/wordloader"
	"github.com/wjx/zencoder/zerrs"
)

// BuildFromCorpus walks dir for source files, builds a word-transition
// graph over their Han content, and partitions it into a k-tree
// Partitioner. It is the usual entry point for cmd/zencgen: callers who
// already have a Graph (e.g. one loaded from a Store) should call Build
// directly instead.
func BuildFromCorpus(dir string, k int, rng RandSource) (*Partitioner, error) {
	paths, err := wordloader.WalkCorpus(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, zerrs.ErrCorpusEmpty
	}

	loader := wordloader.Open(paths)
	defer loader.Close()

	graph, err := wordgraph.BuildFromStream(loader)
	if err != nil {
		return nil, err
	}

	return Build(graph, k, rng)
}
