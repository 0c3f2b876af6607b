// Command zencgen builds a partitioner from a Han-text corpus directory
// and persists it to a store file, ready for cmd/zenctl to load.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/wjx/zencoder/config"
	"github.com/wjx/zencoder/partitioner"
	"github.com/wjx/zencoder/zlog"
)

const progName = "zencgen"

const usageMessageRaw = `
Usage: zencgen [--corpus DIR] [--out FILE] [--trees N] [--debug]

Options:
  --corpus DIR
	Directory of UTF-8 text files to learn the word-transition graph
	from. Defaults to $ZENCODER_CORPUS_DIR, or "corpus".
  --out FILE
	Path to write the persisted partitioner to. Defaults to
	$ZENCODER_STORE_DIR/partitioner.zenc.
  --trees N
	Number of disjoint Huffman dictionaries to build. Defaults to
	$ZENCODER_TREE_COUNT, or 12.
  --debug
	Enable debug-level logging.
`

func usageMessage() string {
	return strings.TrimLeft(usageMessageRaw, "\n")
}

func usageErrorf(detailFmt string, detailArgs ...interface{}) {
	detail := fmt.Sprintf(detailFmt, detailArgs...)
	fmt.Fprintf(os.Stderr, "%s: %s\n%s", progName, detail, usageMessage())
	os.Exit(64)
}

func exitError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", progName, err.Error())
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		exitError(err)
	}

	flags := flag.NewFlagSet(progName, flag.ContinueOnError)
	flags.Usage = func() { fmt.Fprint(os.Stderr, usageMessage()) }

	corpusDir := flags.String("corpus", cfg.CorpusDir, "corpus directory")
	outFile := flags.String("out", "", "output store file")
	trees := flags.Int("trees", cfg.TreeCount, "number of dictionary trees")
	debug := flags.Bool("debug", false, "enable debug logging")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		usageErrorf("%s", err)
	}

	zlog.ConfigureCLI(progName, *debug)

	out := *outFile
	if out == "" {
		out = cfg.StoreDir + "/partitioner.zenc"
	}

	if *trees < 1 {
		usageErrorf("--trees must be at least 1, got %d", *trees)
	}

	if err := os.MkdirAll(cfg.StoreDir, 0o755); err != nil {
		exitError(err)
	}

	p, err := partitioner.BuildFromCorpus(*corpusDir, *trees, nil)
	if err != nil {
		exitError(err)
	}

	if err := partitioner.SaveFile(p, out); err != nil {
		exitError(err)
	}

	fmt.Fprintf(os.Stderr, "%s: wrote %s (vocabulary=%d, trees=%d, perTree=%d)\n",
		progName, out, p.Graph.Len(), p.K, p.PerTree)
}
