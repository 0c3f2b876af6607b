// Command zenctl loads a persisted partitioner and encodes or decodes
// stdin through it, optionally under AES-CBC encryption.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wjx/zencoder/config"
	"github.com/wjx/zencoder/partitioner"
	"github.com/wjx/zencoder/zencoder"
	"github.com/wjx/zencoder/zlog"
)

const progName = "zenctl"

const usageMessageRaw = `
Usage: zenctl {encode|decode} [--store FILE] [--key HEXKEY] [--debug]

Reads from stdin, writes to stdout.

Options:
  --store FILE
	Path to a partitioner previously written by zencgen. Defaults to
	$ZENCODER_STORE_DIR/partitioner.zenc.
  --key HEXKEY
	Hex-encoded AES key. If given, encode AES-CBC-encrypts stdin before
	the partitioner step, and decode AES-CBC-decrypts the partitioner's
	output. If omitted, encode/decode operate directly on the
	partitioner with no encryption layer.
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

	if len(os.Args) < 2 {
		usageErrorf("missing command")
	}
	command := os.Args[1]
	if command != "encode" && command != "decode" {
		usageErrorf("unknown command %q", command)
	}

	flags := flag.NewFlagSet(progName, flag.ContinueOnError)
	flags.Usage = func() { fmt.Fprint(os.Stderr, usageMessage()) }

	storeFile := flags.String("store", "", "partitioner store file")
	keyHex := flags.String("key", "", "hex-encoded AES key")
	debug := flags.Bool("debug", false, "enable debug logging")

	if err := flags.Parse(os.Args[2:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		usageErrorf("%s", err)
	}

	zlog.ConfigureCLI(progName, *debug)

	store := *storeFile
	if store == "" {
		store = cfg.StoreDir + "/partitioner.zenc"
	}

	p, err := partitioner.LoadFile(store)
	if err != nil {
		exitError(err)
	}
	codec := zencoder.New(p)

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitError(err)
	}

	var key []byte
	if *keyHex != "" {
		key, err = hex.DecodeString(*keyHex)
		if err != nil {
			usageErrorf("--key is not valid hex: %s", err)
		}
	}

	switch command {
	case "encode":
		if key != nil {
			out, err := codec.EncodeCipher(input, key)
			if err != nil {
				exitError(err)
			}
			fmt.Print(out)
		} else {
			fmt.Print(codec.EncodePlain(input))
		}
	case "decode":
		if key != nil {
			out, err := codec.DecodeCipher(string(input), key)
			if err != nil {
				exitError(err)
			}
			os.Stdout.Write(out)
		} else {
			out, err := codec.DecodePlain(string(input))
			if err != nil {
				exitError(err)
			}
			os.Stdout.Write(out)
		}
	}
}
