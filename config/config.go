// Package config centralizes the environment-derived settings shared by
// cmd/zencgen and cmd/zenctl: where the training corpus lives, where
// persisted partitioners are read from and written to, and how many
// dictionary trees to build by default.
package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/wjx/zencoder/zerrs"
)

const (
	envCorpusDir  = "ZENCODER_CORPUS_DIR"
	envStoreDir   = "ZENCODER_STORE_DIR"
	envTreeCount  = "ZENCODER_TREE_COUNT"
	defaultCorpus = "corpus"
	defaultStore  = "partitioners"
	defaultTrees  = 12
)

// Config holds the settings both CLI entry points need. Zero value is
// not meaningful; always build one with Load.
type Config struct {
	CorpusDir string
	StoreDir  string
	TreeCount int
}

// Load reads Config from the environment, falling back to defaults for
// any variable that is unset or empty.
func Load() (Config, error) {
	cfg := Config{
		CorpusDir: getenvDefault(envCorpusDir, defaultCorpus),
		StoreDir:  getenvDefault(envStoreDir, defaultStore),
		TreeCount: defaultTrees,
	}

	if raw := os.Getenv(envTreeCount); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, zerrs.Wrapf(err, "parsing %s=%q as an integer", envTreeCount, raw)
		}
		if n < 1 {
			return Config{}, errors.Errorf("%s must be at least 1, got %d", envTreeCount, n)
		}
		cfg.TreeCount = n
	}

	return cfg, nil
}

func getenvDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
