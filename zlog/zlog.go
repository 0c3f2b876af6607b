// Package zlog centralizes the go-logging setup shared by every zencoder
// binary. Library packages obtain their own module-scoped logger with
// Get, following the one-logger-per-package convention used throughout
// the Dust codebase (see e.g. Dust's "Dust", "Dust/crypting",
// "Dust/shaping" loggers).
package zlog

import (
	"os"

	"github.com/op/go-logging"
)

// Modules lists every module name a zencoder logger may be registered
// under, mirroring Dust's LogModules table. Kept in sync by hand; a
// mismatch only affects per-module level filtering, not correctness.
var Modules = []string{
	"zencoder",
	"zencoder/bitstream",
	"zencoder/wordgraph",
	"zencoder/wordloader",
	"zencoder/huffman",
	"zencoder/partitioner",
	"zencoder/cmd",
}

// Get returns the leveled logger for module, creating it on first use.
func Get(module string) *logging.Logger {
	return logging.MustGetLogger(module)
}

// ConfigureCLI installs a stderr backend formatted as
// "LEVEL    module               | message", raising the level to DEBUG
// when debug is true. It is meant to be called once, from a cmd/ main,
// exactly the way Dust2_proxy's startLogging configures logging before
// touching the network.
func ConfigureCLI(progName string, debug bool) {
	backend := logging.NewLogBackend(os.Stderr, progName+": ", 0)
	formatter := logging.MustStringFormatter("%{level:8s} %{module:-20s} | %{message}")
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	level := logging.INFO
	if debug {
		level = logging.DEBUG
	}
	for _, module := range Modules {
		leveled.SetLevel(level, module)
	}
	logging.SetBackend(leveled)
}
