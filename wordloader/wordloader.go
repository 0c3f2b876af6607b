// Package wordloader implements the lazy, ordered iterator over Han
// code points that feeds corpus ingestion: file order, then line order
// within a file, then code-point order within a line. Non-Han code
// points are skipped silently, and the last Han character of one file is
// paired with the first of the next by the caller, since the loader
// never resets state at a file boundary.
package wordloader

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/wjx/zencoder/zerrs"
	"github.com/wjx/zencoder/zlog"
)

var log = zlog.Get("zencoder/wordloader")

// WalkCorpus returns every regular file under dir, in a stable (lexical)
// order, suitable for passing to Open. Traversal order is otherwise
// filesystem-dependent per spec.md §6; sorting the result makes a single
// run reproducible regardless of the directory's on-disk entry order.
func WalkCorpus(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, zerrs.Wrapf(err, "walking corpus directory %q", dir)
	}
	sort.Strings(paths)
	return paths, nil
}

// Loader yields Han code points from an ordered list of UTF-8 files, one
// at a time, opening files lazily and closing each before advancing to
// the next.
type Loader struct {
	paths   []string
	fileIdx int

	file    *os.File
	scanner *bufio.Scanner

	pending []rune
}

// Open prepares a Loader over paths. It does not open any file until the
// first call to Next, so an empty paths slice is valid (Next then
// immediately reports io.EOF).
func Open(paths []string) *Loader {
	cp := make([]string, len(paths))
	copy(cp, paths)
	return &Loader{paths: cp}
}

// Close releases the currently open file, if any. Safe to call multiple
// times and safe to call after Next has returned io.EOF.
func (l *Loader) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.scanner = nil
	return err
}

// openNextFile advances to the next file in the list, closing whatever
// was previously open. It returns io.EOF once every path is exhausted.
func (l *Loader) openNextFile() error {
	if err := l.Close(); err != nil {
		return zerrs.Wrap(err, "closing corpus file")
	}
	if l.fileIdx >= len(l.paths) {
		return io.EOF
	}

	path := l.paths[l.fileIdx]
	l.fileIdx++

	f, err := os.Open(path)
	if err != nil {
		return zerrs.Wrapf(err, "opening corpus file %q", path)
	}
	log.Debug("reading %s", path)
	l.file = f
	l.scanner = bufio.NewScanner(f)
	return nil
}

// fillPending reads lines until it finds one with at least one Han code
// point, or the entire file list is exhausted. Each line is NFC-normalized
// before scanning so that combining-sequence variants of an ideograph
// collapse to a single code point ahead of the Han filter.
func (l *Loader) fillPending() error {
	for len(l.pending) == 0 {
		if l.scanner == nil {
			if err := l.openNextFile(); err != nil {
				return err
			}
			continue
		}

		if !l.scanner.Scan() {
			if err := l.scanner.Err(); err != nil {
				return zerrs.Wrap(err, "reading corpus file")
			}
			// End of this file; move to the next one.
			if err := l.openNextFile(); err != nil {
				return err
			}
			continue
		}

		line := norm.NFC.String(l.scanner.Text())
		for _, r := range line {
			if unicode.Is(unicode.Han, r) {
				l.pending = append(l.pending, r)
			}
		}
	}
	return nil
}

// Next returns the next Han code point, as a single-rune string (a
// "word" per spec.md's glossary), or io.EOF once every file is
// exhausted.
func (l *Loader) Next() (string, error) {
	if err := l.fillPending(); err != nil {
		return "", err
	}
	r := l.pending[0]
	l.pending = l.pending[1:]
	return string(r), nil
}
