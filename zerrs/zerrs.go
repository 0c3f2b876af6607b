// Package zerrs collects the sentinel errors shared by every zencoder
// package, plus small wrapping helpers built on github.com/pkg/errors so
// that a caller can still errors.Is against a sentinel after a boundary
// has attached call-site context.
package zerrs

import "github.com/pkg/errors"

var (
	// ErrCorpusEmpty is returned when a corpus directory yields no Han
	// code points at all, so no WordGraph can be built.
	ErrCorpusEmpty = errors.New("zencoder: corpus contains no Han code points")

	// ErrVocabularyTooSmall is returned when the graph's vocabulary is too
	// small to fill K+1 dictionaries of at least two leaves each.
	ErrVocabularyTooSmall = errors.New("zencoder: vocabulary too small for requested tree count")

	// ErrDecodeUnknownWord is returned when a decoded character is not
	// present, as leaf or tail code, in any Huffman tree of a Partitioner.
	ErrDecodeUnknownWord = errors.New("zencoder: unrecognized word in encoded sequence")

	// ErrBitstreamUnderflow guards Pop/Front on an empty Stream. The
	// encode/decode paths never trigger it in normal operation; it exists
	// to catch programming errors, not user input.
	ErrBitstreamUnderflow = errors.New("zencoder: bit stream underflow")

	// ErrStoreCorrupt is returned when a persisted Partitioner cannot be
	// read back: a wrong magic, a truncated header or body, a checksum
	// that does not match the body, or a body that does not gob-decode.
	ErrStoreCorrupt = errors.New("zencoder: partitioner store checksum mismatch")

	// ErrStoreVersion is returned when a persisted Partitioner's header
	// declares a format version this build does not understand.
	ErrStoreVersion = errors.New("zencoder: unsupported partitioner store version")

	// ErrCipherShortInput is returned when a decode-cipher payload is
	// too short to contain the leading IV, when the ciphertext after the
	// IV is not a whole number of AES blocks, or when it decrypts to an
	// empty plaintext.
	ErrCipherShortInput = errors.New("zencoder: ciphertext shorter than IV")
)

// Wrap attaches call-site context to a sentinel or other error while
// preserving it for errors.Is/errors.As.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf is Wrap with printf-style formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
