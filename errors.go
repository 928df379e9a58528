package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is reported for a zero-length source.  Compress
	// recovers from it locally and never returns it.
	ErrEmptyInput = errors.New("huffman: empty input")

	// ErrUnmappedSymbol indicates that Encode saw a byte with no entry in
	// the CodeBook, i.e. the CodeBook was not derived from this data.
	ErrUnmappedSymbol = errors.New("huffman: symbol has no code")

	// ErrTruncatedStream indicates that the packed bits ran out, or
	// stopped in the middle of a code.
	ErrTruncatedStream = errors.New("huffman: truncated stream")

	// ErrTrailingData indicates packed bytes beyond the recorded bit count.
	ErrTrailingData = errors.New("huffman: trailing data after stream")

	// ErrCorruptTable indicates a frequency table that is malformed or
	// inconsistent with the stream it is supposed to describe.
	ErrCorruptTable = errors.New("huffman: corrupt frequency table")

	// ErrCodeTooLong indicates a tree deeper than MaxCodeSize.
	ErrCodeTooLong = errors.New("huffman: code too long")
)

// Stage identifies a step of the compression or decompression pipeline.
type Stage byte

const (
	// StageRead covers reading the compressed stream or the input file.
	StageRead Stage = iota

	// StageFrequency covers reading and counting the uncompressed input.
	StageFrequency

	// StageTree covers building a HuffmanTree from a FrequencyTable.
	StageTree

	// StageCodeBook covers deriving codes from the tree.
	StageCodeBook

	// StageEncode covers packing the input into bits.
	StageEncode

	// StageTable covers loading the serialized FrequencyTable.
	StageTable

	// StageDecode covers unpacking bits back into symbols.
	StageDecode

	// StageWrite covers every write to an output.
	StageWrite
)

var stageNames = [...]string{
	StageRead:      "read",
	StageFrequency: "frequency pass",
	StageTree:      "tree build",
	StageCodeBook:  "code book",
	StageEncode:    "encode",
	StageTable:     "table",
	StageDecode:    "decode",
	StageWrite:     "write",
}

// String returns the human-readable name of this Stage.
func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", byte(s))
}

// StageError records which pipeline stage failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage.String() + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
