package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	huffman "github.com/chronos-tachyon/bytehuffman"
)

type testLogger struct {
	lines []string
}

func (l *testLogger) Printf(format string, v ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func TestParseFlags(t *testing.T) {
	type testRow struct {
		name   string
		args   []string
		output string
		table  string
		err    bool
	}

	testData := [...]testRow{
		{name: "compress", args: []string{"notes.txt"}, output: "notes.txt.huffman", table: "notes.txt.huffman.table"},
		{name: "compress -o", args: []string{"-o", "x.bin", "notes.txt"}, output: "x.bin", table: "x.bin.table"},
		{name: "decompress", args: []string{"-d", "dir/notes.txt.huffman"}, output: filepath.Join("dir/notes.txt.decoded", "notes.txt"), table: "dir/notes.txt.huffman.table"},
		{name: "decompress -table", args: []string{"-d", "-table", "t", "a.huffman"}, output: filepath.Join("a.decoded", "a"), table: "t"},
		{name: "decompress wrong suffix", args: []string{"-d", "a.zip"}, err: true},
		{name: "missing input", args: nil, err: true},
		{name: "too many", args: []string{"a", "b"}, err: true},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := parseFlags(cfg, row.args)
			if row.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, row.output, cfg.Output)
			require.Equal(t, row.table, cfg.Table)
		})
	}
}

func TestRunRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.txt")
	data := []byte(strings.Repeat("she sells sea shells by the sea shore\n", 50))
	require.NoError(t, os.WriteFile(input, data, 0o644))

	var logger testLogger
	var stdout strings.Builder

	cfg := DefaultConfig()
	require.NoError(t, parseFlags(cfg, []string{"-print", input}))
	require.NoError(t, run(cfg, &stdout, &logger))
	require.Contains(t, stdout.String(), "COMPRESSION RATE:")
	require.Contains(t, stdout.String(), `\n`)
	require.Len(t, logger.lines, 1)

	cfg = DefaultConfig()
	require.NoError(t, parseFlags(cfg, []string{"-d", input + ".huffman"}))
	require.NoError(t, run(cfg, &stdout, &logger))

	decoded, err := os.ReadFile(filepath.Join(dir, "notes.txt.decoded", "notes.txt"))
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func TestRunEmptyFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(input, nil, 0o644))

	var logger testLogger
	var stdout strings.Builder

	cfg := DefaultConfig()
	require.NoError(t, parseFlags(cfg, []string{"-q", "-json", input}))
	require.NoError(t, run(cfg, &stdout, &logger))
	require.Len(t, logger.lines, 1)
	require.Contains(t, logger.lines[0], huffman.ErrEmptyInput.Error())
	require.Contains(t, stdout.String(), `"inputBytes":0`)

	cfg = DefaultConfig()
	require.NoError(t, parseFlags(cfg, []string{"-q", "-d", input + ".huffman"}))
	require.NoError(t, run(cfg, &stdout, &logger))

	decoded, err := os.ReadFile(filepath.Join(dir, "empty.decoded", "empty"))
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestRunMissingTable(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "a.huffman")
	require.NoError(t, os.WriteFile(input, make([]byte, huffman.HeaderSize), 0o644))

	cfg := DefaultConfig()
	require.NoError(t, parseFlags(cfg, []string{"-d", input}))
	err := run(cfg, &strings.Builder{}, &testLogger{})
	require.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)
	requireStage(t, err, huffman.StageTable)
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	require.NoError(t, parseFlags(cfg, []string{filepath.Join(dir, "nope")}))
	err := run(cfg, &strings.Builder{}, &testLogger{})
	require.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)
	requireStage(t, err, huffman.StageRead)
}

func TestRunWriteFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(input, []byte("abracadabra"), 0o644))

	// The output's parent is a regular file, so it cannot be created.
	output := filepath.Join(input, "out.huffman")

	cfg := DefaultConfig()
	require.NoError(t, parseFlags(cfg, []string{"-q", "-o", output, input}))
	err := run(cfg, &strings.Builder{}, &testLogger{})
	require.Error(t, err)
	requireStage(t, err, huffman.StageWrite)
}

func requireStage(t *testing.T, err error, stage huffman.Stage) {
	t.Helper()
	var stageErr *huffman.StageError
	require.True(t, errors.As(err, &stageErr), "got %v", err)
	require.Equal(t, stage, stageErr.Stage)
}

func TestRunCorruptStream(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "abc")
	require.NoError(t, os.WriteFile(input, []byte("abracadabra"), 0o644))

	cfg := DefaultConfig()
	require.NoError(t, parseFlags(cfg, []string{"-q", input}))
	require.NoError(t, run(cfg, &strings.Builder{}, &testLogger{}))

	compressed := input + ".huffman"
	raw, err := os.ReadFile(compressed)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(compressed, raw[:len(raw)-1], 0o644))

	cfg = DefaultConfig()
	require.NoError(t, parseFlags(cfg, []string{"-q", "-d", compressed}))
	err = run(cfg, &strings.Builder{}, &testLogger{})
	require.ErrorIs(t, err, huffman.ErrTruncatedStream)
	require.False(t, errors.Is(err, fs.ErrNotExist))
	requireStage(t, err, huffman.StageDecode)

	_, err = os.Stat(filepath.Join(dir, "abc.decoded"))
	require.True(t, errors.Is(err, fs.ErrNotExist))
}
