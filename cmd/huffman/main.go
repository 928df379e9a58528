// Command huffman compresses and decompresses files with static Huffman
// coding.
//
//	huffman [-print|-json] FILE          writes FILE.huffman and FILE.huffman.table
//	huffman -d FILE.huffman              writes FILE.decoded/FILE
package main

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"

	huffman "github.com/chronos-tachyon/bytehuffman"
	"github.com/chronos-tachyon/bytehuffman/internal/report"
)

// Logger receives progress and error messages.
type Logger interface {
	Printf(format string, v ...any)
}

func main() {
	logger := log.New(os.Stderr, "huffman: ", 0)

	cfg := DefaultConfig()
	if err := parseFlags(cfg, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		logger.Printf("%v", err)
		os.Exit(2)
	}

	if err := run(cfg, os.Stdout, logger); err != nil {
		logger.Printf("%v", err)
		os.Exit(1)
	}
}

func run(cfg *Config, stdout io.Writer, logger Logger) error {
	if cfg.Decompress {
		return decompressFile(cfg, logger)
	}
	return compressFile(cfg, stdout, logger)
}

func compressFile(cfg *Config, stdout io.Writer, logger Logger) error {
	in, err := os.Open(cfg.Input)
	if err != nil {
		return &huffman.StageError{Stage: huffman.StageRead, Err: err}
	}
	defer in.Close()

	res, err := huffman.CompressReader(in)
	if err != nil {
		return err
	}
	if res.Table.Total() == 0 {
		logger.Printf("%s: %v, writing an empty stream", cfg.Input, huffman.ErrEmptyInput)
	}

	stats := res.Stats()
	var out bytes.Buffer
	if _, err := res.WriteStream(&out); err != nil {
		return &huffman.StageError{Stage: huffman.StageWrite, Err: err}
	}
	if err := writeFile(cfg.Output, out.Bytes()); err != nil {
		return err
	}
	raw, _ := res.Table.MarshalBinary()
	if err := writeFile(cfg.Table, raw); err != nil {
		return err
	}

	r := report.New(stats, &res.Table, &res.CodeBook)
	switch {
	case cfg.JSON:
		if err := report.WriteJSON(stdout, r); err != nil {
			return err
		}
	case cfg.PrintTable:
		if _, err := report.WriteTable(stdout, r); err != nil {
			return err
		}
	}

	if !cfg.Quiet {
		logger.Printf("%s → %s (%d → %d bytes, %.2f%% saved), table %s",
			cfg.Input, cfg.Output, stats.InputBytes, stats.OutputBytes, stats.Rate(), cfg.Table)
	}
	return nil
}

func decompressFile(cfg *Config, logger Logger) error {
	in, err := os.Open(cfg.Input)
	if err != nil {
		return &huffman.StageError{Stage: huffman.StageRead, Err: err}
	}
	defer in.Close()

	table, err := os.Open(cfg.Table)
	if err != nil {
		return &huffman.StageError{Stage: huffman.StageTable, Err: err}
	}
	defer table.Close()

	var out bytes.Buffer
	stats, err := huffman.Decompress(in, table, &out)
	if err != nil {
		return err
	}
	if err := writeFile(cfg.Output, out.Bytes()); err != nil {
		return err
	}

	if !cfg.Quiet {
		logger.Printf("%s → %s (%d bytes)", cfg.Input, cfg.Output, stats.InputBytes)
	}
	return nil
}

// writeFile creates any missing parent directories, then writes data to
// path.  Failures are tagged StageWrite.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &huffman.StageError{Stage: huffman.StageWrite, Err: err}
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &huffman.StageError{Stage: huffman.StageWrite, Err: err}
	}
	return nil
}
