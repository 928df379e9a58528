package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	compressedSuffix = ".huffman"
	tableSuffix      = ".table"
	decodedSuffix    = ".decoded"
)

// Config holds the settings of one invocation.  Always start from
// DefaultConfig().
type Config struct {
	// Decompress selects decompression instead of compression.
	Decompress bool
	// Input is the file to read.
	Input string
	// Output is the file to write.  Derived from Input when empty.
	Output string
	// Table is the frequency table file.  Derived from Input or Output
	// when empty.
	Table string
	// PrintTable prints the code table and statistics after compressing.
	PrintTable bool
	// JSON prints the statistics as JSON instead.
	JSON bool
	// Quiet suppresses the summary log line.
	Quiet bool
}

// DefaultConfig returns the default settings.
func DefaultConfig() *Config {
	return &Config{}
}

// parseFlags fills cfg from the command line.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("huffman", flag.ContinueOnError)
	fs.BoolVar(&cfg.Decompress, "d", cfg.Decompress, "decompress instead of compress")
	fs.StringVar(&cfg.Output, "o", cfg.Output, "output file")
	fs.StringVar(&cfg.Table, "table", cfg.Table, "frequency table file")
	fs.BoolVar(&cfg.PrintTable, "print", cfg.PrintTable, "print the code table")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "print statistics as JSON")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "do not log a summary")
	if err := fs.Parse(args); err != nil {
		return err
	}
	switch fs.NArg() {
	case 0:
		return fmt.Errorf("missing input file")
	case 1:
		cfg.Input = fs.Arg(0)
	default:
		return fmt.Errorf("too many arguments: %q", fs.Args())
	}
	return cfg.derivePaths()
}

// derivePaths fills in Output and Table.
//
// Compressing "X" writes "X.huffman" and "X.huffman.table".  Decompressing
// "X.huffman" reads "X.huffman.table" and writes "X.decoded/X".
func (cfg *Config) derivePaths() error {
	if !cfg.Decompress {
		if cfg.Output == "" {
			cfg.Output = cfg.Input + compressedSuffix
		}
		if cfg.Table == "" {
			cfg.Table = cfg.Output + tableSuffix
		}
		return nil
	}

	if cfg.Table == "" {
		cfg.Table = cfg.Input + tableSuffix
	}
	if cfg.Output == "" {
		if !strings.HasSuffix(cfg.Input, compressedSuffix) {
			return fmt.Errorf("%s: not a %s file; use -o to name the output", cfg.Input, compressedSuffix)
		}
		stem := strings.TrimSuffix(cfg.Input, compressedSuffix)
		cfg.Output = filepath.Join(stem+decodedSuffix, filepath.Base(stem))
	}
	return nil
}
