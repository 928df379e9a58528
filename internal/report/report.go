// Package report renders code tables and compression statistics for
// humans and for scripts.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	huffman "github.com/chronos-tachyon/bytehuffman"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Entry is one row of the code table.
type Entry struct {
	Symbol huffman.Symbol `json:"symbol"`
	Name   string         `json:"name"`
	Count  uint64         `json:"count"`
	Code   string         `json:"code"`
}

// Report is the machine-readable summary of a compression run.
type Report struct {
	InputBytes  uint64  `json:"inputBytes"`
	OutputBytes uint64  `json:"outputBytes"`
	Bits        uint64  `json:"bits"`
	Rate        float64 `json:"rate"`
	Codes       []Entry `json:"codes,omitempty"`
}

// New builds a Report.  cb may be nil, in which case no codes are listed.
func New(stats huffman.Stats, freq *huffman.FrequencyTable, cb *huffman.CodeBook) Report {
	r := Report{
		InputBytes:  stats.InputBytes,
		OutputBytes: stats.OutputBytes,
		Bits:        stats.Bits,
		Rate:        stats.Rate(),
	}
	if cb != nil {
		r.Codes = Entries(freq, cb)
	}
	return r
}

// Entries lists every symbol that has a code, in ascending symbol order.
func Entries(freq *huffman.FrequencyTable, cb *huffman.CodeBook) []Entry {
	out := make([]Entry, 0, cb.Len())
	for _, symbol := range freq.Symbols() {
		hc, ok := cb.Lookup(symbol)
		if !ok {
			continue
		}
		out = append(out, Entry{
			Symbol: symbol,
			Name:   Name(symbol),
			Count:  freq[symbol],
			Code:   hc.BitString(),
		})
	}
	return out
}

// Name returns a printable name for symbol: the character itself when it is
// printable ASCII, an escape for newline, tab and space, and two uppercase
// hex digits otherwise.
func Name(symbol huffman.Symbol) string {
	switch {
	case symbol == '\n':
		return `\n`
	case symbol == '\t':
		return `\t`
	case symbol == ' ':
		return `' '`
	case symbol > ' ' && symbol < 0x7f:
		return string(rune(symbol))
	default:
		return fmt.Sprintf("%02X", byte(symbol))
	}
}

// WriteTable writes the human-readable code table followed by the summary.
func WriteTable(w io.Writer, r Report) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("SYMBOL  COUNT       CODE\n")
	for _, e := range r.Codes {
		fmt.Fprintf(&buf, "%-7s %-11d %s\n", e.Name, e.Count, e.Code)
	}
	buf.WriteString("----------------------------\n")
	fmt.Fprintf(&buf, "INPUT BYTES:      %d\n", r.InputBytes)
	fmt.Fprintf(&buf, "OUTPUT BYTES:     %d\n", r.OutputBytes)
	fmt.Fprintf(&buf, "VALID BITS:       %d\n", r.Bits)
	fmt.Fprintf(&buf, "COMPRESSION RATE: %s%%\n", strconv.FormatFloat(r.Rate, 'f', 2, 64))
	return buf.WriteTo(w)
}

// WriteJSON writes r as a single line of JSON.
func WriteJSON(w io.Writer, r Report) error {
	stream := json.BorrowStream(w)
	defer json.ReturnStream(stream)

	stream.WriteVal(r)
	stream.WriteRaw("\n")
	if stream.Error != nil {
		return stream.Error
	}
	return stream.Flush()
}
