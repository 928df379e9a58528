package huffman

import (
	"bufio"
	"bytes"
	"encoding"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

// TableSize is the length of a serialized FrequencyTable.
const TableSize = len(tableMagic) + NumSymbols*8

const tableMagic = "HFT1"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FrequencyTable holds the number of occurrences of each Symbol.
type FrequencyTable [NumSymbols]uint64

// Count builds the FrequencyTable for data.
func Count(data []byte) FrequencyTable {
	var freq FrequencyTable
	for _, b := range data {
		freq[b]++
	}
	return freq
}

// CountReader builds the FrequencyTable for everything r produces, returning
// the number of bytes read.
func CountReader(r io.Reader) (FrequencyTable, int64, error) {
	var freq FrequencyTable
	var total int64
	br := bufio.NewReader(r)
	buf := make([]byte, 32*1024)
	for {
		n, err := br.Read(buf)
		for _, b := range buf[:n] {
			freq[b]++
		}
		total += int64(n)
		if err == io.EOF {
			return freq, total, nil
		}
		if err != nil {
			return freq, total, err
		}
	}
}

// Total returns the sum of all counts, which is the input length.
func (freq *FrequencyTable) Total() uint64 {
	var sum uint64
	for _, count := range freq {
		sum += count
	}
	return sum
}

// Distinct returns the number of symbols with a non-zero count.
func (freq *FrequencyTable) Distinct() int {
	var n int
	for _, count := range freq {
		if count != 0 {
			n++
		}
	}
	return n
}

// Symbols returns the symbols with a non-zero count, in ascending order.
func (freq *FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, 0, freq.Distinct())
	for symbol, count := range freq {
		if count != 0 {
			out = append(out, Symbol(symbol))
		}
	}
	return out
}

// MarshalBinary returns the serialized form of this table: a magic number
// followed by one big-endian uint64 count per symbol.
func (freq FrequencyTable) MarshalBinary() ([]byte, error) {
	out := make([]byte, TableSize)
	copy(out, tableMagic)
	for symbol, count := range freq {
		binary.BigEndian.PutUint64(out[len(tableMagic)+symbol*8:], count)
	}
	return out, nil
}

// UnmarshalBinary restores a table written by MarshalBinary.
func (freq *FrequencyTable) UnmarshalBinary(data []byte) error {
	if len(data) != TableSize {
		return fmt.Errorf("%w: got %d bytes, expected %d", ErrCorruptTable, len(data), TableSize)
	}
	if string(data[:len(tableMagic)]) != tableMagic {
		return fmt.Errorf("%w: bad magic %q", ErrCorruptTable, data[:len(tableMagic)])
	}

	var tmp FrequencyTable
	var sum uint64
	for symbol := range tmp {
		count := binary.BigEndian.Uint64(data[len(tableMagic)+symbol*8:])
		if sum+count < sum {
			return fmt.Errorf("%w: total count overflows", ErrCorruptTable)
		}
		sum += count
		tmp[symbol] = count
	}
	*freq = tmp
	return nil
}

// WriteTo writes the serialized form of this table to w.
func (freq *FrequencyTable) WriteTo(w io.Writer) (int64, error) {
	raw, _ := freq.MarshalBinary()
	n, err := w.Write(raw)
	return int64(n), err
}

// ReadFrom reads exactly TableSize bytes from r and decodes them.  A short
// read is reported as ErrCorruptTable; other read errors are returned as-is.
func (freq *FrequencyTable) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, TableSize)
	n, err := io.ReadFull(r, buf)
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		return int64(n), fmt.Errorf("%w: got %d bytes, expected %d", ErrCorruptTable, n, TableSize)
	default:
		return int64(n), err
	}
	return int64(n), freq.UnmarshalBinary(buf)
}

// MarshalJSON encodes the non-zero counts as an object keyed by symbol.
func (freq FrequencyTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	stream := json.BorrowStream(&buf)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()
	first := true
	for symbol, count := range freq {
		if count == 0 {
			continue
		}
		if !first {
			stream.WriteMore()
		}
		first = false
		stream.WriteObjectField(strconv.Itoa(symbol))
		stream.WriteUint64(count)
	}
	stream.WriteObjectEnd()
	if err := stream.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the output of MarshalJSON.
func (freq *FrequencyTable) UnmarshalJSON(data []byte) error {
	var raw map[string]uint64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var tmp FrequencyTable
	var sum uint64
	for key, count := range raw {
		symbol, err := strconv.ParseUint(key, 10, 8)
		if err != nil || strconv.FormatUint(symbol, 10) != key {
			return fmt.Errorf("%w: invalid symbol %q", ErrCorruptTable, key)
		}
		if sum+count < sum {
			return fmt.Errorf("%w: total count overflows", ErrCorruptTable)
		}
		sum += count
		tmp[symbol] = count
	}
	*freq = tmp
	return nil
}

var (
	_ encoding.BinaryMarshaler   = FrequencyTable{}
	_ encoding.BinaryUnmarshaler = (*FrequencyTable)(nil)
	_ io.WriterTo                = (*FrequencyTable)(nil)
	_ io.ReaderFrom              = (*FrequencyTable)(nil)
)
