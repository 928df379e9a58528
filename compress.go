package huffman

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the length of the bit-count header that precedes the packed
// bytes in a compressed stream.
const HeaderSize = 8

// Stats describes one Compress or Decompress call.
type Stats struct {
	// InputBytes is the length of the uncompressed data.
	InputBytes uint64 `json:"inputBytes"`

	// OutputBytes is the length of the compressed stream, header included.
	// The table is not counted.
	OutputBytes uint64 `json:"outputBytes"`

	// Bits is the number of valid bits in the packed stream.
	Bits uint64 `json:"bits"`

	// Symbols is the number of distinct symbols in the data.
	Symbols int `json:"symbols"`
}

// Rate returns the space saved as a percentage of the input size.
func (s Stats) Rate() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return (float64(s.InputBytes) - float64(s.OutputBytes)) / float64(s.InputBytes) * 100
}

// Result holds everything produced by compressing one input in memory.
type Result struct {
	Table    FrequencyTable
	Tree     *Tree
	CodeBook CodeBook
	Packed   []byte
	Bits     uint64
}

// Stats summarizes this Result.
func (res *Result) Stats() Stats {
	return Stats{
		InputBytes:  res.Table.Total(),
		OutputBytes: HeaderSize + uint64(len(res.Packed)),
		Bits:        res.Bits,
		Symbols:     res.CodeBook.Len(),
	}
}

// WriteStream writes the compressed stream: the bit count header followed
// by the packed bytes.
func (res *Result) WriteStream(w io.Writer) (int64, error) {
	var header [HeaderSize]byte
	binary.BigEndian.PutUint64(header[:], res.Bits)
	n, err := w.Write(header[:])
	total := int64(n)
	if err != nil {
		return total, err
	}
	n, err = w.Write(res.Packed)
	total += int64(n)
	return total, err
}

// CompressBytes runs the whole pipeline on data: frequency pass, tree
// build, code book, encode.  Empty data yields an empty Result.
func CompressBytes(data []byte) (*Result, error) {
	return compress(data, Count(data))
}

// CompressReader is CompressBytes for everything src produces.  The
// frequency pass runs while src is read, so read errors are tagged
// StageFrequency.
func CompressReader(src io.Reader) (*Result, error) {
	var buf bytes.Buffer
	freq, _, err := CountReader(io.TeeReader(src, &buf))
	if err != nil {
		return nil, stageErr(StageFrequency, err)
	}
	return compress(buf.Bytes(), freq)
}

func compress(data []byte, freq FrequencyTable) (*Result, error) {
	res := &Result{Table: freq}
	res.Tree = NewTree(res.Table)

	var err error
	res.CodeBook, err = NewCodeBook(res.Tree)
	if err != nil {
		return nil, stageErr(StageCodeBook, err)
	}

	res.Packed, res.Bits, err = Encode(data, res.CodeBook)
	if err != nil {
		return nil, stageErr(StageEncode, err)
	}
	return res, nil
}

// DecompressBytes rebuilds the tree from freq and decodes packed.  The
// number of decoded bytes must match freq.Total().
func DecompressBytes(freq FrequencyTable, packed []byte, nbits uint64) ([]byte, error) {
	t := NewTree(freq)
	if t.Empty() && nbits != 0 {
		err := fmt.Errorf("%w: no symbols to decode %d bits with", ErrCorruptTable, nbits)
		return nil, stageErr(StageTree, err)
	}

	out, err := Decode(packed, nbits, t)
	if err != nil {
		return nil, stageErr(StageDecode, err)
	}
	if total := freq.Total(); uint64(len(out)) != total {
		err = fmt.Errorf("%w: decoded %d bytes, table accounts for %d", ErrCorruptTable, len(out), total)
		return nil, stageErr(StageDecode, err)
	}
	return out, nil
}

// Compress reads all of src, writes the compressed stream to out and the
// serialized frequency table to table.
//
// Empty input is not an error: out receives a header recording zero bits
// and table receives an all-zero table.
func Compress(src io.Reader, out io.Writer, table io.Writer) (Stats, error) {
	var stats Stats

	res, err := CompressReader(src)
	if err != nil {
		return stats, err
	}

	stats = res.Stats()
	if _, err := res.WriteStream(out); err != nil {
		return stats, stageErr(StageWrite, err)
	}
	if _, err := res.Table.WriteTo(table); err != nil {
		return stats, stageErr(StageWrite, err)
	}
	return stats, nil
}

// Decompress reads the serialized frequency table from table and the
// compressed stream from in, and writes the original bytes to dst.
//
// Nothing is written to dst unless the whole stream decodes cleanly.
func Decompress(in io.Reader, table io.Reader, dst io.Writer) (Stats, error) {
	var stats Stats

	var freq FrequencyTable
	if _, err := freq.ReadFrom(table); err != nil {
		return stats, stageErr(StageTable, err)
	}
	var extra [1]byte
	switch _, err := io.ReadFull(table, extra[:]); err {
	case io.EOF:
	case nil:
		err = fmt.Errorf("%w: trailing bytes after %d-byte table", ErrCorruptTable, TableSize)
		return stats, stageErr(StageTable, err)
	default:
		return stats, stageErr(StageTable, err)
	}

	var header [HeaderSize]byte
	if _, err := io.ReadFull(in, header[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = fmt.Errorf("%w: missing bit count header", ErrTruncatedStream)
			return stats, stageErr(StageDecode, err)
		}
		return stats, stageErr(StageRead, err)
	}
	nbits := binary.BigEndian.Uint64(header[:])

	packed, err := io.ReadAll(in)
	if err != nil {
		return stats, stageErr(StageRead, err)
	}

	data, err := DecompressBytes(freq, packed, nbits)
	if err != nil {
		return stats, err
	}

	stats = Stats{
		InputBytes:  uint64(len(data)),
		OutputBytes: HeaderSize + uint64(len(packed)),
		Bits:        nbits,
		Symbols:     freq.Distinct(),
	}

	if _, err := dst.Write(data); err != nil {
		return stats, stageErr(StageWrite, err)
	}
	return stats, nil
}
