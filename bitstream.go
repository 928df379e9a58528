package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// Encode replaces each byte of data with its code from cb and packs the
// resulting bits, most significant bit first, into bytes.  The last byte is
// padded with zero bits.  It returns the packed bytes and the number of valid
// bits in them.
//
// Empty data encodes to no bytes and zero bits.  A byte with no code in cb
// is reported as ErrUnmappedSymbol.
func Encode(data []byte, cb CodeBook) ([]byte, uint64, error) {
	if len(data) == 0 {
		return nil, 0, nil
	}

	var buf bytes.Buffer
	if cb.maxSize != 0 {
		buf.Grow(len(data) * int(cb.minSize) / 8)
	}
	w := bitio.NewWriter(&buf)

	var nbits uint64
	for offset, b := range data {
		hc := cb.codes[b]
		if hc.Size == 0 {
			return nil, 0, fmt.Errorf("%w: symbol %d at offset %d", ErrUnmappedSymbol, b, offset)
		}
		if err := w.WriteBits(hc.Bits, hc.Size); err != nil {
			return nil, 0, err
		}
		nbits += uint64(hc.Size)
	}
	if err := w.Close(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), nbits, nil
}

// Decode reverses Encode.  It walks t from the root one bit at a time for
// exactly nbits bits, emitting a symbol and returning to the root at each
// leaf.
//
// Decode fails with ErrTruncatedStream if packed holds fewer than nbits bits
// or if the last bit does not complete a code, with ErrTrailingData if
// packed holds whole bytes past nbits, and with ErrCorruptTable if the bits
// do not fit the shape of t.  No partial output is returned on failure.
func Decode(packed []byte, nbits uint64, t *Tree) ([]byte, error) {
	need := bytesForBits(nbits)
	if uint64(len(packed)) < need {
		return nil, fmt.Errorf("%w: %d bits need %d bytes, got %d", ErrTruncatedStream, nbits, need, len(packed))
	}
	if uint64(len(packed)) > need {
		return nil, fmt.Errorf("%w: %d bits need %d bytes, got %d", ErrTrailingData, nbits, need, len(packed))
	}
	if nbits == 0 {
		return []byte{}, nil
	}
	if t.Empty() {
		return nil, fmt.Errorf("%w: %d bits of data for an empty table", ErrCorruptTable, nbits)
	}

	r := bitio.NewReader(bytes.NewReader(packed))
	root := &t.nodes[t.root]
	if root.isLeaf() {
		return decodeSingle(r, nbits, root.symbol)
	}

	capacity := t.Weight()
	if capacity > nbits {
		capacity = nbits
	}
	out := make([]byte, 0, capacity)
	index := t.root
	for i := uint64(0); i < nbits; i++ {
		bit, err := r.ReadBool()
		if err != nil {
			return nil, readErr(err, i)
		}

		n := &t.nodes[index]
		if bit {
			index = n.right
		} else {
			index = n.left
		}

		if next := &t.nodes[index]; next.isLeaf() {
			out = append(out, byte(next.symbol))
			index = t.root
		}
	}

	if index != t.root {
		return nil, fmt.Errorf("%w: stream ends inside a code after %d symbols", ErrTruncatedStream, len(out))
	}
	return out, nil
}

// decodeSingle handles the tree with a lone leaf, whose only code is "0".
func decodeSingle(r *bitio.Reader, nbits uint64, symbol Symbol) ([]byte, error) {
	out := make([]byte, nbits)
	for i := range out {
		bit, err := r.ReadBool()
		if err != nil {
			return nil, readErr(err, uint64(i))
		}
		if bit {
			return nil, fmt.Errorf("%w: bit %d is 1, but the table holds only symbol %d", ErrCorruptTable, i, symbol)
		}
		out[i] = byte(symbol)
	}
	return out, nil
}

func readErr(err error, bit uint64) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: out of data at bit %d", ErrTruncatedStream, bit)
	}
	return err
}
