package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// CodeBook maps each Symbol present in a Tree to its Code.
type CodeBook struct {
	codes   [NumSymbols]Code
	count   int
	minSize byte
	maxSize byte
}

// NewCodeBook derives the CodeBook for t by walking it depth-first,
// appending a 0 bit for each left edge and a 1 bit for each right edge.
//
// An empty tree yields an empty CodeBook.  A tree with a single leaf yields
// the one-bit code "0" for that leaf, so that every present symbol has a
// non-empty code.
func NewCodeBook(t *Tree) (CodeBook, error) {
	var cb CodeBook
	var err error
	t.walk(func(index int32, depth int, path Code) {
		n := &t.nodes[index]
		if !n.isLeaf() || err != nil {
			return
		}
		if depth > MaxCodeSize {
			err = fmt.Errorf("%w: symbol %d needs %d bits, max %d", ErrCodeTooLong, n.symbol, depth, MaxCodeSize)
			return
		}
		if depth == 0 {
			path = MakeCode(1, 0)
		}
		cb.add(n.symbol, path)
	})
	if err != nil {
		return CodeBook{}, err
	}
	return cb, nil
}

func (cb *CodeBook) add(symbol Symbol, hc Code) {
	assert.Assertf(hc.Size != 0, "empty code for symbol %d", symbol)
	assert.Assertf(cb.codes[symbol].Size == 0, "duplicate code for symbol %d", symbol)

	cb.codes[symbol] = hc
	if cb.count == 0 {
		cb.minSize = hc.Size
		cb.maxSize = hc.Size
	} else if cb.minSize > hc.Size {
		cb.minSize = hc.Size
	} else if cb.maxSize < hc.Size {
		cb.maxSize = hc.Size
	}
	cb.count++
}

// Lookup returns the Code for symbol, or false if symbol has no code.
func (cb *CodeBook) Lookup(symbol Symbol) (Code, bool) {
	hc := cb.codes[symbol]
	return hc, hc.Size != 0
}

// Len returns the number of symbols with a code.
func (cb *CodeBook) Len() int {
	return cb.count
}

// MinSize is the bit length of the shortest code.
func (cb *CodeBook) MinSize() byte {
	return cb.minSize
}

// MaxSize is the bit length of the longest code.
func (cb *CodeBook) MaxSize() byte {
	return cb.maxSize
}

// SizeBySymbol returns the bit length of each Symbol's code, 0 for symbols
// without one.
func (cb *CodeBook) SizeBySymbol() []byte {
	out := make([]byte, NumSymbols)
	for symbol, hc := range cb.codes {
		out[symbol] = hc.Size
	}
	return out
}

// EncodedBits returns the number of bits Encode will produce for input with
// the given frequencies.  Symbols without a code are not counted.
func (cb *CodeBook) EncodedBits(freq *FrequencyTable) uint64 {
	var total uint64
	for symbol, hc := range cb.codes {
		total = addSaturating(total, freq[symbol]*uint64(hc.Size))
	}
	return total
}

// Dump writes a programmer-readable debugging dump of the CodeBook to the
// given writer.
func (cb *CodeBook) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeBook{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", cb.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", cb.maxSize)
	for symbol, hc := range cb.codes {
		if hc.Size != 0 {
			fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
