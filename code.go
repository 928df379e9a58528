package huffman

import (
	"fmt"
	"strconv"
)

// MaxCodeSize is the longest code a CodeBook can hold.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant of
	// the Size low-order bits is the first bit, which is also the order
	// in which the bits are written to the packed stream.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// ParseCode parses a string of '0' and '1' characters into a Code.
func ParseCode(str string) (Code, error) {
	if len(str) > MaxCodeSize {
		return Code{}, fmt.Errorf("huffman: code %q: %w", str, ErrCodeTooLong)
	}
	var hc Code
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			hc = hc.Append(false)
		case '1':
			hc = hc.Append(true)
		default:
			return Code{}, fmt.Errorf("huffman: invalid character %q in code %q", str[i], str)
		}
	}
	return hc, nil
}

// Append returns this Code with one more bit on the end.
func (hc Code) Append(bit bool) Code {
	hc.Bits <<= 1
	if bit {
		hc.Bits |= 1
	}
	hc.Size++
	return hc
}

// Bit returns the i'th bit of this Code, counting from the first.
func (hc Code) Bit(i byte) bool {
	return (hc.Bits>>(hc.Size-1-i))&1 != 0
}

// HasPrefix reports whether prefix is a (not necessarily proper) prefix of
// this Code.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.Bits>>(hc.Size-prefix.Size) == prefix.Bits
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return strconv.Quote(hc.BitString())
}

// BitString returns the bits of this Code as a string of '0' and '1'.
func (hc Code) BitString() string {
	if hc.Size == 0 {
		return ""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return fmt.Sprintf(format, hc.Bits)
}

var _ fmt.Stringer = Code{}
