package huffman

// Symbol represents one byte of input.  Every byte value is a legal symbol.
type Symbol byte

// NumSymbols is the size of the alphabet.
const NumSymbols = 256
