// Package huffman implements static Huffman coding of byte streams.
//
// Compression makes one pass over the input to build a FrequencyTable,
// builds a Tree from it, derives a CodeBook from the Tree, and packs the
// codes of the input bytes into a bitstream, most significant bit first.
// The table and the number of valid bits are stored alongside the packed
// bytes; the decoder rebuilds the identical Tree from the table and walks
// it bit by bit.
//
//	res, err := huffman.CompressBytes(data)
//	...
//	orig, err := huffman.DecompressBytes(res.Table, res.Packed, res.Bits)
//
// References:
//
//	<https://en.wikipedia.org/wiki/Huffman_coding>
package huffman
