package huffman

// bytesForBits returns the number of bytes needed to hold n bits.
func bytesForBits(n uint64) uint64 {
	out := n / 8
	if n%8 != 0 {
		out++
	}
	return out
}

// addSaturating returns a+b, clamped to the maximum uint64.
func addSaturating(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		sum = ^uint64(0)
	}
	return sum
}
