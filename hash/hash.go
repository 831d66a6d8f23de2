// Package hash implements the salted modular hash used for deterministic dataset splits
package hash

// Hash mixes n with salt s and reduces the result into the range 0 to max-1.
func Hash(n uint32, s uint32, max uint32) uint32 {
	var m = n - s

	// xor shift with prime shift amounts
	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	m += s

	// multiply shift reduction instead of modulo
	// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
	return uint32((uint64(m) * uint64(max)) >> 32)
}

// Bucket places n into one of 100 buckets under salt s.
func Bucket(n, s uint32) uint32 {
	return Hash(n, s, 100)
}

// Holdout reports whether n falls into the held out percent of the buckets.
func Holdout(n, s, percent uint32) bool {
	return Bucket(n, s) < percent
}
