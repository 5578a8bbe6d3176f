package core

import "math/bits"

// Spread mixes a client hash before it is used to pick a lane (vertex-
// store slots are probed from the unmixed hash), so that low-entropy client hashes (small sequential
// integers, pointer-derived values with clustered low bits) still spread
// evenly across lanes. It rotates by half the word width and XOR-shifts,
// mirroring the bit-spreader the original engine applies once per value,
// never re-derived once a vertex is placed.
func Spread(h uint64) uint64 {
	h = bits.RotateLeft64(h, 32)
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

// LaneOf returns the lane index a value with the given client hash is
// homed in, for a lane table of size n. n must be positive.
func LaneOf(clientHash uint64, n int) int {
	return int(Spread(clientHash) % uint64(n))
}
