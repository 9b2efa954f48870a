package quadhash

import (
	. "math/bits"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// finalize turns the state left by the last block into a Digest. The bit length was already
// folded in by every compress call; it is folded in once more here, over the same lanes, and
// that repetition is part of the digest's definition.
func (s *state) finalize(bitLen uint64) Digest {
	s[0] ^= uint32(bitLen)
	s[1] ^= uint32(bitLen >> 32)
	s[2] += finK0
	s[3] += finK1

	var x uint32
	for i := range s {
		s[i] = avalanche(s[i])
		x ^= s[i]
	}

	var d Digest
	for i := range d {
		d[i] = avalanche(s[i] ^ RotateLeft32(x, spread[i]))
	}
	return d
}

// avalanche is MurmurHash3's fmix32.
func avalanche(h uint32) uint32 {
	h ^= h >> 16
	h *= mixM1
	h ^= h >> 13
	h *= mixM2
	h ^= h >> 16
	return h
}
