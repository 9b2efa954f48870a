package quadhash

import (
	. "math/bits"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The word schedule is two pure, per-block transforms. Neither one sees the running state, so
// blocks could be scheduled in any order; only compression is sequential.

// diffuse makes every output word depend on at least three input words before mix runs. The
// multiplier 2i+1 is odd, so each step is a bijection in its third operand.
func diffuse(w *[wordsPerBlock]uint32) (out [wordsPerBlock]uint32) {
	for i := range out {
		x := w[i] ^ RotateLeft32(w[(i+1)&15], 7)
		x += (w[(i+9)&15] ^ scheduleK) * uint32(2*i+1)
		out[i] = RotateLeft32(x, (5*i+3)&31)
	}
	return out
}

// mix applies two double rounds of the ChaCha quarter-round network, columns then diagonals.
func mix(w *[wordsPerBlock]uint32) [wordsPerBlock]uint32 {
	s := *w
	for i := 0; i < 2; i++ {
		s[0], s[4], s[8], s[12] = quarterRound(s[0], s[4], s[8], s[12])
		s[1], s[5], s[9], s[13] = quarterRound(s[1], s[5], s[9], s[13])
		s[2], s[6], s[10], s[14] = quarterRound(s[2], s[6], s[10], s[14])
		s[3], s[7], s[11], s[15] = quarterRound(s[3], s[7], s[11], s[15])

		s[0], s[5], s[10], s[15] = quarterRound(s[0], s[5], s[10], s[15])
		s[1], s[6], s[11], s[12] = quarterRound(s[1], s[6], s[11], s[12])
		s[2], s[7], s[8], s[13] = quarterRound(s[2], s[7], s[8], s[13])
		s[3], s[4], s[9], s[14] = quarterRound(s[3], s[4], s[9], s[14])
	}
	return s
}

func quarterRound(a, b, c, d uint32) (uint32, uint32, uint32, uint32) {
	a += b
	d = RotateLeft32(d^a, 16)
	c += d
	b = RotateLeft32(b^c, 12)
	a += b
	d = RotateLeft32(d^a, 8)
	c += d
	b = RotateLeft32(b^c, 7)
	return a, b, c, d
}
