package quadhash

import (
	. "math/bits"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const lanes = 4

// state is the running 128-bit accumulator of a single digest computation. It is passed by
// pointer through the block loop and never shared between calls.
type state [lanes]uint32

// compress folds one scheduled block into s. dex is the block's position in the message and
// bitLen the bit length of the whole (unpadded) message.
func (s *state) compress(w *[wordsPerBlock]uint32, dex, bitLen uint64) {
	/* Forward sweep */
	for g := 0; g < wordsPerBlock; g += 4 {
		s.round(w[g], w[g+1], w[g+2], w[g+3], fwdK0, fwdK1)
	}

	/* Domain separation: identical blocks at different positions, or in messages of different
	lengths, must not leave the state in related places. */
	s[0] ^= uint32(dex) ^ uint32(bitLen)
	s[1] ^= uint32(bitLen>>32) ^ uint32(dex>>32)
	s[2] += RotateLeft32(s[0], 5) + sepK0
	s[3] += RotateLeft32(s[1], 19) + sepK1

	/* Reverse sweep */
	for g := wordsPerBlock - 4; g >= 0; g -= 4 {
		s.round(w[g], w[g+1], w[g+2], w[g+3], revK0, revK1)
	}

	/* Scramble; the order of these four lines matters. */
	s[0] ^= RotateLeft32(s[2], 13)
	s[1] ^= RotateLeft32(s[3], 7)
	s[2] ^= RotateLeft32(s[1], 19)
	s[3] ^= RotateLeft32(s[0], 29)
}

// round chains add, xor, and rotate across the four lanes, then rotates the lanes by one.
func (s *state) round(w0, w1, w2, w3, k0, k1 uint32) {
	a := RotateLeft32((s[0]+w0+k0)^s[3], 7)
	b := RotateLeft32((s[1]+w1+k1)^a, 11)
	c := RotateLeft32((s[2]+w2+k0)^b, 17)
	d := RotateLeft32((s[3]+w3+k1)^c, 23)
	s[0], s[1], s[2], s[3] = d, a, b, c
}
