package quadhash

// N.B.: QuadHash is not a cryptographic hash function.
// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The following collection of constants and functions backend the reference Go implementation of
// the QuadHash digest function: padding, segmentation, a two-stage word schedule, a 4-lane block
// compressor, and an avalanche finalizer. Each call to sum owns every buffer and all state it
// touches, so any number of calls may run concurrently.

const (
	bytesPerBlock = 64
	wordsPerBlock = bytesPerBlock / 4
	lenBytes      = 8 /* Trailing big-endian bit length. */
	marker        = 0x80

	scheduleK = 0x9e3779b9 /* Stage A, fractional digits of the golden ratio */

	fwdK0, fwdK1 = 0xb7e15163, 0x9e3779b9 /* e and phi */
	revK0, revK1 = 0x6a09e667, 0xbb67ae85 /* sqrt(2) and sqrt(3) */
	sepK0, sepK1 = 0x3c6ef372, 0xa54ff53a /* sqrt(5) and sqrt(7) */
	finK0, finK1 = 0x9e3779b1, 0x85ebca77 /* Both odd. */

	mixM1, mixM2 = 0x85ebca6b, 0xc2b2ae35
	/* The initial state is the first 128 fractional bits of pi, as in Blowfish and BLAKE. */
	iv0, iv1, iv2, iv3 = 0x243f6a88, 0x85a308d3, 0x13198a2e, 0x03707344
)

var spread = [lanes]int{3, 11, 17, 23}

// sum runs the whole pipeline over msg. msg itself is never modified.
func sum(msg []byte) Digest {
	bitLen := uint64(len(msg)) << 3
	padded := pad(msg)

	s := state{iv0, iv1, iv2, iv3}
	for dex, blk := range segment(padded) {
		w := words(blk)
		w = diffuse(&w)
		w = mix(&w)
		s.compress(&w, uint64(dex), bitLen)
	}
	return s.finalize(bitLen)
}
