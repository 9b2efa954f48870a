package quadhash

import (
	"encoding/binary"
	"fmt"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

type block = [bytesPerBlock]byte

// pad returns a copy of msg framed by a marker byte, zero fill, and msg's bit length so that the
// result is a whole number of blocks. At least 9 bytes are always appended.
func pad(msg []byte) []byte {
	n := len(msg) + 1 + lenBytes
	if rem := n % bytesPerBlock; rem != 0 {
		n += bytesPerBlock - rem
	}

	padded := make([]byte, n) /* Zero fill comes for free. */
	copy(padded, msg)
	padded[len(msg)] = marker
	binary.BigEndian.PutUint64(padded[n-lenBytes:], uint64(len(msg))<<3)
	return padded
}

// segment splits a padded buffer into blocks, preserving order.
func segment(padded []byte) []block {
	if len(padded)%bytesPerBlock != 0 {
		panic(fmt.Sprintf("quadhash: segment: %d bytes is not a multiple of the block size", len(padded)))
	}

	blocks := make([]block, len(padded)/bytesPerBlock)
	for i := range blocks {
		copy(blocks[i][:], padded[i*bytesPerBlock:])
	}
	return blocks
}

// words decodes a block as 16 big-endian words.
func words(b block) (w [wordsPerBlock]uint32) {
	for i := range w {
		w[i] = binary.BigEndian.Uint32(b[i<<2:])
	}
	return w
}
