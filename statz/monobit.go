package statz

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"github.com/zodiac-hash/quadhash"
	"math"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const digestBits = quadhash.Size * 8

// MonobitBias returns, as a percentage, the mean distance of every digest bit from being set in
// exactly half of the given digests. An ideal digest scores close to 0.
func MonobitBias(digests []quadhash.Digest) float64 {
	if len(digests) < 2 {
		return math.NaN()
	}
	var tally [digestBits]int
	for _, d := range digests {
		for i := 0; i < digestBits; i++ {
			tally[i] += int(d[i>>5] >> (31 - i&31) & 1)
		}
	}

	half := len(digests) >> 1
	var total int
	for _, v := range tally {
		if v -= half; v < 0 {
			total -= v
		} else {
			total += v
		}
	}
	return float64(total) / digestBits / float64(half) * 100
}

// IntegerDigests hashes the big-endian 4-byte encodings of 0 through n-1.
func IntegerDigests(n int) []quadhash.Digest {
	digests, buf := make([]quadhash.Digest, n), make([]byte, 4)
	for i := range digests {
		binary.BigEndian.PutUint32(buf, uint32(i))
		digests[i] = quadhash.Sum(buf)
	}
	return digests
}

// RandomDigests hashes n random messages of size bytes each.
func RandomDigests(n, size int, src *Source) []quadhash.Digest {
	digests, buf := make([]quadhash.Digest, n), make([]byte, size)
	for i := range digests {
		src.Read(buf)
		digests[i] = quadhash.Sum(buf)
	}
	return digests
}

// CompressionRatio is the size of the concatenated digests over their flate-compressed size.
// Output indistinguishable from noise scores just under 1.
func CompressionRatio(digests []quadhash.Digest) float64 {
	var b bytes.Buffer
	w, _ := flate.NewWriter(&b, flate.BestCompression)
	for _, d := range digests {
		w.Write(d.Bytes())
	}
	w.Close()
	return float64(len(digests)*quadhash.Size) / float64(b.Len())
}
