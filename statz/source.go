package statz

import (
	"encoding/binary"
	"github.com/aead/chacha20/chacha"
	"github.com/zeebo/pcg"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Alphabet is the character set random strings are drawn from.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Source is a seeded pseudo-random generator. A Source belongs to exactly one analyzer run or
// worker and must not be shared between goroutines.
type Source struct {
	p pcg.T
}

// NewSource returns a Source whose output is fully determined by seed.
func NewSource(seed uint64) *Source {
	return &Source{p: pcg.New(seed)}
}

// String returns n characters drawn uniformly from Alphabet.
func (s *Source) String(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = s.char()
	}
	return string(buf)
}

// Perturb returns a copy of str with exactly one character, at a uniformly chosen position,
// replaced by a different character of Alphabet. The position is returned as well. str must not
// be empty.
func (s *Source) Perturb(str string) (string, int) {
	if len(str) == 0 {
		panic("statz: Perturb: a zero-length string has no position to change")
	}
	buf := []byte(str)
	pos := int(s.p.Uint32n(uint32(len(buf))))

	c := s.char()
	for c == buf[pos] {
		c = s.char()
	}
	buf[pos] = c
	return string(buf), pos
}

// Pair returns a random string of length n and a copy of it differing in exactly one position.
func (s *Source) Pair(n int) (a, b string) {
	a = s.String(n)
	b, _ = s.Perturb(a)
	return a, b
}

// Read fills p with random bytes. It never fails.
func (s *Source) Read(p []byte) (int, error) {
	var tmp [8]byte
	for i := 0; i < len(p); i += 8 {
		binary.LittleEndian.PutUint64(tmp[:], s.p.Uint64())
		copy(p[i:], tmp[:])
	}
	return len(p), nil
}

func (s *Source) char() byte {
	return Alphabet[s.p.Uint32n(uint32(len(Alphabet)))]
}

// SplitSeed expands seed into n independent seeds, one per worker, by reading a ChaCha8
// keystream keyed with seed. The same seed always yields the same seeds in the same order, no
// matter how the workers that use them are later scheduled.
func SplitSeed(seed uint64, n int) []uint64 {
	if n < 1 {
		return nil
	}
	var key [chacha.KeySize]byte
	var nonce [chacha.NonceSize]byte
	binary.BigEndian.PutUint64(key[:], seed)

	stream := make([]byte, 8*n)
	chacha.XORKeyStream(stream, stream, nonce[:], key[:], 8)

	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = binary.LittleEndian.Uint64(stream[i<<3:])
	}
	return seeds
}
