package quadhash

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	. "math/bits"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file contains the Go-specific API of QuadHash. There is no hash.Hash here: the digest is
// defined over a complete message, never over a stream.

// Size is the length of a digest in bytes.
const Size = lanes * 4

// BlockSize is the number of message bytes consumed by one compression.
const BlockSize = bytesPerBlock

// Digest is a 128-bit QuadHash digest, four 32-bit lanes in output order. Digests are comparable
// with ==.
type Digest [lanes]uint32

var errDigestLen = errors.New("quadhash: digest must be 32 hexadecimal digits")

// Sum returns the digest of msg. Any byte slice, including nil, is valid.
func Sum(msg []byte) Digest { return sum(msg) }

// SumString returns the digest of the bytes of s.
func SumString(s string) Digest { return sum([]byte(s)) }

// String renders d as 32 lowercase hexadecimal digits, 8 per lane.
func (d Digest) String() string {
	return fmt.Sprintf("%08x%08x%08x%08x", d[0], d[1], d[2], d[3])
}

// Bytes returns d as 16 big-endian bytes, so that hex.EncodeToString(d.Bytes()) == d.String().
func (d Digest) Bytes() []byte {
	buf := make([]byte, Size)
	for i, v := range d {
		binary.BigEndian.PutUint32(buf[i<<2:], v)
	}
	return buf
}

// Distance returns the number of bits in which d and o differ, from 0 to 128.
func (d Digest) Distance(o Digest) int {
	return OnesCount32(d[0]^o[0]) + OnesCount32(d[1]^o[1]) +
		OnesCount32(d[2]^o[2]) + OnesCount32(d[3]^o[3])
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	p, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*d = p
	return nil
}

// ParseDigest is the inverse of Digest.String. Upper-case digits are accepted.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	if len(s) != Size*2 {
		return d, errDigestLen
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("quadhash: %w", err)
	}
	for i := range d {
		d[i] = binary.BigEndian.Uint32(raw[i<<2:])
	}
	return d, nil
}
