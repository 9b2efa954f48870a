package statz

import (
	"bufio"
	"github.com/zodiac-hash/quadhash"
	"io"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Prefix is the digest of the first Lines lines of a text and how long computing it took.
type Prefix struct {
	Lines   int
	Digest  quadhash.Digest
	Elapsed time.Duration
}

// PrefixSums hashes growing prefixes of the lines read from rd: the first 1, 2, 4, 8, ... lines
// while that is fewer than all of them, then every line. Each line is hashed with a trailing
// newline, whether or not the input ended with one.
func PrefixSums(rd io.Reader) ([]Prefix, error) {
	var lines [][]byte
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 64<<10), maxLine)
	for sc.Scan() {
		lines = append(lines, append(append([]byte(nil), sc.Bytes()...), '\n'))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	var out []Prefix
	var msg []byte
	next := 0
	for n := 1; ; n <<= 1 {
		if n > len(lines) {
			n = len(lines)
		}
		for ; next < n; next++ {
			msg = append(msg, lines[next]...)
		}
		t := time.Now()
		d := quadhash.Sum(msg)
		out = append(out, Prefix{n, d, time.Since(t)})
		if n == len(lines) {
			return out, nil
		}
	}
}
