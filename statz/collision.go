package statz

import (
	"bufio"
	"context"
	"errors"
	. "fmt"
	"github.com/sirupsen/logrus"
	"github.com/zodiac-hash/quadhash"
	"golang.org/x/sync/errgroup"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// ErrMalformedPair reports a pair-file line that does not hold exactly two tab-separated fields.
var ErrMalformedPair = errors.New("statz: line is not exactly two tab-separated fields")

// maxLine bounds a single pair-file line.
const maxLine = 1 << 20

// ParseError locates a malformed line within a pair file.
type ParseError struct {
	Line int /* 1-based */
	Err  error
}

func (e *ParseError) Error() string { return Sprintf("statz: line %d: %v", e.Line, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// ParsePair splits one pair-file line into its two strings. A trailing carriage return is
// ignored.
func ParsePair(line string) (a, b string, err error) {
	fields := strings.Split(strings.TrimSuffix(line, "\r"), "\t")
	if len(fields) != 2 {
		return "", "", ErrMalformedPair
	}
	return fields[0], fields[1], nil
}

// CollisionReport counts the pairs of one input group whose digests are equal.
type CollisionReport struct {
	Length                     int
	Pairs, Collisions, Skipped int
}

func (r CollisionReport) String() string {
	return Sprintf("Total collisions for length %d: %d", r.Length, r.Collisions)
}

// ScanPairs reads "a\tb" lines from rd and counts the lines whose two strings share a digest.
// Malformed lines are logged and skipped; only read errors are returned.
func ScanPairs(rd io.Reader, log logrus.FieldLogger) (CollisionReport, error) {
	var r CollisionReport
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 64<<10), maxLine)

	for line := 1; sc.Scan(); line++ {
		a, b, err := ParsePair(sc.Text())
		if err != nil {
			log.WithError(&ParseError{Line: line, Err: err}).Warn("skipping pair")
			r.Skipped++
			continue
		}
		r.Pairs++
		if quadhash.SumString(a) == quadhash.SumString(b) {
			log.WithFields(logrus.Fields{"line": line, "a": a, "b": b}).Warn("collision")
			r.Collisions++
		}
	}
	return r, sc.Err()
}

// PairFile names the pair file holding strings of the given length within dir.
func PairFile(dir string, length int) string {
	return filepath.Join(dir, Sprintf("pairs_%d.txt", length))
}

// ScanFiles runs ScanPairs over the pair file of every length concurrently. Reports come back in
// the order of lengths.
func ScanFiles(ctx context.Context, dir string, lengths []int, log logrus.FieldLogger) (
	[]CollisionReport, error) {
	reports := make([]CollisionReport, len(lengths))
	g, ctx := errgroup.WithContext(ctx)
	for i, length := range lengths {
		i, length := i, length
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			name := PairFile(dir, length)
			f, err := os.Open(name)
			if err != nil {
				return err
			}
			defer f.Close()

			r, err := ScanPairs(f, log.WithField("file", name))
			if err != nil {
				return Errorf("statz: reading %s: %w", name, err)
			}
			r.Length = length
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// WritePairs writes count lines of two independent random strings of the given length.
func WritePairs(w io.Writer, length, count int, src *Source) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < count; i++ {
		bw.WriteString(src.String(length))
		bw.WriteByte('\t')
		bw.WriteString(src.String(length))
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// GeneratePairFiles writes the pair file of every length into dir concurrently, each from its
// own Source derived from seed.
func GeneratePairFiles(ctx context.Context, dir string, lengths []int, count int, seed uint64,
	log logrus.FieldLogger) error {
	seen := map[int]bool{}
	for _, l := range lengths {
		if seen[l] {
			return Errorf("statz: length %d is listed more than once", l)
		}
		seen[l] = true
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	seeds := SplitSeed(seed, len(lengths))
	g, ctx := errgroup.WithContext(ctx)
	for i, length := range lengths {
		i, length := i, length
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			name := PairFile(dir, length)
			f, err := os.Create(name)
			if err != nil {
				return err
			}
			if err = WritePairs(f, length, count, NewSource(seeds[i])); err != nil {
				f.Close()
				return Errorf("statz: writing %s: %w", name, err)
			}
			log.WithFields(logrus.Fields{"file": name, "pairs": count}).Info("wrote pair file")
			return f.Close()
		})
	}
	return g.Wait()
}
