package statz

import (
	"context"
	. "fmt"
	"github.com/sirupsen/logrus"
	"github.com/zodiac-hash/quadhash"
	"golang.org/x/sync/errgroup"
	"math"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// IdealDistance is the expected Hamming distance between the digests of two unrelated inputs.
const IdealDistance = quadhash.Size * 8 / 2

// checkEvery is how many trials a worker runs between looks at its context.
const checkEvery = 1 << 10

// AvalancheReport summarizes the Hamming distances observed between digests of one-position
// pairs of a single string length.
type AvalancheReport struct {
	Length, Trials int
	Min, Max       int
	Total          int64 /* Sum of all observed distances. */
}

// Average is the mean observed distance.
func (r AvalancheReport) Average() float64 {
	if r.Trials == 0 {
		return math.NaN()
	}
	return float64(r.Total) / float64(r.Trials)
}

// Merge folds another report of the same length into r.
func (r *AvalancheReport) Merge(o AvalancheReport) {
	if o.Trials == 0 {
		return
	}
	if r.Trials == 0 {
		*r = o
		return
	}
	r.Trials += o.Trials
	r.Total += o.Total
	r.Min, r.Max = min(r.Min, o.Min), max(r.Max, o.Max)
}

func (r AvalancheReport) String() string {
	return Sprintf("Length %d | Pairs %d | Hamming distance (out of %d bits): min=%d, avg=%.2f, "+
		"max=%d | ideal avg = %d", r.Length, r.Trials, quadhash.Size*8, r.Min, r.Average(), r.Max,
		IdealDistance)
}

// Avalanche draws trials random strings of the given length from src, perturbs each in one
// position, and measures how many digest bits differ between the two. It panics if length or
// trials is less than one.
func Avalanche(length, trials int, src *Source) AvalancheReport {
	checkAvalanche(length, trials)
	r, _ := avalanche(context.Background(), length, trials, src)
	return r
}

// AvalancheParallel is Avalanche spread over workers goroutines. Each worker owns a Source
// derived from seed with SplitSeed, so a given seed and worker count always produce the same
// report. It stops early, returning ctx.Err(), if ctx is canceled.
func AvalancheParallel(ctx context.Context, length, trials, workers int, seed uint64,
	log logrus.FieldLogger) (AvalancheReport, error) {
	checkAvalanche(length, trials)
	if workers < 1 {
		workers = 1
	}
	if workers > trials {
		workers = trials
	}

	seeds, parts := SplitSeed(seed, workers), make([]AvalancheReport, workers)
	g, ctx := errgroup.WithContext(ctx)
	for i := range seeds {
		i, n := i, trials/workers
		if i < trials%workers {
			n++
		}
		g.Go(func() (err error) {
			parts[i], err = avalanche(ctx, length, n, NewSource(seeds[i]))
			log.WithFields(logrus.Fields{"length": length, "worker": i, "trials": n}).
				Debug("avalanche worker finished")
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return AvalancheReport{}, err
	}

	r := AvalancheReport{Length: length}
	for _, p := range parts {
		r.Merge(p)
	}
	return r, nil
}

func avalanche(ctx context.Context, length, trials int, src *Source) (AvalancheReport, error) {
	r := AvalancheReport{Length: length, Trials: trials, Min: math.MaxInt}
	for i := 0; i < trials; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return AvalancheReport{}, err
			}
		}
		a, b := src.Pair(length)
		d := quadhash.SumString(a).Distance(quadhash.SumString(b))

		r.Total += int64(d)
		r.Min, r.Max = min(r.Min, d), max(r.Max, d)
	}
	return r, nil
}

func checkAvalanche(length, trials int) {
	switch {
	case length < 1:
		panic(Sprintf("statz: avalanche: length %d leaves no position to change", length))
	case trials < 1:
		panic(Sprintf("statz: avalanche: %d trials", trials))
	}
}
