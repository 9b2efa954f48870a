package statz

import (
	. "fmt"
	"github.com/dterei/gotsc"
	"github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"github.com/zodiac-hash/quadhash"
	"io"
	"sync"
	"testing"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Sizes are the message sizes Bench measures by default.
var Sizes = []int{64, 512 << 10, 64 << 20}

var calltime uint64
var measureOverhead sync.Once

// Alg is a named digest function under measurement.
type Alg struct {
	Name string
	Fn   func(msg []byte)
}

// Algorithms lists QuadHash followed by the digests it is compared against.
func Algorithms() []Alg {
	return []Alg{
		{"github.com/zodiac-hash/quadhash", func(msg []byte) { quadhash.Sum(msg) }},
		{"github.com/zeebo/xxh3", func(msg []byte) { xxh3.Hash128(msg) }},
		{"github.com/minio/sha256-simd", func(msg []byte) { sha256.Sum256(msg) }},
		{"github.com/zeebo/blake3", func(msg []byte) { blake3.Sum256(msg) }},
	}
}

// BenchResult holds one measurement per size.
type BenchResult struct {
	Name        string
	Throughputs []float64 /* MB/s */
	Speeds      []float64 /* cycles per byte; nil without a usable TSC */
	Usages      []float64 /* B/op */
}

// Bench times alg at each size. Where the time-stamp counter is usable, a sampler goroutine
// estimates the clock rate alongside so throughput can also be reported in cycles per byte.
func Bench(alg Alg, sizes []int) BenchResult {
	measureOverhead.Do(func() { calltime = gotsc.TSCOverhead() })
	s := len(sizes)
	res := BenchResult{alg.Name, make([]float64, s), nil, make([]float64, s)}
	if calltime > 0 {
		res.Speeds = make([]float64, s)
	}

	for i, v := range sizes {
		msg := make([]byte, v)

		totalHz, polls, mut := uint64(0), uint64(0), &sync.Mutex{}
		stop := make(chan struct{})
		if calltime > 0 {
			go func() {
				for {
					tsc1 := gotsc.BenchStart()
					time.Sleep(time.Millisecond)
					tsc2 := gotsc.BenchEnd()

					mut.Lock()
					totalHz += tsc2 - tsc1 - calltime
					polls++
					mut.Unlock()

					select {
					case <-stop:
						return
					case <-time.After(time.Millisecond * 9):
					}
				}
			}()
		}
		r := testing.Benchmark(func(b *testing.B) {
			b.SetBytes(int64(len(msg)))
			b.ReportAllocs()
			b.ResetTimer()
			for n := b.N; n > 0; n-- {
				alg.Fn(msg)
			}
		})
		close(stop)

		mut.Lock()
		res.Throughputs[i] = float64(r.Bytes*int64(r.N)) / r.T.Seconds() /* B/s */
		if res.Speeds != nil && polls > 0 {
			res.Speeds[i] = float64(totalHz*1000) / float64(polls) / res.Throughputs[i]
		}
		mut.Unlock()
		res.Throughputs[i] /= 1e6
		res.Usages[i] = float64(r.AllocedBytesPerOp())
	}
	return res
}

// WriteTo prints the result as rows aligned under a header of sizes.
func (r BenchResult) WriteTo(w io.Writer) (int64, error) {
	str := r.Name + "\nSpeed " + FormatFloats(r.Throughputs...) + "   MB/s\n"
	if r.Speeds != nil {
		str += "      " + FormatFloats(r.Speeds...) + "   cpb\n"
	}
	str += "Usage " + FormatFloats(r.Usages...) + "   B/op\n\n"
	n, err := io.WriteString(w, str)
	return int64(n), err
}

// SizeHeader labels the columns FormatFloats lays out for sizes.
func SizeHeader(sizes []int) string {
	str := "      "
	for _, v := range sizes {
		var label string
		switch {
		case v >= 1<<30 && v%(1<<30) == 0:
			label = Sprintf("%dG", v>>30)
		case v >= 1<<20 && v%(1<<20) == 0:
			label = Sprintf("%dM", v>>20)
		case v >= 1<<10 && v%(1<<10) == 0:
			label = Sprintf("%dK", v>>10)
		default:
			label = Sprintf("%dB", v)
		}
		str += Sprintf("  %8s", label)
	}
	return str
}

// FormatFloats renders each value in an 8-wide column, trading decimals for magnitude.
func FormatFloats(f ...float64) string {
	var str, style string
	for _, v := range f {
		switch whole := float64(int64(v)) == v; {
		case v > 1e8 || (v < 1e-6 && !whole):
			style = "%8.3g"
		case v <= 1e1 && !whole:
			style = "%8.6f"
		case v <= 1e2 && !whole:
			style = "%8.5f"
		case v <= 1e3 && !whole:
			style = "%8.4f"
		case v <= 1e4 && !whole:
			style = "%8.3f"
		case v <= 1e5 && !whole:
			style = "%8.2f"
		case v <= 1e6 && !whole:
			style = "%8.1f"
		default:
			style = "%8.f"
		}
		str += "  " + Sprintf(style, v)
	}
	return str
}
