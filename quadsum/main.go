package main

import (
	"bytes"
	"encoding/base64"
	. "fmt"
	"github.com/p7r0x7/vainpath"
	. "github.com/spf13/pflag"
	"github.com/zodiac-hash/quadhash"
	"github.com/zodiac-hash/quadhash/statz"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"
	"unicode/utf8"
	"unsafe"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const n = "\n"
const success, failure = 0, 1

var warnings = 0

func main() {
	Parse()
	pStrict = pStrict || pRaw || pDebug
	os.Exit(program())
}

// help prints a usage menu and quietly exits if no non-flag arguments are given. To consistently
// correctly render this menu in most terminal windows, its content should be no wider than 80
// columns.
func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "quadsum" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(os.Stderr, yell, "A fast 128-bit non-cryptographic digest.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "[-bpt] [--quiet|no-codes] [--strict|raw] -|PATH..."+n,
		spaces, "[-bpt] [--quiet|no-codes] [--strict|raw] -s STRING..."+n+n+
			"Options:"+n)
	PrintDefaults()
	name = vainpath.Trim(origin, "…", 15)
	Fprint(os.Stderr, n+"Order of arguments placed after `", name, "` does not matter unless `--` is"+
		n+"specified, signaling the end of parsed flags. Long-form flag equivalents are"+n+
		"above. `-` is treated as a reference to ", os.Stdin.Name(), " on this platform."+n)
}

// This program is a command-line interface for quadhash: It handles various flags and an
// unlimited number of arguments, digesting strings, files, or standard input as asked.
func program() int {
	if pDebug {
		defer profile()()
	}
	if pHelp || NArg() == 0 {
		help()
		return success
	}

	for _, target := range Args() {
		start := time.Now()
		msg, err := read(target)
		if err != nil {
			warn(err)
			continue
		}

		if pPrefixes {
			prefixes(target, msg)
			continue
		}
		d := quadhash.Sum(msg)
		if pRaw {
			os.Stdout.Write(d.Bytes())
			continue
		}
		if !pQuiet {
			Print(yell)
		}
		Print(render(d))
		if pQuiet {
			os.Stdout.WriteString(n)
			continue
		}
		Print(label(target), elapsed(time.Since(start)), n)
	}

	if !(pQuiet || pRaw) {
		if warnings == 1 {
			Fprint(os.Stderr, "1 ", purp, "target is a directory or is otherwise inaccessible.", zero, n)
		} else if warnings > 1 {
			Fprint(os.Stderr, warnings, " ", purp, "targets are directories or are otherwise inaccessible.", zero, n)
		}
	}
	if warnings > 0 {
		return failure
	}
	return success
}

// read returns the whole message named by target. Digests are one-shot, so files and standard
// input are read fully before hashing.
func read(target string) ([]byte, error) {
	switch {
	case pString:
		/* Sum never writes to its input, so the string's bytes can be shared. */
		return unsafe.Slice(unsafe.StringData(target), len(target)), nil
	case target == "-" || target == os.Stdin.Name():
		msg, err := io.ReadAll(os.Stdin)
		go os.Stdin.Close() /* STDIN should not be reused. */
		return msg, err
	default:
		return os.ReadFile(target)
	}
}

// prefixes prints the digest of growing line prefixes of msg, one per line.
func prefixes(target string, msg []byte) {
	ps, err := statz.PrefixSums(bytes.NewReader(msg))
	if err != nil {
		warn(err)
		return
	}
	for _, p := range ps {
		if pRaw {
			os.Stdout.Write(p.Digest.Bytes())
			continue
		}
		if pQuiet {
			Print(render(p.Digest), n)
			continue
		}
		Print(yell, render(p.Digest), zero, Sprintf("  %6d lines ", p.Lines), label(target),
			elapsed(p.Elapsed), n)
	}
}

func render(d quadhash.Digest) string {
	if pBase64 {
		return base64.StdEncoding.EncodeToString(d.Bytes())
	}
	return d.String()
}

func label(target string) string {
	switch {
	case pString:
		return zero + `  "` + target + `"` + zero
	case pNoCodes:
		return `  ` + filepath.Clean(target)
	default:
		return zero + `  ` + und + vainpath.Simplify(target) + zero
	}
}

func elapsed(d time.Duration) string {
	if !pTime && !pPrefixes {
		return ""
	}
	if d.Microseconds() > 99 {
		d = d.Truncate(10 * time.Microsecond)
	}
	return " (" + d.String() + ")"
}

// profile starts a CPU profile and returns the func that stops it and writes the rest.
func profile() func() {
	cf, err := os.Create("cpu.prof")
	if err != nil {
		panic(err)
	}
	if err = pprof.StartCPUProfile(cf); err != nil {
		panic(err)
	}
	return func() {
		pprof.StopCPUProfile()
		cf.Close()
		for _, name := range [...]string{"goroutine", "block", "allocs", "mutex"} {
			f, err := os.Create(name + ".prof")
			if err != nil {
				panic(err)
			}
			pprof.Lookup(name).WriteTo(f, 0)
			f.Close()
		}
	}
}

func warn(err ...interface{}) {
	if pStrict {
		panic(err)
	}
	warnings++
}
